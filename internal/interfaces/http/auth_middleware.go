package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/pkg/jwt"
)

// Locals keys y cookie de autenticación.
const (
	LocalIdentity  = "identity"
	LocalTenant    = "tenant"
	AuthCookieName = "access_token"
)

// Identify valida el JWT (header Bearer o cookie access_token) y, si es válido, deja la identidad
// en c.Locals. Nunca rechaza: los requests anónimos siguen y las rutas protegidas usan RequireAuth.
func Identify(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenString == "" {
			tokenString = c.Cookies(AuthCookieName)
		}
		if tokenString == "" {
			return c.Next()
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err == nil {
			c.Locals(LocalIdentity, id)
		}
		return c.Next()
	}
}

// RequireAuth responde 401 si el request no trae una identidad válida.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetIdentity(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		return c.Next()
	}
}

// RequireSuperuser restringe la ruta a superusuarios. Usar después de RequireAuth.
func RequireSuperuser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		if !id.IsSuperuser {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo superusuarios"})
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad autenticada del request.
func GetIdentity(c *fiber.Ctx) (jwt.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(jwt.Identity)
	return id, ok && id.UserID != ""
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
