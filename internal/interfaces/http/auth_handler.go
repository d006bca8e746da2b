package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/dental-clinic-api/internal/application/auth"
	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
)

// AuthHandler maneja login, logout y alta de usuarios.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	store    *session.Store
	secure   bool
	tokenTTL time.Duration
}

// NewAuthHandler construye el handler de auth. tokenTTL define la vida de la cookie access_token.
func NewAuthHandler(uc *auth.AuthUseCase, store *session.Store, secure bool, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, store: store, secure: secure, tokenTTL: tokenTTL}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}

	// La empresa elegida por un usuario anterior no debe sobrevivir al login.
	if sess, err := h.store.Get(c); err == nil {
		_ = sess.Destroy()
	}
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Success      204
// @Router       /logout/ [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := h.store.Get(c); err == nil {
		if err := sess.Destroy(); err != nil {
			requestLog(c).Warn().Err(err).Msg("no se pudo destruir la sesión")
		}
	}
	c.ClearCookie(AuthCookieName)
	return c.SendStatus(fiber.StatusNoContent)
}

// Me devuelve el usuario autenticado.
// GET /me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, _ := GetIdentity(c)
	out, err := h.uc.Me(c.UserContext(), id.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar usuario (superusuario)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, nombre"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/usuarios [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
