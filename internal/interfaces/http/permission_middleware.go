package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// PermissionChecker es el contrato mínimo que necesita el middleware.
// Lo implementa *access.PermissionService.
type PermissionChecker interface {
	CheckPermission(ctx context.Context, userID string, companyID int64, module string, action entity.Action) (bool, error)
}

// RequirePermission verifica que el usuario tenga la acción sobre el módulo en la empresa actual.
// Debe usarse DESPUÉS del gate (necesita LocalTenant).
//
// Comportamiento:
//   - 403 PERMISSION_DENIED → sin membresía vigente o sin el flag.
//   - 503 PERMISSION_CHECK_FAILED → fallo de infraestructura al consultar la DB.
func RequirePermission(module string, action entity.Action, checker PermissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return checkPermission(c, module, action, checker)
	}
}

// RequireModule deriva la acción del método HTTP: GET → view, POST → create,
// PUT/PATCH → edit, DELETE → delete.
func RequireModule(module string, checker PermissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return checkPermission(c, module, actionForMethod(c.Method()), checker)
	}
}

func checkPermission(c *fiber.Ctx, module string, action entity.Action, checker PermissionChecker) error {
	id, ok := GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
	}
	tc, ok := GetTenant(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PERMISSION_DENIED", Message: "no hay empresa actual"})
	}

	allowed, err := checker.CheckPermission(c.UserContext(), id.UserID, tc.CompanyID, module, action)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "PERMISSION_CHECK_FAILED",
			Message: "no se pudo verificar el permiso, intente más tarde",
		})
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "PERMISSION_DENIED",
			Message: "sin permiso '" + string(action) + "' sobre el módulo '" + module + "'",
		})
	}
	return c.Next()
}

func actionForMethod(method string) entity.Action {
	switch method {
	case fiber.MethodPost:
		return entity.ActionCreate
	case fiber.MethodPut, fiber.MethodPatch:
		return entity.ActionEdit
	case fiber.MethodDelete:
		return entity.ActionDelete
	default:
		return entity.ActionView
	}
}
