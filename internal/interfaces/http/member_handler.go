package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/access"
	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
)

// MemberHandler administración de membresías y permisos por módulo (solo superusuarios).
type MemberHandler struct {
	svc *access.PermissionService
}

// NewMemberHandler construye el handler.
func NewMemberHandler(svc *access.PermissionService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

// List GET /admin/empresas/:id/miembros
func (h *MemberHandler) List(c *fiber.Ctx) error {
	companyID, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.ListMembers(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar un usuario a una empresa
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID de la empresa"
// @Param        body  body  dto.CreateMembershipRequest  true  "usuario, rol, sucursal"
// @Success      201   {object}  dto.MembershipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/empresas/{id}/miembros [post]
func (h *MemberHandler) Add(c *fiber.Ctx) error {
	companyID, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateMembershipRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.AddMembership(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PATCH /admin/miembros/:id
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateMembershipRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.UpdateMembership(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPermissions GET /admin/miembros/:id/permisos
func (h *MemberHandler) ListPermissions(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.ListPermissions(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Grant godoc
// @Summary      Otorgar permisos sobre un módulo
// @Description  Los flags omitidos conservan su valor actual (falso si el permiso no existía).
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID de la membresía"
// @Param        body  body  dto.GrantPermissionRequest  true  "módulo y flags"
// @Success      200   {object}  dto.PermissionResponse
// @Router       /admin/miembros/{id}/permisos [post]
func (h *MemberHandler) Grant(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.GrantPermissionRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.svc.GrantModulePermission(c.UserContext(), id, in.Module, in.PermissionFlags)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
