package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
)

// BranchHandler sucursales de la empresa actual (/sucursales) y de cualquier empresa (/admin).
type BranchHandler struct {
	uc *usecase.BranchUseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *usecase.BranchUseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// List GET /sucursales
func (h *BranchHandler) List(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.list(c, tc.CompanyID)
}

// Create godoc
// @Summary      Crear sucursal en la empresa actual
// @Tags         sucursales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveBranchRequest  true  "Datos de la sucursal"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /sucursales [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	return h.save(c, tc.CompanyID, nil)
}

// Update PUT /sucursales/:id
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	return h.save(c, tc.CompanyID, &id)
}

// Deactivate DELETE /sucursales/:id
func (h *BranchHandler) Deactivate(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Deactivate(c.UserContext(), tc.CompanyID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminList GET /admin/empresas/:id/sucursales
func (h *BranchHandler) AdminList(c *fiber.Ctx) error {
	companyID, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	return h.list(c, companyID)
}

// AdminSave POST /admin/empresas/:id/sucursales y PUT /admin/empresas/:id/sucursales/:branchId
func (h *BranchHandler) AdminSave(c *fiber.Ctx) error {
	companyID, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var branchID *int64
	if c.Params("branchId") != "" {
		id, err := paramInt64(c, "branchId")
		if err != nil {
			return respondError(c, err)
		}
		branchID = &id
	}
	return h.save(c, companyID, branchID)
}

func (h *BranchHandler) list(c *fiber.Ctx, companyID int64) error {
	out, err := h.uc.ListByCompany(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *BranchHandler) save(c *fiber.Ctx, companyID int64, branchID *int64) error {
	var in dto.SaveBranchRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Save(c.UserContext(), companyID, branchID, in)
	if err != nil {
		return respondError(c, err)
	}
	if branchID == nil {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}
