package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
)

// CompanyHandler administración de empresas (solo superusuarios).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/empresas [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualiza los datos de una empresa.
// PUT /admin/empresas/:id
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateCompanyRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         admin
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/empresas/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CompanyListResponse
// @Router       /admin/empresas [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate POST /admin/empresas/:id/desactivar
func (h *CompanyHandler) Deactivate(c *fiber.Ctx) error {
	return h.idAction(c, h.uc.Deactivate)
}

// Activate POST /admin/empresas/:id/activar
func (h *CompanyHandler) Activate(c *fiber.Ctx) error {
	return h.idAction(c, h.uc.Activate)
}

// Delete elimina la empresa y en cascada sus sucursales y membresías.
// DELETE /admin/empresas/:id
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	return h.idAction(c, h.uc.Delete)
}

func (h *CompanyHandler) idAction(c *fiber.Ctx, fn func(ctx context.Context, id int64) error) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := fn(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
