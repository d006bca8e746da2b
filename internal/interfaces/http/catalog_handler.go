package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
)

// CatalogHandler CRUD común de especialidades, medios de pago y previsiones.
// Cada instancia atiende un solo tipo de catálogo.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler para el catálogo del caso de uso.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List GET /<catalogo>?activos=true
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), tc, c.QueryBool("activos", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create POST /<catalogo>
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	return h.save(c, "")
}

// Update PUT /<catalogo>/:id
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	return h.save(c, c.Params("id"))
}

// Get GET /<catalogo>/:id
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), tc, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /<catalogo>/:id
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), tc, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) save(c *fiber.Ctx, id string) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SaveCatalogItemRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Save(c.UserContext(), tc, id, in)
	if err != nil {
		return respondError(c, err)
	}
	if id == "" {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}
