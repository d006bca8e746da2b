package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
)

// ProcedureHandler endpoints de /procedimientos.
type ProcedureHandler struct {
	uc *usecase.ProcedureUseCase
}

// NewProcedureHandler construye el handler.
func NewProcedureHandler(uc *usecase.ProcedureUseCase) *ProcedureHandler {
	return &ProcedureHandler{uc: uc}
}

// List GET /procedimientos?activos=true
func (h *ProcedureHandler) List(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	p := page(c)
	out, err := h.uc.List(c.UserContext(), tc, c.QueryBool("activos", false), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create POST /procedimientos
func (h *ProcedureHandler) Create(c *fiber.Ctx) error {
	return h.save(c, "")
}

// Update PUT /procedimientos/:id
func (h *ProcedureHandler) Update(c *fiber.Ctx) error {
	return h.save(c, c.Params("id"))
}

// Get GET /procedimientos/:id
func (h *ProcedureHandler) Get(c *fiber.Ctx) error {
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

// Delete DELETE /procedimientos/:id
func (h *ProcedureHandler) Delete(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), tc, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProcedureHandler) save(c *fiber.Ctx, id string) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SaveProcedureRequest
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
