package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
)

// PaymentHandler endpoints de /pagos.
type PaymentHandler struct {
	uc *usecase.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List godoc
// @Summary      Listar pagos
// @Tags         pagos
// @Produce      json
// @Param        desde        query  string  false  "Desde (AAAA-MM-DD)"
// @Param        hasta        query  string  false  "Hasta, inclusive (AAAA-MM-DD)"
// @Param        paciente_id  query  string  false  "Paciente"
// @Success      200          {object}  dto.PaymentListResponse
// @Router       /pagos [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	from, err := queryDate(c, "desde", false)
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryDate(c, "hasta", true)
	if err != nil {
		return respondError(c, err)
	}
	p := page(c)
	out, err := h.uc.List(c.UserContext(), tc, c.Query("paciente_id"), from, to, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create POST /pagos
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreatePaymentRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), tc, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /pagos/:id
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
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

// Update modifica un pago abierto. Un pago ya incluido en un cierre responde 409.
// PUT /pagos/:id
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdatePaymentRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), tc, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /pagos/:id
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), tc, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
