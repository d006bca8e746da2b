package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/cashier"
	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
)

// CashClosureHandler endpoints de /cierres-caja.
type CashClosureHandler struct {
	uc *cashier.ClosureUseCase
}

// NewCashClosureHandler construye el handler.
func NewCashClosureHandler(uc *cashier.ClosureUseCase) *CashClosureHandler {
	return &CashClosureHandler{uc: uc}
}

// List GET /cierres-caja
func (h *CashClosureHandler) List(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	p := page(c)
	out, err := h.uc.List(c.UserContext(), tc, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Cerrar caja de la sucursal actual
// @Description  Suma los pagos sin cerrar del período, agrupa por medio de pago y los marca como cerrados.
// @Tags         cierres_caja
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCashClosureRequest  true  "período y monto contado"
// @Success      201   {object}  dto.CashClosureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /cierres-caja [post]
func (h *CashClosureHandler) Create(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateCashClosureRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), tc, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /cierres-caja/:id
func (h *CashClosureHandler) Get(c *fiber.Ctx) error {
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

// PDF godoc
// @Summary      Descargar cierre de caja en PDF
// @Tags         cierres_caja
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del cierre"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cierres-caja/{id}/pdf [get]
func (h *CashClosureHandler) PDF(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.uc.ExportPDF(c.UserContext(), tc, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
