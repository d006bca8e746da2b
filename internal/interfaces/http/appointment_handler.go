package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
)

// AppointmentHandler endpoints de /citas.
type AppointmentHandler struct {
	uc *usecase.AppointmentUseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *usecase.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar citas
// @Tags         citas
// @Produce      json
// @Param        desde        query  string  false  "Desde (AAAA-MM-DD)"
// @Param        hasta        query  string  false  "Hasta, inclusive (AAAA-MM-DD)"
// @Param        estado       query  string  false  "Estado"
// @Param        paciente_id  query  string  false  "Paciente"
// @Success      200          {object}  dto.AppointmentListResponse
// @Router       /citas [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
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
	out, err := h.uc.List(c.UserContext(), tc, usecase.AppointmentListQuery{
		From:      from,
		To:        to,
		Status:    c.Query("estado"),
		PatientID: c.Query("paciente_id"),
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create POST /citas
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateAppointmentRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), tc, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /citas/:id
func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
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

// Update PUT /citas/:id
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateAppointmentRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), tc, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus PATCH /citas/:id/estado
func (h *AppointmentHandler) ChangeStatus(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ChangeAppointmentStatusRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), tc, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /citas/:id
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), tc, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
