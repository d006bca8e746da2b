package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
)

// PatientHandler endpoints de /pacientes.
type PatientHandler struct {
	uc *usecase.PatientUseCase
}

// NewPatientHandler construye el handler.
func NewPatientHandler(uc *usecase.PatientUseCase) *PatientHandler {
	return &PatientHandler{uc: uc}
}

// List godoc
// @Summary      Listar pacientes
// @Description  Incluye pacientes propios de la empresa actual y los compartidos con ella.
// @Tags         pacientes
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por nombre o documento"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.PatientListResponse
// @Router       /pacientes [get]
func (h *PatientHandler) List(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	p := page(c)
	out, err := h.uc.List(c.UserContext(), tc, c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create POST /pacientes
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreatePatientRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), tc, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /pacientes/:id
func (h *PatientHandler) Get(c *fiber.Ctx) error {
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

// Update PUT /pacientes/:id
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdatePatientRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), tc, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete desactiva el paciente (baja lógica).
// DELETE /pacientes/:id
func (h *PatientHandler) Delete(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Deactivate(c.UserContext(), tc, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Share godoc
// @Summary      Compartir paciente con otras empresas
// @Description  Reemplaza la lista de empresas con acceso al paciente.
// @Tags         pacientes
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del paciente"
// @Param        body  body  dto.SharePatientRequest  true  "empresas"
// @Success      200   {object}  dto.PatientResponse
// @Router       /pacientes/{id}/compartir [post]
func (h *PatientHandler) Share(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SharePatientRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Share(c.UserContext(), tc, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
