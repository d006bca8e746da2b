package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/dental-clinic-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del día y del mes en curso para la empresa actual.
// GET /dashboard
//
// Respuesta: DashboardSummaryDTO (appointments_today, income_today, income_month,
// open_treatments, date_label). Si hay sucursal actual, los totales se limitan a ella.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	tc, err := tenantOf(c)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), tc)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
