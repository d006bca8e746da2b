package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /dashboard.
// KPIs del día y del mes en curso para el tenant actual (sucursal si hay).
type DashboardSummaryDTO struct {
	AppointmentsToday int             `json:"appointments_today"`
	IncomeToday       decimal.Decimal `json:"income_today"`
	PaymentsToday     int             `json:"payments_today"`
	IncomeMonth       decimal.Decimal `json:"income_month"`
	PaymentsMonth     int             `json:"payments_month"`
	OpenTreatments    int             `json:"open_treatments"` // planned + in_progress

	DateLabel string `json:"date_label"` // ej: "Marzo 2026"
}
