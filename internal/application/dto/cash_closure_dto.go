package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCashClosureRequest entrada para cerrar caja de la sucursal actual en un período.
type CreateCashClosureRequest struct {
	PeriodFrom   time.Time       `json:"period_from" validate:"required"`
	PeriodTo     time.Time       `json:"period_to" validate:"required,gtfield=PeriodFrom"`
	CountedTotal decimal.Decimal `json:"counted_total"`
	Notes        string          `json:"notes"`
}

// CashClosureLineResponse subtotal por medio de pago.
type CashClosureLineResponse struct {
	PaymentMethodID   *string         `json:"payment_method_id,omitempty"`
	PaymentMethodName string          `json:"payment_method_name"`
	PaymentsCount     int             `json:"payments_count"`
	Total             decimal.Decimal `json:"total"`
}

// CashClosureResponse salida de un cierre de caja.
type CashClosureResponse struct {
	ID            string                    `json:"id"`
	CompanyID     int64                     `json:"company_id"`
	BranchID      *int64                    `json:"branch_id,omitempty"`
	PeriodFrom    time.Time                 `json:"period_from"`
	PeriodTo      time.Time                 `json:"period_to"`
	ExpectedTotal decimal.Decimal           `json:"expected_total"`
	CountedTotal  decimal.Decimal           `json:"counted_total"`
	Difference    decimal.Decimal           `json:"difference"`
	PaymentsCount int                       `json:"payments_count"`
	Lines         []CashClosureLineResponse `json:"lines"`
	Notes         string                    `json:"notes"`
	ClosedBy      string                    `json:"closed_by"`
	ClosedAt      time.Time                 `json:"closed_at"`
}

// CashClosureListResponse lista paginada de cierres.
type CashClosureListResponse struct {
	Items []CashClosureResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
