package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment abono de un paciente. Una vez incluido en un cierre de caja queda inmutable.
type Payment struct {
	ID              string
	CompanyID       int64
	BranchID        *int64
	PatientID       string
	TreatmentID     *string
	PaymentMethodID *string
	Amount          decimal.Decimal
	PaidAt          time.Time
	Reference       string
	Notes           string
	CreatedBy       string
	ClosureID       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Closed informa si el pago ya pertenece a un cierre de caja.
func (p *Payment) Closed() bool {
	return p.ClosureID != nil
}
