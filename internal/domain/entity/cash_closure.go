package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegisterClosure cierre de caja de una sucursal para un período.
type CashRegisterClosure struct {
	ID            string
	CompanyID     int64
	BranchID      *int64
	PeriodFrom    time.Time
	PeriodTo      time.Time
	ExpectedTotal decimal.Decimal
	CountedTotal  decimal.Decimal
	Difference    decimal.Decimal
	PaymentsCount int
	Lines         []CashRegisterClosureLine
	Notes         string
	ClosedBy      string
	ClosedAt      time.Time
	CreatedAt     time.Time
}

// CashRegisterClosureLine subtotal de un cierre por medio de pago.
type CashRegisterClosureLine struct {
	ClosureID         string
	PaymentMethodID   *string
	PaymentMethodName string
	PaymentsCount     int
	Total             decimal.Decimal
}
