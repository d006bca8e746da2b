package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Procedure prestación del arancel de la clínica.
type Procedure struct {
	ID          string
	CompanyID   int64
	SpecialtyID *string
	Code        string
	Name        string
	Price       decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
