package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveProcedureRequest entrada para crear o actualizar un procedimiento del arancel.
type SaveProcedureRequest struct {
	SpecialtyID *string         `json:"specialty_id" validate:"omitempty,uuid"`
	Code        string          `json:"code" validate:"required,max=30"`
	Name        string          `json:"name" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price"`
	Active      *bool           `json:"active"`
}

// ProcedureResponse salida de un procedimiento.
type ProcedureResponse struct {
	ID          string          `json:"id"`
	CompanyID   int64           `json:"company_id"`
	SpecialtyID *string         `json:"specialty_id,omitempty"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProcedureListResponse lista paginada de procedimientos.
type ProcedureListResponse struct {
	Items []ProcedureResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
