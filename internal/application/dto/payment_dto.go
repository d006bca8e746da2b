package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest entrada para registrar un pago en la sucursal actual.
type CreatePaymentRequest struct {
	PatientID       string          `json:"patient_id" validate:"required,uuid"`
	TreatmentID     *string         `json:"treatment_id" validate:"omitempty,uuid"`
	PaymentMethodID *string         `json:"payment_method_id" validate:"omitempty,uuid"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAt          *time.Time      `json:"paid_at"`
	Reference       string          `json:"reference" validate:"max=120"`
	Notes           string          `json:"notes"`
}

// UpdatePaymentRequest cambios parciales de un pago aún no cerrado.
type UpdatePaymentRequest struct {
	PaymentMethodID *string          `json:"payment_method_id" validate:"omitempty,uuid"`
	Amount          *decimal.Decimal `json:"amount"`
	PaidAt          *time.Time       `json:"paid_at"`
	Reference       *string          `json:"reference" validate:"omitempty,max=120"`
	Notes           *string          `json:"notes"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID              string          `json:"id"`
	CompanyID       int64           `json:"company_id"`
	BranchID        *int64          `json:"branch_id,omitempty"`
	PatientID       string          `json:"patient_id"`
	TreatmentID     *string         `json:"treatment_id,omitempty"`
	PaymentMethodID *string         `json:"payment_method_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAt          time.Time       `json:"paid_at"`
	Reference       string          `json:"reference"`
	Notes           string          `json:"notes"`
	CreatedBy       string          `json:"created_by"`
	ClosureID       *string         `json:"closure_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PaymentListResponse lista paginada de pagos.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
