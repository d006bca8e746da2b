package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTreatmentRequest entrada para registrar un tratamiento.
type CreateTreatmentRequest struct {
	PatientID      string          `json:"patient_id" validate:"required,uuid"`
	ProfessionalID *string         `json:"professional_id" validate:"omitempty,uuid"`
	ProcedureID    *string         `json:"procedure_id" validate:"omitempty,uuid"`
	Tooth          string          `json:"tooth" validate:"max=10"`
	Description    string          `json:"description" validate:"max=500"`
	Status         string          `json:"status" validate:"omitempty,oneof=planned in_progress completed cancelled"`
	Price          decimal.Decimal `json:"price"`
	StartedOn      *time.Time      `json:"started_on"`
}

// UpdateTreatmentRequest cambios parciales de un tratamiento.
type UpdateTreatmentRequest struct {
	ProfessionalID *string          `json:"professional_id" validate:"omitempty,uuid"`
	ProcedureID    *string          `json:"procedure_id" validate:"omitempty,uuid"`
	Tooth          *string          `json:"tooth" validate:"omitempty,max=10"`
	Description    *string          `json:"description" validate:"omitempty,max=500"`
	Status         *string          `json:"status" validate:"omitempty,oneof=planned in_progress completed cancelled"`
	Price          *decimal.Decimal `json:"price"`
	StartedOn      *time.Time       `json:"started_on"`
	CompletedOn    *time.Time       `json:"completed_on"`
}

// TreatmentResponse salida de un tratamiento.
type TreatmentResponse struct {
	ID             string          `json:"id"`
	CompanyID      int64           `json:"company_id"`
	BranchID       *int64          `json:"branch_id,omitempty"`
	PatientID      string          `json:"patient_id"`
	ProfessionalID *string         `json:"professional_id,omitempty"`
	ProcedureID    *string         `json:"procedure_id,omitempty"`
	Tooth          string          `json:"tooth"`
	Description    string          `json:"description"`
	Status         string          `json:"status"`
	Price          decimal.Decimal `json:"price"`
	StartedOn      *time.Time      `json:"started_on,omitempty"`
	CompletedOn    *time.Time      `json:"completed_on,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TreatmentListResponse lista paginada de tratamientos.
type TreatmentListResponse struct {
	Items []TreatmentResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
