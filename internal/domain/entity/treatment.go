package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreatmentStatus estado de un tratamiento.
type TreatmentStatus string

const (
	TreatmentPlanned    TreatmentStatus = "planned"
	TreatmentInProgress TreatmentStatus = "in_progress"
	TreatmentCompleted  TreatmentStatus = "completed"
	TreatmentCancelled  TreatmentStatus = "cancelled"
)

// Valid informa si el estado es conocido.
func (s TreatmentStatus) Valid() bool {
	switch s {
	case TreatmentPlanned, TreatmentInProgress, TreatmentCompleted, TreatmentCancelled:
		return true
	}
	return false
}

// Treatment prestación clínica sobre un paciente (p. ej. una pieza dental).
type Treatment struct {
	ID             string
	CompanyID      int64
	BranchID       *int64
	PatientID      string
	ProfessionalID *string
	ProcedureID    *string
	Tooth          string
	Description    string
	Status         TreatmentStatus
	Price          decimal.Decimal
	StartedOn      *time.Time
	CompletedOn    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
