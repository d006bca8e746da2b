package repository

import (
	"context"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// PatientFilter filtros de listado de pacientes.
type PatientFilter struct {
	CompanyID int64
	BranchID  *int64 // solo aplica a fichas sin compartir_entre_sucursales
	Search    string
	Limit     int
	Offset    int
}

// PatientRepository define el puerto de persistencia para Patient.
type PatientRepository interface {
	Create(ctx context.Context, p *entity.Patient) error
	// GetVisible devuelve la ficha si es propia de companyID o está compartida con ella.
	GetVisible(ctx context.Context, companyID int64, id string) (*entity.Patient, error)
	GetByDocument(ctx context.Context, companyID int64, documentID string) (*entity.Patient, error)
	Update(ctx context.Context, p *entity.Patient) error
	// ListVisible incluye fichas propias O compartidas explícitamente con la empresa.
	ListVisible(ctx context.Context, f PatientFilter) ([]*entity.Patient, error)
	ReplaceShares(ctx context.Context, patientID string, companyIDs []int64) error
}
