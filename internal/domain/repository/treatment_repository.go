package repository

import (
	"context"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// TreatmentFilter filtros de tratamientos.
type TreatmentFilter struct {
	CompanyID int64
	BranchID  *int64
	PatientID string
	Status    entity.TreatmentStatus
	Limit     int
	Offset    int
}

// TreatmentRepository define el puerto de persistencia para Treatment.
type TreatmentRepository interface {
	Create(ctx context.Context, t *entity.Treatment) error
	GetByID(ctx context.Context, companyID int64, id string) (*entity.Treatment, error)
	Update(ctx context.Context, t *entity.Treatment) error
	Delete(ctx context.Context, companyID int64, id string) error
	List(ctx context.Context, f TreatmentFilter) ([]*entity.Treatment, error)
}
