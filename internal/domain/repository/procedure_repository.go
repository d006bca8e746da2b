package repository

import (
	"context"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// ProcedureRepository define el puerto de persistencia para Procedure.
type ProcedureRepository interface {
	Create(ctx context.Context, p *entity.Procedure) error
	GetByID(ctx context.Context, companyID int64, id string) (*entity.Procedure, error)
	Update(ctx context.Context, p *entity.Procedure) error
	Delete(ctx context.Context, companyID int64, id string) error
	ListByCompany(ctx context.Context, companyID int64, onlyActive bool, limit, offset int) ([]*entity.Procedure, error)
}
