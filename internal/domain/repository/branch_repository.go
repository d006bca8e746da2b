package repository

import (
	"context"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	Update(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id int64) (*entity.Branch, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Branch, error)
	// ListActiveByCompany devuelve las sucursales activas ordenadas por nombre.
	ListActiveByCompany(ctx context.Context, companyID int64) ([]*entity.Branch, error)
	// ClearPrimary desmarca is_primary en todas las sucursales de la empresa salvo exceptID (0 = ninguna).
	ClearPrimary(ctx context.Context, companyID, exceptID int64) error
}
