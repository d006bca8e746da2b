package repository

import (
	"context"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// CashClosureRepository define el puerto de persistencia para CashRegisterClosure.
type CashClosureRepository interface {
	// Create persiste la cabecera y sus líneas.
	Create(ctx context.Context, c *entity.CashRegisterClosure) error
	GetByID(ctx context.Context, companyID int64, id string) (*entity.CashRegisterClosure, error)
	List(ctx context.Context, companyID int64, branchID *int64, limit, offset int) ([]*entity.CashRegisterClosure, error)
}
