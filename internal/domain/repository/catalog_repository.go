package repository

import (
	"context"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// CatalogRepository puerto común para los catálogos por empresa (una tabla por CatalogKind).
type CatalogRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	GetByID(ctx context.Context, kind entity.CatalogKind, companyID int64, id string) (*entity.CatalogItem, error)
	Update(ctx context.Context, item *entity.CatalogItem) error
	Delete(ctx context.Context, kind entity.CatalogKind, companyID int64, id string) error
	List(ctx context.Context, kind entity.CatalogKind, companyID int64, onlyActive bool) ([]*entity.CatalogItem, error)
}
