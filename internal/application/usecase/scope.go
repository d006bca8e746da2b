package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

// requireCompany valida que el contexto tenga empresa. El gate ya lo garantiza en HTTP.
func requireCompany(tc entity.TenantContext) error {
	if tc.CompanyID == 0 {
		return domain.ErrTenantUnresolved
	}
	return nil
}

// requireBranch las operaciones de caja y agenda necesitan sucursal actual.
func requireBranch(tc entity.TenantContext) error {
	if err := requireCompany(tc); err != nil {
		return err
	}
	if !tc.HasBranch() {
		return fmt.Errorf("%w: seleccione una sucursal", domain.ErrInvalidInput)
	}
	return nil
}

// checkCatalogRef valida que el id opcional exista en el catálogo de la empresa.
func checkCatalogRef(ctx context.Context, catalog repository.CatalogRepository, kind entity.CatalogKind, companyID int64, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	item, err := catalog.GetByID(ctx, kind, companyID, *id)
	if err != nil {
		return fmt.Errorf("catálogo %s: %w", kind, err)
	}
	if item == nil {
		return fmt.Errorf("%w: %s %s no existe en la empresa", domain.ErrInvalidInput, kind, *id)
	}
	return nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
