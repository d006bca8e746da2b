package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación común de los catálogos; cada CatalogKind tiene su tabla.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// table resuelve el nombre de tabla desde una lista cerrada; nunca se interpola entrada del usuario.
func table(kind entity.CatalogKind) (string, error) {
	switch kind {
	case entity.CatalogSpecialties:
		return "specialties", nil
	case entity.CatalogPaymentMethods:
		return "payment_methods", nil
	case entity.CatalogPrevisions:
		return "previsions", nil
	}
	return "", fmt.Errorf("catálogo %q: %w", kind, domain.ErrInvalidInput)
}

// Create inserta el elemento. Nombre único por empresa.
func (r *CatalogRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	t, err := table(item.Kind)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO `+t+` (id, company_id, name, code, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.CompanyID, item.Name, item.Code, item.Active, item.CreatedAt, item.UpdatedAt)
	return writeErr("insert "+t, err)
}

// GetByID elemento de la empresa.
func (r *CatalogRepo) GetByID(ctx context.Context, kind entity.CatalogKind, companyID int64, id string) (*entity.CatalogItem, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	item, err := scanCatalogItem(kind, r.q.QueryRow(ctx,
		`SELECT id, company_id, name, code, active, created_at, updated_at FROM `+t+` WHERE company_id = $1 AND id = $2`,
		companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t, err)
	}
	return item, nil
}

// Update actualiza el elemento.
func (r *CatalogRepo) Update(ctx context.Context, item *entity.CatalogItem) error {
	t, err := table(item.Kind)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE `+t+` SET name = $3, code = $4, active = $5, updated_at = $6
		 WHERE id = $1 AND company_id = $2`,
		item.ID, item.CompanyID, item.Name, item.Code, item.Active, item.UpdatedAt)
	if err != nil {
		return writeErr("update "+t, err)
	}
	return affected(tag)
}

// Delete elimina el elemento; las referencias quedan en NULL.
func (r *CatalogRepo) Delete(ctx context.Context, kind entity.CatalogKind, companyID int64, id string) error {
	t, err := table(kind)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM `+t+` WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t, err)
	}
	return affected(tag)
}

// List elementos de la empresa ordenados por nombre.
func (r *CatalogRepo) List(ctx context.Context, kind entity.CatalogKind, companyID int64, onlyActive bool) ([]*entity.CatalogItem, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, company_id, name, code, active, created_at, updated_at FROM ` + t + ` WHERE company_id = $1`
	if onlyActive {
		query += ` AND active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t, err)
	}
	defer rows.Close()
	list := []*entity.CatalogItem{}
	for rows.Next() {
		item, err := scanCatalogItem(kind, rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t, err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanCatalogItem(kind entity.CatalogKind, row pgx.Row) (*entity.CatalogItem, error) {
	item := entity.CatalogItem{Kind: kind}
	if err := row.Scan(&item.ID, &item.CompanyID, &item.Name, &item.Code, &item.Active, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
