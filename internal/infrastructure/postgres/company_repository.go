package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, legal_name, display_name, tax_id, address, phone, email, website, logo_path, active, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa y asigna su id.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (legal_name, display_name, tax_id, address, phone, email, website, logo_path, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.LegalName, c.DisplayName, c.TaxID, c.Address, c.Phone, c.Email,
		c.Website, c.LogoPath, c.Active, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	return writeErr("insert company", err)
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	return r.one(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByTaxID obtiene una empresa por RUT.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error) {
	return r.one(ctx, `SELECT `+companyColumns+` FROM companies WHERE tax_id = $1`, taxID)
}

// FirstActive devuelve la empresa activa de menor id.
func (r *CompanyRepo) FirstActive(ctx context.Context) (*entity.Company, error) {
	return r.one(ctx, `SELECT `+companyColumns+` FROM companies WHERE active ORDER BY id LIMIT 1`)
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		   SET legal_name = $2, display_name = $3, tax_id = $4, address = $5, phone = $6,
		       email = $7, website = $8, logo_path = $9, active = $10, updated_at = $11
		 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.LegalName, c.DisplayName, c.TaxID, c.Address, c.Phone,
		c.Email, c.Website, c.LogoPath, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return writeErr("update company", err)
	}
	return affected(tag)
}

// List devuelve empresas con paginación, por id ascendente.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	return r.many(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id LIMIT $1 OFFSET $2`, limitOrAll(limit), offset)
}

// ListActive devuelve todas las empresas activas.
func (r *CompanyRepo) ListActive(ctx context.Context) ([]*entity.Company, error) {
	return r.many(ctx, `SELECT `+companyColumns+` FROM companies WHERE active ORDER BY id`)
}

// SetActive activa o desactiva una empresa.
func (r *CompanyRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE companies SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set company active: %w", err)
	}
	return affected(tag)
}

// Delete elimina una empresa; sucursales, membresías y datos clínicos caen en cascada.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.LegalName, &c.DisplayName, &c.TaxID, &c.Address, &c.Phone,
		&c.Email, &c.Website, &c.LogoPath, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) one(ctx context.Context, query string, args ...any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

func (r *CompanyRepo) many(ctx context.Context, query string, args ...any) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	list := []*entity.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
