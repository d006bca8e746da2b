package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

const branchColumns = `id, company_id, name, address, phone, email, opens_at, closes_at, active, is_primary, created_at, updated_at`

// BranchRepo implementación de BranchRepository (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create inserta la sucursal. El índice parcial uq_branches_primary garantiza una sola principal.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (company_id, name, address, phone, email, opens_at, closes_at, active, is_primary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		b.CompanyID, b.Name, b.Address, b.Phone, b.Email, b.OpensAt, b.ClosesAt,
		b.Active, b.IsPrimary, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	return writeErr("insert branch", err)
}

// Update actualiza la sucursal dentro de su empresa.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	query := `
		UPDATE branches
		   SET name = $3, address = $4, phone = $5, email = $6, opens_at = $7, closes_at = $8,
		       active = $9, is_primary = $10, updated_at = $11
		 WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.Name, b.Address, b.Phone, b.Email, b.OpensAt, b.ClosesAt,
		b.Active, b.IsPrimary, b.UpdatedAt,
	)
	if err != nil {
		return writeErr("update branch", err)
	}
	return affected(tag)
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(ctx context.Context, id int64) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// ListByCompany todas las sucursales de la empresa, principal primero.
func (r *BranchRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Branch, error) {
	return r.many(ctx, `SELECT `+branchColumns+` FROM branches WHERE company_id = $1 ORDER BY is_primary DESC, name`, companyID)
}

// ListActiveByCompany sucursales activas ordenadas por nombre.
func (r *BranchRepo) ListActiveByCompany(ctx context.Context, companyID int64) ([]*entity.Branch, error) {
	return r.many(ctx, `SELECT `+branchColumns+` FROM branches WHERE company_id = $1 AND active ORDER BY name`, companyID)
}

// ClearPrimary desmarca la principal de la empresa salvo exceptID.
func (r *BranchRepo) ClearPrimary(ctx context.Context, companyID, exceptID int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE branches SET is_primary = false, updated_at = now() WHERE company_id = $1 AND id <> $2 AND is_primary`,
		companyID, exceptID)
	if err != nil {
		return fmt.Errorf("clear primary branch: %w", err)
	}
	return nil
}

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.Phone, &b.Email,
		&b.OpensAt, &b.ClosesAt, &b.Active, &b.IsPrimary, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepo) many(ctx context.Context, query string, args ...any) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	list := []*entity.Branch{}
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
