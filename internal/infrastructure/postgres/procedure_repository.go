package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.ProcedureRepository = (*ProcedureRepo)(nil)

const procedureColumns = `id, company_id, specialty_id, code, name, price, active, created_at, updated_at`

// ProcedureRepo implementación de ProcedureRepository sobre PostgreSQL.
type ProcedureRepo struct {
	q Querier
}

// NewProcedureRepository construye el adaptador.
func NewProcedureRepository(q Querier) *ProcedureRepo {
	return &ProcedureRepo{q: q}
}

// Create inserta la prestación. uq_procedures_company_code -> domain.ErrDuplicate.
func (r *ProcedureRepo) Create(ctx context.Context, p *entity.Procedure) error {
	query := `
		INSERT INTO procedures (id, company_id, specialty_id, code, name, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.SpecialtyID, p.Code, p.Name, p.Price, p.Active, p.CreatedAt, p.UpdatedAt)
	return writeErr("insert procedure", err)
}

// GetByID prestación de la empresa.
func (r *ProcedureRepo) GetByID(ctx context.Context, companyID int64, id string) (*entity.Procedure, error) {
	p, err := scanProcedure(r.q.QueryRow(ctx,
		`SELECT `+procedureColumns+` FROM procedures WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get procedure: %w", err)
	}
	return p, nil
}

// Update actualiza la prestación.
func (r *ProcedureRepo) Update(ctx context.Context, p *entity.Procedure) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE procedures SET specialty_id = $3, code = $4, name = $5, price = $6, active = $7, updated_at = $8
		 WHERE id = $1 AND company_id = $2`,
		p.ID, p.CompanyID, p.SpecialtyID, p.Code, p.Name, p.Price, p.Active, p.UpdatedAt)
	if err != nil {
		return writeErr("update procedure", err)
	}
	return affected(tag)
}

// Delete elimina la prestación. Los tratamientos que la usan quedan con procedure_id NULL.
func (r *ProcedureRepo) Delete(ctx context.Context, companyID int64, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM procedures WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete procedure: %w", err)
	}
	return affected(tag)
}

// ListByCompany arancel de la empresa ordenado por nombre.
func (r *ProcedureRepo) ListByCompany(ctx context.Context, companyID int64, onlyActive bool, limit, offset int) ([]*entity.Procedure, error) {
	var c conds
	c.add("company_id = ?", companyID)
	if onlyActive {
		c.add("active")
	}
	query := `SELECT ` + procedureColumns + ` FROM procedures` + c.where() + ` ORDER BY name`
	query += c.page(limit, offset)

	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list procedures: %w", err)
	}
	defer rows.Close()
	list := []*entity.Procedure{}
	for rows.Next() {
		p, err := scanProcedure(rows)
		if err != nil {
			return nil, fmt.Errorf("scan procedure: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProcedure(row pgx.Row) (*entity.Procedure, error) {
	var p entity.Procedure
	if err := row.Scan(&p.ID, &p.CompanyID, &p.SpecialtyID, &p.Code, &p.Name, &p.Price, &p.Active,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
