package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.CashClosureRepository = (*CashClosureRepo)(nil)

const closureColumns = `id, company_id, branch_id, period_from, period_to, expected_total, counted_total, difference,
	payments_count, notes, closed_by, closed_at, created_at`

// CashClosureRepo implementación de CashClosureRepository (usable con pool o tx).
type CashClosureRepo struct {
	q Querier
}

// NewCashClosureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashClosureRepository(q Querier) *CashClosureRepo {
	return &CashClosureRepo{q: q}
}

// Create inserta cabecera y líneas. Debe ejecutarse dentro de la tx del cierre.
func (r *CashClosureRepo) Create(ctx context.Context, c *entity.CashRegisterClosure) error {
	query := `
		INSERT INTO cash_register_closures (id, company_id, branch_id, period_from, period_to, expected_total,
		                                    counted_total, difference, payments_count, notes, closed_by, closed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.BranchID, c.PeriodFrom, c.PeriodTo, c.ExpectedTotal,
		c.CountedTotal, c.Difference, c.PaymentsCount, c.Notes, c.ClosedBy, c.ClosedAt, c.CreatedAt,
	)
	if err != nil {
		return writeErr("insert cash closure", err)
	}
	for i := range c.Lines {
		l := &c.Lines[i]
		l.ClosureID = c.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO cash_register_closure_lines (closure_id, payment_method_id, payment_method_name, payments_count, total)
			VALUES ($1, $2, $3, $4, $5)`,
			l.ClosureID, l.PaymentMethodID, l.PaymentMethodName, l.PaymentsCount, l.Total)
		if err != nil {
			return writeErr("insert cash closure line", err)
		}
	}
	return nil
}

// GetByID cierre de la empresa con sus líneas.
func (r *CashClosureRepo) GetByID(ctx context.Context, companyID int64, id string) (*entity.CashRegisterClosure, error) {
	c, err := scanClosure(r.q.QueryRow(ctx,
		`SELECT `+closureColumns+` FROM cash_register_closures WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash closure: %w", err)
	}
	if c.Lines, err = r.lines(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// List cierres de la empresa (y sucursal), más recientes primero. No carga las líneas.
func (r *CashClosureRepo) List(ctx context.Context, companyID int64, branchID *int64, limit, offset int) ([]*entity.CashRegisterClosure, error) {
	var c conds
	c.add("company_id = ?", companyID)
	if branchID != nil {
		c.add("branch_id = ?", *branchID)
	}
	query := `SELECT ` + closureColumns + ` FROM cash_register_closures` + c.where() + ` ORDER BY closed_at DESC`
	query += c.page(limit, offset)

	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list cash closures: %w", err)
	}
	defer rows.Close()
	list := []*entity.CashRegisterClosure{}
	for rows.Next() {
		cl, err := scanClosure(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash closure: %w", err)
		}
		list = append(list, cl)
	}
	return list, rows.Err()
}

func (r *CashClosureRepo) lines(ctx context.Context, closureID string) ([]entity.CashRegisterClosureLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT closure_id, payment_method_id, payment_method_name, payments_count, total
		  FROM cash_register_closure_lines
		 WHERE closure_id = $1
		 ORDER BY payment_method_name`, closureID)
	if err != nil {
		return nil, fmt.Errorf("list closure lines: %w", err)
	}
	defer rows.Close()
	out := []entity.CashRegisterClosureLine{}
	for rows.Next() {
		var l entity.CashRegisterClosureLine
		if err := rows.Scan(&l.ClosureID, &l.PaymentMethodID, &l.PaymentMethodName, &l.PaymentsCount, &l.Total); err != nil {
			return nil, fmt.Errorf("scan closure line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanClosure(row pgx.Row) (*entity.CashRegisterClosure, error) {
	var c entity.CashRegisterClosure
	if err := row.Scan(&c.ID, &c.CompanyID, &c.BranchID, &c.PeriodFrom, &c.PeriodTo, &c.ExpectedTotal,
		&c.CountedTotal, &c.Difference, &c.PaymentsCount, &c.Notes, &c.ClosedBy, &c.ClosedAt, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
