package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, company_id, branch_id, patient_id, treatment_id, payment_method_id, amount, paid_at,
	reference, notes, created_by, closure_id, created_at, updated_at`

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create inserta el pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, company_id, branch_id, patient_id, treatment_id, payment_method_id, amount, paid_at,
		                      reference, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.BranchID, p.PatientID, p.TreatmentID, p.PaymentMethodID, p.Amount, p.PaidAt,
		p.Reference, p.Notes, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	return writeErr("insert payment", err)
}

// GetByID pago de la empresa.
func (r *PaymentRepo) GetByID(ctx context.Context, companyID int64, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// Update actualiza un pago abierto. Un pago ya cerrado no se toca (domain.ErrConflict).
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE payments
		   SET treatment_id = $3, payment_method_id = $4, amount = $5, paid_at = $6, reference = $7,
		       notes = $8, updated_at = $9
		 WHERE id = $1 AND company_id = $2 AND closure_id IS NULL`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.TreatmentID, p.PaymentMethodID, p.Amount, p.PaidAt, p.Reference, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return writeErr("update payment", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrClosed(ctx, p.CompanyID, p.ID)
	}
	return nil
}

// Delete elimina un pago abierto.
func (r *PaymentRepo) Delete(ctx context.Context, companyID int64, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE company_id = $1 AND id = $2 AND closure_id IS NULL`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrClosed(ctx, companyID, id)
	}
	return nil
}

// List pagos filtrados, más recientes primero. To es exclusivo.
func (r *PaymentRepo) List(ctx context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	var c conds
	c.add("company_id = ?", f.CompanyID)
	if f.BranchID != nil {
		c.add("branch_id = ?", *f.BranchID)
	}
	if f.PatientID != "" {
		c.add("patient_id = ?", f.PatientID)
	}
	if f.From != nil {
		c.add("paid_at >= ?", *f.From)
	}
	if f.To != nil {
		c.add("paid_at < ?", *f.To)
	}
	query := `SELECT ` + paymentColumns + ` FROM payments` + c.where() + ` ORDER BY paid_at DESC`
	query += c.page(f.Limit, f.Offset)
	return r.many(ctx, query, c.args...)
}

// ListUnclosedForUpdate pagos sin cierre del período, bloqueados (FOR UPDATE) hasta el fin de la tx.
func (r *PaymentRepo) ListUnclosedForUpdate(ctx context.Context, companyID int64, branchID *int64, from, to time.Time) ([]*entity.Payment, error) {
	var c conds
	c.add("company_id = ?", companyID)
	c.add("closure_id IS NULL")
	if branchID != nil {
		c.add("branch_id = ?", *branchID)
	}
	c.add("paid_at >= ? AND paid_at < ?", from, to)
	query := `SELECT ` + paymentColumns + ` FROM payments` + c.where() + ` ORDER BY paid_at FOR UPDATE`
	return r.many(ctx, query, c.args...)
}

// AssignClosure marca los pagos con el cierre. Falla con ErrConflict si alguno ya estaba cerrado.
func (r *PaymentRepo) AssignClosure(ctx context.Context, ids []string, closureID string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE payments SET closure_id = $2, updated_at = now() WHERE id = ANY($1::uuid[]) AND closure_id IS NULL`,
		ids, closureID)
	if err != nil {
		return writeErr("assign closure", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return fmt.Errorf("assign closure: %w", domain.ErrConflict)
	}
	return nil
}

func (r *PaymentRepo) missingOrClosed(ctx context.Context, companyID int64, id string) error {
	p, err := r.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	if err := row.Scan(&p.ID, &p.CompanyID, &p.BranchID, &p.PatientID, &p.TreatmentID, &p.PaymentMethodID,
		&p.Amount, &p.PaidAt, &p.Reference, &p.Notes, &p.CreatedBy, &p.ClosureID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) many(ctx context.Context, query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := []*entity.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
