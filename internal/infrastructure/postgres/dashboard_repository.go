package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas read-only para el resumen del tenant.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountAppointments citas no canceladas con inicio en [from, to).
func (r *DashboardRepo) CountAppointments(ctx context.Context, companyID int64, branchID *int64, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT count(*)
		  FROM appointments
		 WHERE company_id = $1
		   AND ($2::bigint IS NULL OR branch_id = $2)
		   AND status <> 'cancelled'
		   AND starts_at >= $3 AND starts_at < $4`,
		companyID, branchID, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return n, nil
}

// SumPayments total y cantidad de pagos con fecha en [from, to).
func (r *DashboardRepo) SumPayments(ctx context.Context, companyID int64, branchID *int64, from, to time.Time) (decimal.Decimal, int, error) {
	var (
		total decimal.Decimal
		n     int
	)
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0), count(*)
		  FROM payments
		 WHERE company_id = $1
		   AND ($2::bigint IS NULL OR branch_id = $2)
		   AND paid_at >= $3 AND paid_at < $4`,
		companyID, branchID, from, to).Scan(&total, &n)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sum payments: %w", err)
	}
	return total, n, nil
}

// CountOpenTreatments tratamientos planificados o en curso.
func (r *DashboardRepo) CountOpenTreatments(ctx context.Context, companyID int64, branchID *int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT count(*)
		  FROM treatments
		 WHERE company_id = $1
		   AND ($2::bigint IS NULL OR branch_id = $2)
		   AND status IN ('planned', 'in_progress')`,
		companyID, branchID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open treatments: %w", err)
	}
	return n, nil
}
