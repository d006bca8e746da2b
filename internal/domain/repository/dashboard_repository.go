package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardRepository consultas de solo lectura para el resumen del tenant.
type DashboardRepository interface {
	CountAppointments(ctx context.Context, companyID int64, branchID *int64, from, to time.Time) (int, error)
	SumPayments(ctx context.Context, companyID int64, branchID *int64, from, to time.Time) (decimal.Decimal, int, error)
	CountOpenTreatments(ctx context.Context, companyID int64, branchID *int64) (int, error)
}
