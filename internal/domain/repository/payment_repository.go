package repository

import (
	"context"
	"time"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// PaymentFilter filtros de pagos.
type PaymentFilter struct {
	CompanyID int64
	BranchID  *int64
	PatientID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// PaymentRepository define el puerto de persistencia para Payment (usable con pool o tx).
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, companyID int64, id string) (*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, companyID int64, id string) error
	List(ctx context.Context, f PaymentFilter) ([]*entity.Payment, error)
	// ListUnclosedForUpdate bloquea los pagos sin cierre del período (misma sucursal) para un cierre.
	ListUnclosedForUpdate(ctx context.Context, companyID int64, branchID *int64, from, to time.Time) ([]*entity.Payment, error)
	AssignClosure(ctx context.Context, paymentIDs []string, closureID string) error
}
