package repository

import (
	"context"
	"time"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// AppointmentFilter filtros de agenda.
type AppointmentFilter struct {
	CompanyID      int64
	BranchID       *int64
	PatientID      string
	ProfessionalID string
	Status         entity.AppointmentStatus
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// AppointmentRepository define el puerto de persistencia para Appointment.
type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	GetByID(ctx context.Context, companyID int64, id string) (*entity.Appointment, error)
	Update(ctx context.Context, a *entity.Appointment) error
	Delete(ctx context.Context, companyID int64, id string) error
	List(ctx context.Context, f AppointmentFilter) ([]*entity.Appointment, error)
}
