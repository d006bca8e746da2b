package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

const defaultAppointmentMinutes = 30

// AppointmentListQuery filtros de GET /citas.
type AppointmentListQuery struct {
	From      *time.Time
	To        *time.Time
	Status    string
	PatientID string
	Limit     int
	Offset    int
}

// AppointmentUseCase agenda de la sucursal actual.
type AppointmentUseCase struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	catalog      repository.CatalogRepository
	memberships  repository.MembershipRepository
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	catalog repository.CatalogRepository,
	memberships repository.MembershipRepository,
) *AppointmentUseCase {
	return &AppointmentUseCase{appointments: appointments, patients: patients, catalog: catalog, memberships: memberships}
}

// List citas de la empresa, acotadas a la sucursal actual si la hay.
func (uc *AppointmentUseCase) List(ctx context.Context, tc entity.TenantContext, q AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	status := entity.AppointmentStatus(q.Status)
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, q.Status)
	}
	limit, offset := clampPage(q.Limit, q.Offset)
	list, err := uc.appointments.List(ctx, repository.AppointmentFilter{
		CompanyID: tc.CompanyID,
		BranchID:  tc.BranchID,
		PatientID: q.PatientID,
		Status:    status,
		From:      q.From,
		To:        q.To,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("appointment: listar: %w", err)
	}
	items := make([]dto.AppointmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAppointmentResponse(a))
	}
	return &dto.AppointmentListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Create agenda una cita en la sucursal actual.
func (uc *AppointmentUseCase) Create(ctx context.Context, tc entity.TenantContext, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := requireBranch(tc); err != nil {
		return nil, err
	}
	patient, err := uc.patients.GetVisible(ctx, tc.CompanyID, in.PatientID)
	if err != nil {
		return nil, fmt.Errorf("appointment: obtener paciente: %w", err)
	}
	if patient == nil || !patient.Active {
		return nil, fmt.Errorf("%w: paciente no encontrado", domain.ErrInvalidInput)
	}
	if err := checkCatalogRef(ctx, uc.catalog, entity.CatalogSpecialties, tc.CompanyID, in.SpecialtyID); err != nil {
		return nil, err
	}
	if err := uc.checkProfessional(ctx, tc.CompanyID, in.ProfessionalID); err != nil {
		return nil, err
	}
	duration := in.DurationMinutes
	if duration == 0 {
		duration = defaultAppointmentMinutes
	}
	now := time.Now()
	a := &entity.Appointment{
		ID:              uuid.New().String(),
		CompanyID:       tc.CompanyID,
		BranchID:        tc.BranchID,
		PatientID:       patient.ID,
		ProfessionalID:  in.ProfessionalID,
		SpecialtyID:     in.SpecialtyID,
		StartsAt:        in.StartsAt,
		DurationMinutes: duration,
		Status:          entity.AppointmentScheduled,
		Reason:          strings.TrimSpace(in.Reason),
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.checkOverlap(ctx, a); err != nil {
		return nil, err
	}
	if err := uc.appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// checkProfessional el profesional debe tener membresía activa en la empresa.
func (uc *AppointmentUseCase) checkProfessional(ctx context.Context, companyID int64, userID *string) error {
	if userID == nil {
		return nil
	}
	m, err := uc.memberships.FindByUserAndCompany(ctx, *userID, companyID)
	if err != nil {
		return fmt.Errorf("appointment: membresía del profesional: %w", err)
	}
	if m == nil || !m.Active {
		return fmt.Errorf("%w: el profesional no pertenece a la empresa", domain.ErrInvalidInput)
	}
	return nil
}

// Get detalle de una cita de la empresa.
func (uc *AppointmentUseCase) Get(ctx context.Context, tc entity.TenantContext, id string) (*dto.AppointmentResponse, error) {
	a, err := uc.get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// Update reagenda o edita una cita que no esté en estado final.
func (uc *AppointmentUseCase) Update(ctx context.Context, tc entity.TenantContext, id string, in dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	a, err := uc.get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if a.Status.Final() {
		return nil, fmt.Errorf("%w: la cita está %s", domain.ErrConflict, a.Status)
	}
	if in.ProfessionalID != nil {
		if err := uc.checkProfessional(ctx, tc.CompanyID, in.ProfessionalID); err != nil {
			return nil, err
		}
		a.ProfessionalID = in.ProfessionalID
	}
	if in.SpecialtyID != nil {
		if err := checkCatalogRef(ctx, uc.catalog, entity.CatalogSpecialties, tc.CompanyID, in.SpecialtyID); err != nil {
			return nil, err
		}
		a.SpecialtyID = in.SpecialtyID
	}
	if in.StartsAt != nil {
		a.StartsAt = *in.StartsAt
	}
	if in.DurationMinutes != nil {
		a.DurationMinutes = *in.DurationMinutes
	}
	if in.Reason != nil {
		a.Reason = strings.TrimSpace(*in.Reason)
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	if err := uc.checkOverlap(ctx, a); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now()
	if err := uc.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// ChangeStatus mueve la cita de estado. Los estados finales no admiten cambios.
func (uc *AppointmentUseCase) ChangeStatus(ctx context.Context, tc entity.TenantContext, id string, in dto.ChangeAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	status := entity.AppointmentStatus(in.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	a, err := uc.get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if a.Status == status {
		return toAppointmentResponse(a), nil
	}
	if a.Status.Final() {
		return nil, fmt.Errorf("%w: la cita ya está %s", domain.ErrConflict, a.Status)
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	if err := uc.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// Delete elimina la cita.
func (uc *AppointmentUseCase) Delete(ctx context.Context, tc entity.TenantContext, id string) error {
	if err := requireCompany(tc); err != nil {
		return err
	}
	return uc.appointments.Delete(ctx, tc.CompanyID, id)
}

func (uc *AppointmentUseCase) get(ctx context.Context, tc entity.TenantContext, id string) (*entity.Appointment, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	a, err := uc.appointments.GetByID(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("appointment: obtener: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// checkOverlap un profesional no puede tener dos citas vigentes que se traslapen.
func (uc *AppointmentUseCase) checkOverlap(ctx context.Context, a *entity.Appointment) error {
	if a.ProfessionalID == nil || *a.ProfessionalID == "" {
		return nil
	}
	from := a.StartsAt.Add(-8 * time.Hour)
	to := a.EndsAt()
	list, err := uc.appointments.List(ctx, repository.AppointmentFilter{
		CompanyID:      a.CompanyID,
		ProfessionalID: *a.ProfessionalID,
		From:           &from,
		To:             &to,
		Limit:          200,
	})
	if err != nil {
		return fmt.Errorf("appointment: verificar traslape: %w", err)
	}
	for _, other := range list {
		if other.ID == a.ID || other.Status == entity.AppointmentCancelled || other.Status == entity.AppointmentNoShow {
			continue
		}
		if other.StartsAt.Before(a.EndsAt()) && a.StartsAt.Before(other.EndsAt()) {
			return fmt.Errorf("%w: el profesional ya tiene una cita a las %s", domain.ErrConflict, other.StartsAt.Format("15:04"))
		}
	}
	return nil
}

func toAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	var branchID int64
	if a.BranchID != nil {
		branchID = *a.BranchID
	}
	return &dto.AppointmentResponse{
		ID:              a.ID,
		CompanyID:       a.CompanyID,
		BranchID:        branchID,
		PatientID:       a.PatientID,
		ProfessionalID:  a.ProfessionalID,
		SpecialtyID:     a.SpecialtyID,
		StartsAt:        a.StartsAt,
		EndsAt:          a.EndsAt(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Reason:          a.Reason,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
