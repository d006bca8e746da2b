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

// TreatmentUseCase tratamientos de pacientes.
type TreatmentUseCase struct {
	treatments repository.TreatmentRepository
	patients   repository.PatientRepository
	procedures repository.ProcedureRepository
}

// NewTreatmentUseCase construye el caso de uso.
func NewTreatmentUseCase(treatments repository.TreatmentRepository, patients repository.PatientRepository, procedures repository.ProcedureRepository) *TreatmentUseCase {
	return &TreatmentUseCase{treatments: treatments, patients: patients, procedures: procedures}
}

// List tratamientos de la empresa, opcionalmente de un paciente.
func (uc *TreatmentUseCase) List(ctx context.Context, tc entity.TenantContext, patientID, status string, limit, offset int) (*dto.TreatmentListResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	st := entity.TreatmentStatus(status)
	if st != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	limit, offset = clampPage(limit, offset)
	list, err := uc.treatments.List(ctx, repository.TreatmentFilter{
		CompanyID: tc.CompanyID,
		BranchID:  tc.BranchID,
		PatientID: patientID,
		Status:    st,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("treatment: listar: %w", err)
	}
	items := make([]dto.TreatmentResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTreatmentResponse(t))
	}
	return &dto.TreatmentListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Create registra un tratamiento. Sin precio toma el del procedimiento del arancel.
func (uc *TreatmentUseCase) Create(ctx context.Context, tc entity.TenantContext, in dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	patient, err := uc.patients.GetVisible(ctx, tc.CompanyID, in.PatientID)
	if err != nil {
		return nil, fmt.Errorf("treatment: obtener paciente: %w", err)
	}
	if patient == nil || !patient.Active {
		return nil, fmt.Errorf("%w: paciente no encontrado", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	price := in.Price
	if in.ProcedureID != nil {
		proc, err := uc.procedure(ctx, tc.CompanyID, *in.ProcedureID)
		if err != nil {
			return nil, err
		}
		if price.IsZero() {
			price = proc.Price
		}
	}
	status := entity.TreatmentStatus(in.Status)
	if status == "" {
		status = entity.TreatmentPlanned
	}
	now := time.Now()
	t := &entity.Treatment{
		ID:             uuid.New().String(),
		CompanyID:      tc.CompanyID,
		BranchID:       tc.BranchID,
		PatientID:      patient.ID,
		ProfessionalID: in.ProfessionalID,
		ProcedureID:    in.ProcedureID,
		Tooth:          strings.TrimSpace(in.Tooth),
		Description:    in.Description,
		Status:         status,
		Price:          price,
		StartedOn:      in.StartedOn,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if status == entity.TreatmentCompleted {
		t.CompletedOn = &now
	}
	if err := uc.treatments.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTreatmentResponse(t), nil
}

// Get detalle de un tratamiento.
func (uc *TreatmentUseCase) Get(ctx context.Context, tc entity.TenantContext, id string) (*dto.TreatmentResponse, error) {
	t, err := uc.get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return toTreatmentResponse(t), nil
}

// Update aplica cambios parciales. Al completar sin fecha se usa la fecha actual.
func (uc *TreatmentUseCase) Update(ctx context.Context, tc entity.TenantContext, id string, in dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error) {
	t, err := uc.get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if in.ProfessionalID != nil {
		t.ProfessionalID = in.ProfessionalID
	}
	if in.ProcedureID != nil {
		if _, err := uc.procedure(ctx, tc.CompanyID, *in.ProcedureID); err != nil {
			return nil, err
		}
		t.ProcedureID = in.ProcedureID
	}
	if in.Tooth != nil {
		t.Tooth = strings.TrimSpace(*in.Tooth)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
		}
		t.Price = *in.Price
	}
	if in.StartedOn != nil {
		t.StartedOn = in.StartedOn
	}
	if in.CompletedOn != nil {
		t.CompletedOn = in.CompletedOn
	}
	if in.Status != nil {
		st := entity.TreatmentStatus(*in.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		t.Status = st
	}
	now := time.Now()
	if t.Status == entity.TreatmentCompleted && t.CompletedOn == nil {
		t.CompletedOn = &now
	}
	if t.Status == entity.TreatmentInProgress && t.StartedOn == nil {
		t.StartedOn = &now
	}
	t.UpdatedAt = now
	if err := uc.treatments.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTreatmentResponse(t), nil
}

// Delete elimina un tratamiento.
func (uc *TreatmentUseCase) Delete(ctx context.Context, tc entity.TenantContext, id string) error {
	if err := requireCompany(tc); err != nil {
		return err
	}
	return uc.treatments.Delete(ctx, tc.CompanyID, id)
}

func (uc *TreatmentUseCase) get(ctx context.Context, tc entity.TenantContext, id string) (*entity.Treatment, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	t, err := uc.treatments.GetByID(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("treatment: obtener: %w", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (uc *TreatmentUseCase) procedure(ctx context.Context, companyID int64, id string) (*entity.Procedure, error) {
	p, err := uc.procedures.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("treatment: obtener procedimiento: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: procedimiento no encontrado", domain.ErrInvalidInput)
	}
	return p, nil
}

func toTreatmentResponse(t *entity.Treatment) *dto.TreatmentResponse {
	return &dto.TreatmentResponse{
		ID:             t.ID,
		CompanyID:      t.CompanyID,
		BranchID:       t.BranchID,
		PatientID:      t.PatientID,
		ProfessionalID: t.ProfessionalID,
		ProcedureID:    t.ProcedureID,
		Tooth:          t.Tooth,
		Description:    t.Description,
		Status:         string(t.Status),
		Price:          t.Price,
		StartedOn:      t.StartedOn,
		CompletedOn:    t.CompletedOn,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
