package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

// PaymentUseCase abonos de pacientes. Un pago incluido en un cierre de caja es inmutable.
type PaymentUseCase struct {
	payments   repository.PaymentRepository
	patients   repository.PatientRepository
	treatments repository.TreatmentRepository
	catalog    repository.CatalogRepository
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(payments repository.PaymentRepository, patients repository.PatientRepository, treatments repository.TreatmentRepository, catalog repository.CatalogRepository) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, patients: patients, treatments: treatments, catalog: catalog}
}

// List pagos de la empresa (y sucursal actual) en el rango [from, to).
func (uc *PaymentUseCase) List(ctx context.Context, tc entity.TenantContext, patientID string, from, to *time.Time, limit, offset int) (*dto.PaymentListResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)
	list, err := uc.payments.List(ctx, repository.PaymentFilter{
		CompanyID: tc.CompanyID,
		BranchID:  tc.BranchID,
		PatientID: patientID,
		From:      from,
		To:        to,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("payment: listar: %w", err)
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPaymentResponse(p))
	}
	return &dto.PaymentListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Create registra un pago en la sucursal actual a nombre del usuario del contexto.
func (uc *PaymentUseCase) Create(ctx context.Context, tc entity.TenantContext, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := requireBranch(tc); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrInvalidInput)
	}
	patient, err := uc.patients.GetVisible(ctx, tc.CompanyID, in.PatientID)
	if err != nil {
		return nil, fmt.Errorf("payment: obtener paciente: %w", err)
	}
	if patient == nil {
		return nil, fmt.Errorf("%w: paciente no encontrado", domain.ErrInvalidInput)
	}
	if in.TreatmentID != nil {
		t, err := uc.treatments.GetByID(ctx, tc.CompanyID, *in.TreatmentID)
		if err != nil {
			return nil, fmt.Errorf("payment: obtener tratamiento: %w", err)
		}
		if t == nil || t.PatientID != patient.ID {
			return nil, fmt.Errorf("%w: tratamiento no corresponde al paciente", domain.ErrInvalidInput)
		}
	}
	if err := checkCatalogRef(ctx, uc.catalog, entity.CatalogPaymentMethods, tc.CompanyID, in.PaymentMethodID); err != nil {
		return nil, err
	}
	now := time.Now()
	paidAt := now
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}
	p := &entity.Payment{
		ID:              uuid.New().String(),
		CompanyID:       tc.CompanyID,
		BranchID:        tc.BranchID,
		PatientID:       patient.ID,
		TreatmentID:     in.TreatmentID,
		PaymentMethodID: in.PaymentMethodID,
		Amount:          in.Amount.Round(2),
		PaidAt:          paidAt,
		Reference:       in.Reference,
		Notes:           in.Notes,
		CreatedBy:       tc.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// Get detalle de un pago.
func (uc *PaymentUseCase) Get(ctx context.Context, tc entity.TenantContext, id string) (*dto.PaymentResponse, error) {
	p, err := uc.get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// Update modifica un pago aún no cerrado.
func (uc *PaymentUseCase) Update(ctx context.Context, tc entity.TenantContext, id string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	p, err := uc.open(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if in.PaymentMethodID != nil {
		if err := checkCatalogRef(ctx, uc.catalog, entity.CatalogPaymentMethods, tc.CompanyID, in.PaymentMethodID); err != nil {
			return nil, err
		}
		p.PaymentMethodID = in.PaymentMethodID
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrInvalidInput)
		}
		p.Amount = in.Amount.Round(2)
	}
	if in.PaidAt != nil {
		p.PaidAt = *in.PaidAt
	}
	if in.Reference != nil {
		p.Reference = *in.Reference
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	p.UpdatedAt = time.Now()
	if err := uc.payments.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// Delete elimina un pago aún no cerrado.
func (uc *PaymentUseCase) Delete(ctx context.Context, tc entity.TenantContext, id string) error {
	if _, err := uc.open(ctx, tc, id); err != nil {
		return err
	}
	return uc.payments.Delete(ctx, tc.CompanyID, id)
}

func (uc *PaymentUseCase) get(ctx context.Context, tc entity.TenantContext, id string) (*entity.Payment, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	p, err := uc.payments.GetByID(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("payment: obtener: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *PaymentUseCase) open(ctx context.Context, tc entity.TenantContext, id string) (*entity.Payment, error) {
	p, err := uc.get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if p.Closed() {
		return nil, fmt.Errorf("%w: el pago pertenece a un cierre de caja", domain.ErrConflict)
	}
	return p, nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		BranchID:        p.BranchID,
		PatientID:       p.PatientID,
		TreatmentID:     p.TreatmentID,
		PaymentMethodID: p.PaymentMethodID,
		Amount:          p.Amount,
		PaidAt:          p.PaidAt,
		Reference:       p.Reference,
		Notes:           p.Notes,
		CreatedBy:       p.CreatedBy,
		ClosureID:       p.ClosureID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
