package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

// PatientUseCase fichas de pacientes. Una ficha compartida con otra empresa es de solo lectura allí.
type PatientUseCase struct {
	patients repository.PatientRepository
	catalog  repository.CatalogRepository
}

// NewPatientUseCase construye el caso de uso.
func NewPatientUseCase(patients repository.PatientRepository, catalog repository.CatalogRepository) *PatientUseCase {
	return &PatientUseCase{patients: patients, catalog: catalog}
}

// List fichas propias de la empresa o compartidas con ella.
func (uc *PatientUseCase) List(ctx context.Context, tc entity.TenantContext, search string, limit, offset int) (*dto.PatientListResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)
	list, err := uc.patients.ListVisible(ctx, repository.PatientFilter{
		CompanyID: tc.CompanyID,
		BranchID:  tc.BranchID,
		Search:    strings.TrimSpace(search),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, fmt.Errorf("patient: listar: %w", err)
	}
	items := make([]dto.PatientResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPatientResponse(p, tc.CompanyID))
	}
	return &dto.PatientListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Create registra una ficha en la empresa (y sucursal, si hay) actual.
func (uc *PatientUseCase) Create(ctx context.Context, tc entity.TenantContext, in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	doc := normalizeDocument(in.DocumentID)
	existing, err := uc.patients.GetByDocument(ctx, tc.CompanyID, doc)
	if err != nil {
		return nil, fmt.Errorf("patient: buscar documento: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := checkCatalogRef(ctx, uc.catalog, entity.CatalogPrevisions, tc.CompanyID, in.PrevisionID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Patient{
		ID:                  uuid.New().String(),
		CompanyID:           tc.CompanyID,
		BranchID:            tc.BranchID,
		DocumentID:          doc,
		FirstName:           strings.TrimSpace(in.FirstName),
		LastName:            strings.TrimSpace(in.LastName),
		BirthDate:           in.BirthDate,
		Phone:               in.Phone,
		Email:               in.Email,
		Address:             in.Address,
		PrevisionID:         in.PrevisionID,
		Notes:               in.Notes,
		ShareAcrossBranches: in.ShareAcrossBranches,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPatientResponse(p, tc.CompanyID), nil
}

// Get detalle de una ficha visible para la empresa.
func (uc *PatientUseCase) Get(ctx context.Context, tc entity.TenantContext, id string) (*dto.PatientResponse, error) {
	p, err := uc.visible(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return toPatientResponse(p, tc.CompanyID), nil
}

// Update aplica cambios parciales. Solo la empresa dueña puede modificar la ficha.
func (uc *PatientUseCase) Update(ctx context.Context, tc entity.TenantContext, id string, in dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	p, err := uc.owned(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		p.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		p.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.PrevisionID != nil {
		if err := checkCatalogRef(ctx, uc.catalog, entity.CatalogPrevisions, tc.CompanyID, in.PrevisionID); err != nil {
			return nil, err
		}
		p.PrevisionID = in.PrevisionID
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if in.ShareAcrossBranches != nil {
		p.ShareAcrossBranches = *in.ShareAcrossBranches
	}
	p.UpdatedAt = time.Now()
	if err := uc.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPatientResponse(p, tc.CompanyID), nil
}

// Deactivate baja lógica de la ficha.
func (uc *PatientUseCase) Deactivate(ctx context.Context, tc entity.TenantContext, id string) error {
	p, err := uc.owned(ctx, tc, id)
	if err != nil {
		return err
	}
	p.Active = false
	p.UpdatedAt = time.Now()
	return uc.patients.Update(ctx, p)
}

// Share reemplaza la lista de empresas con las que se comparte la ficha.
// La empresa dueña se ignora y los ids repetidos se colapsan.
func (uc *PatientUseCase) Share(ctx context.Context, tc entity.TenantContext, id string, in dto.SharePatientRequest) (*dto.PatientResponse, error) {
	p, err := uc.owned(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(in.CompanyIDs))
	ids := make([]int64, 0, len(in.CompanyIDs))
	for _, cid := range in.CompanyIDs {
		if cid == tc.CompanyID {
			continue
		}
		if _, dup := seen[cid]; dup {
			continue
		}
		seen[cid] = struct{}{}
		ids = append(ids, cid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if err := uc.patients.ReplaceShares(ctx, p.ID, ids); err != nil {
		return nil, err
	}
	p.SharedWith = ids
	return toPatientResponse(p, tc.CompanyID), nil
}

func (uc *PatientUseCase) visible(ctx context.Context, tc entity.TenantContext, id string) (*entity.Patient, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	p, err := uc.patients.GetVisible(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("patient: obtener: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *PatientUseCase) owned(ctx context.Context, tc entity.TenantContext, id string) (*entity.Patient, error) {
	p, err := uc.visible(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if p.CompanyID != tc.CompanyID {
		return nil, fmt.Errorf("%w: ficha compartida de solo lectura", domain.ErrForbidden)
	}
	return p, nil
}

// normalizeDocument RUT sin puntos, en mayúsculas.
func normalizeDocument(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, ".", "")
}

func toPatientResponse(p *entity.Patient, companyID int64) *dto.PatientResponse {
	shared := p.SharedWith
	if shared == nil {
		shared = []int64{}
	}
	return &dto.PatientResponse{
		ID:                  p.ID,
		CompanyID:           p.CompanyID,
		BranchID:            p.BranchID,
		DocumentID:          p.DocumentID,
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		FullName:            p.FullName(),
		BirthDate:           p.BirthDate,
		Phone:               p.Phone,
		Email:               p.Email,
		Address:             p.Address,
		PrevisionID:         p.PrevisionID,
		Notes:               p.Notes,
		ShareAcrossBranches: p.ShareAcrossBranches,
		SharedWith:          shared,
		Shared:              p.CompanyID != companyID,
		Active:              p.Active,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
