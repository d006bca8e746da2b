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

// ProcedureUseCase arancel de procedimientos por empresa.
type ProcedureUseCase struct {
	procedures repository.ProcedureRepository
	catalog    repository.CatalogRepository
}

// NewProcedureUseCase construye el caso de uso.
func NewProcedureUseCase(procedures repository.ProcedureRepository, catalog repository.CatalogRepository) *ProcedureUseCase {
	return &ProcedureUseCase{procedures: procedures, catalog: catalog}
}

// List procedimientos de la empresa.
func (uc *ProcedureUseCase) List(ctx context.Context, tc entity.TenantContext, onlyActive bool, limit, offset int) (*dto.ProcedureListResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)
	list, err := uc.procedures.ListByCompany(ctx, tc.CompanyID, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("procedure: listar: %w", err)
	}
	items := make([]dto.ProcedureResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProcedureResponse(p))
	}
	return &dto.ProcedureListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Save crea (id vacío) o actualiza un procedimiento. Código duplicado en la empresa: domain.ErrDuplicate.
func (uc *ProcedureUseCase) Save(ctx context.Context, tc entity.TenantContext, id string, in dto.SaveProcedureRequest) (*dto.ProcedureResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	if err := checkCatalogRef(ctx, uc.catalog, entity.CatalogSpecialties, tc.CompanyID, in.SpecialtyID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Procedure{ID: uuid.New().String(), CompanyID: tc.CompanyID, Active: true, CreatedAt: now}
	if id != "" {
		existing, err := uc.procedures.GetByID(ctx, tc.CompanyID, id)
		if err != nil {
			return nil, fmt.Errorf("procedure: obtener: %w", err)
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		p = existing
	}
	p.SpecialtyID = in.SpecialtyID
	p.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	p.Name = strings.TrimSpace(in.Name)
	p.Price = in.Price
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = now
	if id == "" {
		err := uc.procedures.Create(ctx, p)
		if err != nil {
			return nil, err
		}
	} else if err := uc.procedures.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProcedureResponse(p), nil
}

// Get detalle de un procedimiento.
func (uc *ProcedureUseCase) Get(ctx context.Context, tc entity.TenantContext, id string) (*dto.ProcedureResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	p, err := uc.procedures.GetByID(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("procedure: obtener: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProcedureResponse(p), nil
}

// Delete elimina un procedimiento. Si está referenciado por tratamientos el repositorio devuelve ErrInvalidInput.
func (uc *ProcedureUseCase) Delete(ctx context.Context, tc entity.TenantContext, id string) error {
	if err := requireCompany(tc); err != nil {
		return err
	}
	return uc.procedures.Delete(ctx, tc.CompanyID, id)
}

func toProcedureResponse(p *entity.Procedure) *dto.ProcedureResponse {
	return &dto.ProcedureResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SpecialtyID: p.SpecialtyID,
		Code:        p.Code,
		Name:        p.Name,
		Price:       p.Price,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
