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

// CatalogUseCase implementación común de especialidades, medios de pago y previsiones.
type CatalogUseCase struct {
	kind entity.CatalogKind
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso para un tipo de catálogo.
func NewCatalogUseCase(kind entity.CatalogKind, repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{kind: kind, repo: repo}
}

// Kind tipo de catálogo que atiende.
func (uc *CatalogUseCase) Kind() entity.CatalogKind { return uc.kind }

// List ítems del catálogo de la empresa.
func (uc *CatalogUseCase) List(ctx context.Context, tc entity.TenantContext, onlyActive bool) ([]dto.CatalogItemResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, uc.kind, tc.CompanyID, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: listar: %w", uc.kind, err)
	}
	out := make([]dto.CatalogItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toCatalogItemResponse(it))
	}
	return out, nil
}

// Save crea (id vacío) o actualiza un ítem. Nombre repetido en la empresa: domain.ErrDuplicate.
func (uc *CatalogUseCase) Save(ctx context.Context, tc entity.TenantContext, id string, in dto.SaveCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.CatalogItem{ID: uuid.New().String(), CompanyID: tc.CompanyID, Kind: uc.kind, Active: true, CreatedAt: now}
	if id != "" {
		existing, err := uc.repo.GetByID(ctx, uc.kind, tc.CompanyID, id)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: obtener: %w", uc.kind, err)
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		item = existing
	}
	item.Name = strings.TrimSpace(in.Name)
	item.Code = strings.TrimSpace(in.Code)
	if in.Active != nil {
		item.Active = *in.Active
	}
	item.UpdatedAt = now
	if id == "" {
		if err := uc.repo.Create(ctx, item); err != nil {
			return nil, err
		}
	} else if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toCatalogItemResponse(item), nil
}

// Get detalle de un ítem.
func (uc *CatalogUseCase) Get(ctx context.Context, tc entity.TenantContext, id string) (*dto.CatalogItemResponse, error) {
	if err := requireCompany(tc); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, uc.kind, tc.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: obtener: %w", uc.kind, err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toCatalogItemResponse(item), nil
}

// Delete elimina un ítem del catálogo.
func (uc *CatalogUseCase) Delete(ctx context.Context, tc entity.TenantContext, id string) error {
	if err := requireCompany(tc); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, uc.kind, tc.CompanyID, id)
}

func toCatalogItemResponse(it *entity.CatalogItem) *dto.CatalogItemResponse {
	return &dto.CatalogItemResponse{
		ID:        it.ID,
		CompanyID: it.CompanyID,
		Kind:      string(it.Kind),
		Name:      it.Name,
		Code:      it.Code,
		Active:    it.Active,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
