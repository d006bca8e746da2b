package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

// BranchUseCase sucursales de una empresa. Garantiza a lo sumo una principal por empresa.
type BranchUseCase struct {
	companies repository.CompanyRepository
	branches  repository.BranchRepository
	tx        repository.TenantTxRunner
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(companies repository.CompanyRepository, branches repository.BranchRepository, tx repository.TenantTxRunner) *BranchUseCase {
	return &BranchUseCase{companies: companies, branches: branches, tx: tx}
}

// Save crea (branchID nil) o actualiza una sucursal. Si queda como principal, en la misma
// transacción se desmarcan las demás sucursales de la empresa.
func (uc *BranchUseCase) Save(ctx context.Context, companyID int64, branchID *int64, in dto.SaveBranchRequest) (*dto.BranchResponse, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("branch: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	var saved *entity.Branch
	err = uc.tx.RunTenant(ctx, func(branches repository.BranchRepository, _ repository.MembershipRepository) error {
		now := time.Now()
		b := &entity.Branch{CompanyID: companyID, Active: true, CreatedAt: now}
		if branchID != nil {
			existing, err := branches.GetByID(ctx, *branchID)
			if err != nil {
				return err
			}
			if existing == nil || existing.CompanyID != companyID {
				return domain.ErrNotFound
			}
			b = existing
		}
		b.Name = strings.TrimSpace(in.Name)
		b.Address = in.Address
		b.Phone = in.Phone
		b.Email = in.Email
		b.OpensAt = in.OpensAt
		b.ClosesAt = in.ClosesAt
		b.IsPrimary = in.IsPrimary
		if in.Active != nil {
			b.Active = *in.Active
		}
		b.UpdatedAt = now

		if b.IsPrimary {
			if err := branches.ClearPrimary(ctx, companyID, b.ID); err != nil {
				return err
			}
		}
		if b.ID == 0 {
			if err := branches.Create(ctx, b); err != nil {
				return err
			}
		} else if err := branches.Update(ctx, b); err != nil {
			return err
		}
		saved = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entityToBranchResponse(saved), nil
}

// ListByCompany todas las sucursales de la empresa (activas e inactivas).
func (uc *BranchUseCase) ListByCompany(ctx context.Context, companyID int64) ([]dto.BranchResponse, error) {
	list, err := uc.branches.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("branch: listar: %w", err)
	}
	return branchesToResponse(list), nil
}

// GetByID sucursal de la empresa indicada.
func (uc *BranchUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.BranchResponse, error) {
	b, err := uc.branches.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("branch: obtener: %w", err)
	}
	if b == nil || b.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return entityToBranchResponse(b), nil
}

// Deactivate marca la sucursal como inactiva.
func (uc *BranchUseCase) Deactivate(ctx context.Context, companyID, id int64) error {
	b, err := uc.branches.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("branch: obtener: %w", err)
	}
	if b == nil || b.CompanyID != companyID {
		return domain.ErrNotFound
	}
	b.Active = false
	b.UpdatedAt = time.Now()
	return uc.branches.Update(ctx, b)
}

// EntityToBranchResponse expuesto para otros paquetes de aplicación.
func EntityToBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return entityToBranchResponse(b)
}

func branchesToResponse(list []*entity.Branch) []dto.BranchResponse {
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *entityToBranchResponse(b))
	}
	return out
}

// BranchesToResponse expuesto para otros paquetes de aplicación.
func BranchesToResponse(list []*entity.Branch) []dto.BranchResponse {
	return branchesToResponse(list)
}

func entityToBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		Email:     b.Email,
		OpensAt:   b.OpensAt,
		ClosesAt:  b.ClosesAt,
		Active:    b.Active,
		IsPrimary: b.IsPrimary,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
