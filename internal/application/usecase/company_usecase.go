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
	"github.com/jhoicas/dental-clinic-api/pkg/rut"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa activa. Devuelve domain.ErrDuplicate si el RUT ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	taxID := rut.Normalize(in.TaxID)
	if err := rut.Validate(taxID); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	existing, err := uc.repo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("company: buscar por rut: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		LegalName:   strings.TrimSpace(in.LegalName),
		DisplayName: strings.TrimSpace(in.DisplayName),
		TaxID:       taxID,
		Address:     in.Address,
		Phone:       in.Phone,
		Email:       in.Email,
		Website:     in.Website,
		LogoPath:    in.LogoPath,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Update aplica cambios parciales. El RUT no se modifica.
func (uc *CompanyUseCase) Update(ctx context.Context, id int64, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("company: obtener: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.LegalName != nil {
		c.LegalName = strings.TrimSpace(*in.LegalName)
	}
	if in.DisplayName != nil {
		c.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Website != nil {
		c.Website = *in.Website
	}
	if in.LogoPath != nil {
		c.LogoPath = *in.LogoPath
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(c), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate marca la empresa como inactiva. Sus sucursales no se tocan.
func (uc *CompanyUseCase) Deactivate(ctx context.Context, id int64) error {
	return uc.repo.SetActive(ctx, id, false)
}

// Activate vuelve a habilitar una empresa.
func (uc *CompanyUseCase) Activate(ctx context.Context, id int64) error {
	return uc.repo.SetActive(ctx, id, true)
}

// Delete elimina la empresa y en cascada todo lo que le pertenece. Solo superusuario.
func (uc *CompanyUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// EntityToCompanyResponse expuesto para otros paquetes de aplicación.
func EntityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return entityToCompanyResponse(c)
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name(),
		LegalName:   c.LegalName,
		DisplayName: c.DisplayName,
		TaxID:       c.TaxID,
		Address:     c.Address,
		Phone:       c.Phone,
		Email:       c.Email,
		Website:     c.Website,
		LogoPath:    c.LogoPath,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
