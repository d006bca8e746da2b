package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	LegalName   string `json:"legal_name" validate:"required,min=1,max=200"`
	DisplayName string `json:"display_name" validate:"omitempty,max=200"`
	TaxID       string `json:"tax_id" validate:"required,min=1,max=20"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Website     string `json:"website" validate:"omitempty,url"`
	LogoPath    string `json:"logo_path"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	LegalName   *string `json:"legal_name" validate:"omitempty,min=1,max=200"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=200"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Website     *string `json:"website" validate:"omitempty,url"`
	LogoPath    *string `json:"logo_path"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	LegalName   string    `json:"legal_name"`
	DisplayName string    `json:"display_name,omitempty"`
	TaxID       string    `json:"tax_id"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Website     string    `json:"website,omitempty"`
	LogoPath    string    `json:"logo_path,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
