package dto

import "time"

// SaveCatalogItemRequest entrada común para especialidades, medios de pago y previsiones.
type SaveCatalogItemRequest struct {
	Name   string `json:"name" validate:"required,max=120"`
	Code   string `json:"code" validate:"max=30"`
	Active *bool  `json:"active"`
}

// CatalogItemResponse salida de un ítem de catálogo.
type CatalogItemResponse struct {
	ID        string    `json:"id"`
	CompanyID int64     `json:"company_id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
