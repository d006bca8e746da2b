package dto

import "time"

// SaveBranchRequest entrada para crear o actualizar una sucursal.
type SaveBranchRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=120"`
	Address   string `json:"address" validate:"max=255"`
	Phone     string `json:"phone" validate:"max=40"`
	Email     string `json:"email" validate:"omitempty,email"`
	OpensAt   string `json:"opens_at" validate:"omitempty,hhmm"`
	ClosesAt  string `json:"closes_at" validate:"omitempty,hhmm"`
	Active    *bool  `json:"active"`
	IsPrimary bool   `json:"is_primary"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	OpensAt   string    `json:"opens_at,omitempty"`
	ClosesAt  string    `json:"closes_at,omitempty"`
	Active    bool      `json:"active"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
