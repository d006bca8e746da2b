package dto

import "time"

// CreatePatientRequest entrada para crear una ficha de paciente.
type CreatePatientRequest struct {
	DocumentID          string     `json:"document_id" validate:"required,max=20"`
	FirstName           string     `json:"first_name" validate:"required,max=120"`
	LastName            string     `json:"last_name" validate:"required,max=120"`
	BirthDate           *time.Time `json:"birth_date"`
	Phone               string     `json:"phone" validate:"max=40"`
	Email               string     `json:"email" validate:"omitempty,email"`
	Address             string     `json:"address" validate:"max=255"`
	PrevisionID         *string    `json:"prevision_id" validate:"omitempty,uuid"`
	Notes               string     `json:"notes"`
	ShareAcrossBranches bool       `json:"share_across_branches"`
}

// UpdatePatientRequest cambios parciales de una ficha.
type UpdatePatientRequest struct {
	FirstName           *string    `json:"first_name" validate:"omitempty,max=120"`
	LastName            *string    `json:"last_name" validate:"omitempty,max=120"`
	BirthDate           *time.Time `json:"birth_date"`
	Phone               *string    `json:"phone" validate:"omitempty,max=40"`
	Email               *string    `json:"email" validate:"omitempty,email"`
	Address             *string    `json:"address" validate:"omitempty,max=255"`
	PrevisionID         *string    `json:"prevision_id" validate:"omitempty,uuid"`
	Notes               *string    `json:"notes"`
	ShareAcrossBranches *bool      `json:"share_across_branches"`
}

// SharePatientRequest reemplaza la lista de empresas con las que se comparte la ficha.
type SharePatientRequest struct {
	CompanyIDs []int64 `json:"company_ids" validate:"dive,min=1"`
}

// PatientResponse salida de un paciente.
type PatientResponse struct {
	ID                  string     `json:"id"`
	CompanyID           int64      `json:"company_id"`
	BranchID            *int64     `json:"branch_id,omitempty"`
	DocumentID          string     `json:"document_id"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	FullName            string     `json:"full_name"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email"`
	Address             string     `json:"address"`
	PrevisionID         *string    `json:"prevision_id,omitempty"`
	Notes               string     `json:"notes"`
	ShareAcrossBranches bool       `json:"share_across_branches"`
	SharedWith          []int64    `json:"shared_with"`
	// Shared es true cuando la ficha pertenece a otra empresa y se ve por compartición.
	Shared    bool      `json:"shared"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PatientListResponse lista paginada de pacientes.
type PatientListResponse struct {
	Items []PatientResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
