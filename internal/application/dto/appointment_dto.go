package dto

import "time"

// CreateAppointmentRequest entrada para agendar una cita en la sucursal actual.
type CreateAppointmentRequest struct {
	PatientID       string    `json:"patient_id" validate:"required,uuid"`
	ProfessionalID  *string   `json:"professional_id" validate:"omitempty,uuid"`
	SpecialtyID     *string   `json:"specialty_id" validate:"omitempty,uuid"`
	StartsAt        time.Time `json:"starts_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	Reason          string    `json:"reason" validate:"max=255"`
	Notes           string    `json:"notes"`
}

// UpdateAppointmentRequest cambios parciales de una cita.
type UpdateAppointmentRequest struct {
	ProfessionalID  *string    `json:"professional_id" validate:"omitempty,uuid"`
	SpecialtyID     *string    `json:"specialty_id" validate:"omitempty,uuid"`
	StartsAt        *time.Time `json:"starts_at"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	Reason          *string    `json:"reason" validate:"omitempty,max=255"`
	Notes           *string    `json:"notes"`
}

// ChangeAppointmentStatusRequest entrada de PATCH /citas/:id/estado.
type ChangeAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled confirmed attended cancelled no_show"`
}

// AppointmentResponse salida de una cita.
type AppointmentResponse struct {
	ID              string    `json:"id"`
	CompanyID       int64     `json:"company_id"`
	BranchID        int64     `json:"branch_id"`
	PatientID       string    `json:"patient_id"`
	ProfessionalID  *string   `json:"professional_id,omitempty"`
	SpecialtyID     *string   `json:"specialty_id,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AppointmentListResponse lista paginada de citas.
type AppointmentListResponse struct {
	Items []AppointmentResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
