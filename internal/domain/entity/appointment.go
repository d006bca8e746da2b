package entity

import "time"

// AppointmentStatus estado de una cita.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentAttended  AppointmentStatus = "attended"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// Valid informa si el estado es conocido.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentAttended, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// Final informa si el estado ya no admite cambios.
func (s AppointmentStatus) Final() bool {
	return s == AppointmentAttended || s == AppointmentCancelled || s == AppointmentNoShow
}

// Appointment cita agendada de un paciente con un profesional.
type Appointment struct {
	ID              string
	CompanyID       int64
	BranchID        *int64
	PatientID       string
	ProfessionalID  *string
	SpecialtyID     *string
	StartsAt        time.Time
	DurationMinutes int
	Status          AppointmentStatus
	Reason          string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EndsAt hora de término.
func (a *Appointment) EndsAt() time.Time {
	return a.StartsAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
