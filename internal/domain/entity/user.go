package entity

import "time"

// User representa una cuenta de acceso (profesional o personal administrativo).
// La pertenencia a empresas se modela con Membership.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	IsSuperuser  bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
