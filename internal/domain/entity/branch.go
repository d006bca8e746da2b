package entity

import "time"

// Branch representa una sucursal de una empresa. A lo sumo una sucursal principal por empresa.
type Branch struct {
	ID        int64
	CompanyID int64
	Name      string
	Address   string
	Phone     string
	Email     string
	OpensAt   string // HH:MM, vacío = sin horario
	ClosesAt  string
	Active    bool
	IsPrimary bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
