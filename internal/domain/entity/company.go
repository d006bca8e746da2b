package entity

import "time"

// Company representa una empresa (tenant). Es el límite de aislamiento de todos los datos clínicos.
type Company struct {
	ID          int64
	LegalName   string
	DisplayName string // opcional
	TaxID       string // RUT de la empresa, único
	Address     string
	Phone       string
	Email       string
	Website     string
	LogoPath    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Name devuelve el nombre de fantasía si existe, si no la razón social.
func (c *Company) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.LegalName
}
