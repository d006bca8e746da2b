package entity

import "time"

// CatalogKind identifica una tabla paramétrica por empresa.
type CatalogKind string

const (
	CatalogSpecialties    CatalogKind = "specialties"
	CatalogPaymentMethods CatalogKind = "payment_methods"
	CatalogPrevisions     CatalogKind = "previsions"
)

// Module devuelve el nombre de módulo de permisos del catálogo.
func (k CatalogKind) Module() string {
	switch k {
	case CatalogSpecialties:
		return ModuleSpecialties
	case CatalogPaymentMethods:
		return ModulePaymentMethods
	case CatalogPrevisions:
		return ModulePrevisions
	}
	return ""
}

// CatalogItem elemento de catálogo (especialidad, medio de pago, previsión).
type CatalogItem struct {
	ID        string
	CompanyID int64
	Kind      CatalogKind
	Name      string
	Code      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
