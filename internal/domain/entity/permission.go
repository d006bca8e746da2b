package entity

import "time"

// Action es una capacidad sobre un módulo.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

// Módulos con permisos (coinciden exactamente con permissions.module, sensible a mayúsculas).
const (
	ModulePatients       = "pacientes"
	ModuleAppointments   = "citas"
	ModuleTreatments     = "tratamientos"
	ModulePayments       = "pagos"
	ModuleCashClosures   = "cierres_caja"
	ModuleProcedures     = "procedimientos"
	ModuleSpecialties    = "especialidades"
	ModulePaymentMethods = "medios_pago"
	ModulePrevisions     = "previsiones"
	ModuleBranches       = "sucursales"
	ModuleDashboard      = "dashboard"
)

// Permission son los flags de capacidad de una membresía sobre un módulo.
type Permission struct {
	ID           int64
	MembershipID int64
	Module       string
	CanView      bool
	CanCreate    bool
	CanEdit      bool
	CanDelete    bool
	CanExport    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Allows devuelve el flag correspondiente a la acción y si la acción es conocida.
func (p *Permission) Allows(a Action) (allowed, known bool) {
	switch a {
	case ActionView:
		return p.CanView, true
	case ActionCreate:
		return p.CanCreate, true
	case ActionEdit:
		return p.CanEdit, true
	case ActionDelete:
		return p.CanDelete, true
	case ActionExport:
		return p.CanExport, true
	default:
		return false, false
	}
}

// PermissionFlags entrada de un grant; nil = no especificado.
type PermissionFlags struct {
	View   *bool
	Create *bool
	Edit   *bool
	Delete *bool
	Export *bool
}
