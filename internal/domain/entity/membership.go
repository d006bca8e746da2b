package entity

import "time"

// Role es el rol de un usuario dentro de una empresa.
type Role string

// Conjunto cerrado de roles.
const (
	RoleSuperAdmin   Role = "super_admin"
	RoleCompanyAdmin Role = "company_admin"
	RoleBranchAdmin  Role = "branch_admin"
	RoleProfessional Role = "professional"
	RoleReception    Role = "reception"
	RoleAuxiliary    Role = "auxiliary"
)

// Roles devuelve el conjunto cerrado de roles válidos.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleCompanyAdmin, RoleBranchAdmin, RoleProfessional, RoleReception, RoleAuxiliary}
}

// Valid informa si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	for _, v := range Roles() {
		if r == v {
			return true
		}
	}
	return false
}

// Membership vincula un usuario con una empresa (y opcionalmente una sucursal) con un rol.
type Membership struct {
	ID        int64
	UserID    string
	CompanyID int64
	BranchID  *int64
	Role      Role
	Active    bool
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveAt informa si el rango de vigencia incluye t.
func (m *Membership) EffectiveAt(t time.Time) bool {
	if !m.StartDate.IsZero() && t.Before(m.StartDate) {
		return false
	}
	if m.EndDate != nil && !t.Before(*m.EndDate) {
		return false
	}
	return true
}
