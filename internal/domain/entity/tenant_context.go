package entity

// TenantState estado de tenant de una sesión.
type TenantState string

const (
	StateNoCompany        TenantState = "NO_COMPANY"
	StateCompanyNoBranch  TenantState = "HAS_COMPANY_NO_BRANCH"
	StateCompanyAndBranch TenantState = "HAS_COMPANY_AND_BRANCH"
)

// TenantContext es el par (empresa, sucursal) que gobierna el alcance de datos de un request.
// Lo calcula el gate una vez por request y se pasa explícitamente a los casos de uso.
type TenantContext struct {
	UserID    string
	CompanyID int64
	BranchID  *int64
	Company   *Company
	Branch    *Branch
}

// State devuelve el estado de la máquina de estados de tenant.
func (t TenantContext) State() TenantState {
	switch {
	case t.CompanyID == 0:
		return StateNoCompany
	case t.BranchID == nil:
		return StateCompanyNoBranch
	default:
		return StateCompanyAndBranch
	}
}

// HasBranch informa si hay sucursal actual.
func (t TenantContext) HasBranch() bool {
	return t.BranchID != nil
}
