package tenant

// SessionState es el estado de tenant guardado en la sesión del usuario.
// Solo el resolver y los flujos de selección lo leen o escriben.
type SessionState interface {
	CompanyID() (int64, bool)
	SetCompanyID(id int64)
	ClearCompany()
	BranchID() (int64, bool)
	SetBranchID(id int64)
	ClearBranch()
}

// Claves de sesión.
const (
	SessionKeyCompany = "current_company_id"
	SessionKeyBranch  = "current_branch_id"
)
