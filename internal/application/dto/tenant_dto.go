package dto

// TenantContextResponse salida de GET /contexto.
type TenantContextResponse struct {
	State             string           `json:"state"`
	Company           *CompanyResponse `json:"company,omitempty"`
	Branch            *BranchResponse  `json:"branch,omitempty"`
	AvailableBranches []BranchResponse `json:"available_branches"`
}

// SwitchCompanyRequest entrada de POST /seleccionar-empresa/.
type SwitchCompanyRequest struct {
	CompanyID int64 `json:"company_id" form:"company_id" validate:"required,min=1"`
}

// SwitchBranchRequest entrada de POST /seleccionar-sucursal.
type SwitchBranchRequest struct {
	BranchID int64 `json:"branch_id" form:"branch_id" validate:"required,min=1"`
}

// SelectableCompaniesResponse empresas a las que el usuario puede cambiar.
type SelectableCompaniesResponse struct {
	CurrentCompanyID int64             `json:"current_company_id,omitempty"`
	Items            []CompanyResponse `json:"items"`
}
