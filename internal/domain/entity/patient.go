package entity

import "time"

// Patient ficha de un paciente. Pertenece a una empresa y puede compartirse con otras.
type Patient struct {
	ID                  string
	CompanyID           int64
	BranchID            *int64
	DocumentID          string // RUT o pasaporte
	FirstName           string
	LastName            string
	BirthDate           *time.Time
	Phone               string
	Email               string
	Address             string
	PrevisionID         *string
	Notes               string
	ShareAcrossBranches bool
	SharedWith          []int64 // empresas con las que se comparte explícitamente
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// FullName nombre completo del paciente.
func (p *Patient) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// VisibleTo informa si la ficha es visible para la empresa indicada.
func (p *Patient) VisibleTo(companyID int64) bool {
	if p.CompanyID == companyID {
		return true
	}
	for _, id := range p.SharedWith {
		if id == companyID {
			return true
		}
	}
	return false
}
