package dto

import "time"

// CreateMembershipRequest alta de un usuario en una empresa (la empresa viene en la ruta).
type CreateMembershipRequest struct {
	UserID    string     `json:"user_id" validate:"required,uuid"`
	BranchID  *int64     `json:"branch_id" validate:"omitempty,min=1"`
	Role      string     `json:"role" validate:"required,oneof=super_admin company_admin branch_admin professional reception auxiliary"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// UpdateMembershipRequest cambios parciales de una membresía.
type UpdateMembershipRequest struct {
	Role        *string    `json:"role" validate:"omitempty,oneof=super_admin company_admin branch_admin professional reception auxiliary"`
	BranchID    *int64     `json:"branch_id" validate:"omitempty,min=1"`
	ClearBranch bool       `json:"clear_branch"`
	Active      *bool      `json:"active"`
	EndDate     *time.Time `json:"end_date"`
	ClearEnd    bool       `json:"clear_end_date"`
}

// MembershipResponse salida de una membresía.
type MembershipResponse struct {
	ID        int64      `json:"id"`
	UserID    string     `json:"user_id"`
	CompanyID int64      `json:"company_id"`
	BranchID  *int64     `json:"branch_id,omitempty"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// PermissionFlags flags opcionales de un grant (nil = no especificado).
type PermissionFlags struct {
	View   *bool `json:"can_view"`
	Create *bool `json:"can_create"`
	Edit   *bool `json:"can_edit"`
	Delete *bool `json:"can_delete"`
	Export *bool `json:"can_export"`
}

// GrantPermissionRequest entrada de POST /admin/miembros/:id/permisos.
type GrantPermissionRequest struct {
	Module string `json:"module" validate:"required,max=60"`
	PermissionFlags
}

// PermissionResponse salida de un permiso por módulo.
type PermissionResponse struct {
	ID           int64  `json:"id"`
	MembershipID int64  `json:"membership_id"`
	Module       string `json:"module"`
	CanView      bool   `json:"can_view"`
	CanCreate    bool   `json:"can_create"`
	CanEdit      bool   `json:"can_edit"`
	CanDelete    bool   `json:"can_delete"`
	CanExport    bool   `json:"can_export"`
}
