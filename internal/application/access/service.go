// Package access implementa el almacén de membresías y permisos por módulo.
package access

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	domainaccess "github.com/jhoicas/dental-clinic-api/internal/domain/access"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
	"github.com/jhoicas/dental-clinic-api/pkg/logger"
	"github.com/jhoicas/dental-clinic-api/pkg/metrics"
)

// PermissionService es el único punto que conoce membresías y permisos por módulo.
type PermissionService struct {
	companies   repository.CompanyRepository
	branches    repository.BranchRepository
	users       repository.UserRepository
	memberships repository.MembershipRepository
	permissions repository.PermissionRepository
	log         *logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewPermissionService construye el servicio. log y m pueden ser nil.
func NewPermissionService(
	companies repository.CompanyRepository,
	branches repository.BranchRepository,
	users repository.UserRepository,
	memberships repository.MembershipRepository,
	permissions repository.PermissionRepository,
	log *logger.Logger,
	m *metrics.Metrics,
) *PermissionService {
	if log == nil {
		log = logger.Nop()
	}
	return &PermissionService{
		companies:   companies,
		branches:    branches,
		users:       users,
		memberships: memberships,
		permissions: permissions,
		log:         log.Named("permissions"),
		metrics:     m,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests de vigencia).
func (s *PermissionService) WithClock(now func() time.Time) *PermissionService {
	s.now = now
	return s
}

// FindMembership devuelve la membresía del usuario en la empresa o nil si no existe.
func (s *PermissionService) FindMembership(ctx context.Context, userID string, companyID int64) (*entity.Membership, error) {
	m, err := s.memberships.FindByUserAndCompany(ctx, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("permissions: buscar membresía: %w", err)
	}
	return m, nil
}

// CheckPermission decide si el usuario puede ejecutar action sobre module en la empresa.
// Un false sin error es una denegación; error solo ante fallos de infraestructura.
func (s *PermissionService) CheckPermission(ctx context.Context, userID string, companyID int64, module string, action entity.Action) (bool, error) {
	m, err := s.memberships.FindByUserAndCompany(ctx, userID, companyID)
	if err != nil {
		return false, fmt.Errorf("permissions: buscar membresía: %w", err)
	}
	var perm *entity.Permission
	if m != nil && m.Active && m.Role != entity.RoleSuperAdmin {
		perm, err = s.permissions.Get(ctx, m.ID, module)
		if err != nil {
			return false, fmt.Errorf("permissions: buscar permiso: %w", err)
		}
	}

	d := domainaccess.Evaluate(m, perm, action, s.now())
	s.metrics.ObservePermission(module, string(action), d.Allowed)

	switch {
	case d.Bypass:
		s.log.Audit().
			Str("user_id", userID).
			Int64("company_id", companyID).
			Str("module", module).
			Str("action", string(action)).
			Str("reason", d.Reason).
			Msg("acceso concedido por rol super_admin")
	case !d.Allowed:
		s.log.Debug().
			Str("user_id", userID).
			Int64("company_id", companyID).
			Str("module", module).
			Str("action", string(action)).
			Str("reason", d.Reason).
			Msg("permiso denegado")
	}
	return d.Allowed, nil
}

// AddMembership da de alta a un usuario en una empresa. La sucursal, si viene, debe ser de esa empresa.
func (s *PermissionService) AddMembership(ctx context.Context, companyID int64, in dto.CreateMembershipRequest) (*dto.MembershipResponse, error) {
	role := entity.Role(in.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("permissions: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("permissions: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := s.checkBranch(ctx, companyID, in.BranchID); err != nil {
		return nil, err
	}

	now := s.now()
	m := &entity.Membership{
		UserID:    in.UserID,
		CompanyID: companyID,
		BranchID:  in.BranchID,
		Role:      role,
		Active:    true,
		StartDate: now,
		EndDate:   in.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.StartDate != nil {
		m.StartDate = *in.StartDate
	}
	if m.EndDate != nil && !m.EndDate.After(m.StartDate) {
		return nil, fmt.Errorf("%w: end_date debe ser posterior a start_date", domain.ErrInvalidInput)
	}
	if err := s.memberships.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMembershipResponse(m), nil
}

// UpdateMembership aplica cambios parciales (rol, sucursal, estado, vigencia).
func (s *PermissionService) UpdateMembership(ctx context.Context, id int64, in dto.UpdateMembershipRequest) (*dto.MembershipResponse, error) {
	m, err := s.memberships.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("permissions: obtener membresía: %w", err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, *in.Role)
		}
		m.Role = role
	}
	switch {
	case in.ClearBranch:
		m.BranchID = nil
	case in.BranchID != nil:
		if err := s.checkBranch(ctx, m.CompanyID, in.BranchID); err != nil {
			return nil, err
		}
		m.BranchID = in.BranchID
	}
	if in.Active != nil {
		m.Active = *in.Active
	}
	switch {
	case in.ClearEnd:
		m.EndDate = nil
	case in.EndDate != nil:
		if !in.EndDate.After(m.StartDate) {
			return nil, fmt.Errorf("%w: end_date debe ser posterior a start_date", domain.ErrInvalidInput)
		}
		m.EndDate = in.EndDate
	}
	m.UpdatedAt = s.now()
	if err := s.memberships.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMembershipResponse(m), nil
}

// ListMembers lista las membresías de una empresa.
func (s *PermissionService) ListMembers(ctx context.Context, companyID int64) ([]dto.MembershipResponse, error) {
	list, err := s.memberships.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("permissions: listar miembros: %w", err)
	}
	out := make([]dto.MembershipResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMembershipResponse(m))
	}
	return out, nil
}

// GrantModulePermission crea o actualiza los flags de la membresía sobre el módulo.
// En la creación, view sin especificar vale true; el resto de flags sin especificar vale false.
func (s *PermissionService) GrantModulePermission(ctx context.Context, membershipID int64, module string, flags dto.PermissionFlags) (*dto.PermissionResponse, error) {
	if module == "" {
		return nil, fmt.Errorf("%w: módulo vacío", domain.ErrInvalidInput)
	}
	// El módulo se compara exacto: no se normalizan espacios ni mayúsculas.
	if strings.TrimSpace(module) != module {
		return nil, fmt.Errorf("%w: módulo %q con espacios", domain.ErrInvalidInput, module)
	}
	m, err := s.memberships.GetByID(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("permissions: obtener membresía: %w", err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	p, err := s.permissions.Upsert(ctx, membershipID, module, entity.PermissionFlags{
		View:   flags.View,
		Create: flags.Create,
		Edit:   flags.Edit,
		Delete: flags.Delete,
		Export: flags.Export,
	})
	if err != nil {
		return nil, fmt.Errorf("permissions: upsert: %w", err)
	}
	s.log.Info().
		Int64("membership_id", membershipID).
		Str("module", module).
		Bool("view", p.CanView).
		Bool("create", p.CanCreate).
		Bool("edit", p.CanEdit).
		Bool("delete", p.CanDelete).
		Bool("export", p.CanExport).
		Msg("permiso otorgado")
	return toPermissionResponse(p), nil
}

// ListPermissions lista los permisos por módulo de una membresía.
func (s *PermissionService) ListPermissions(ctx context.Context, membershipID int64) ([]dto.PermissionResponse, error) {
	list, err := s.permissions.ListByMembership(ctx, membershipID)
	if err != nil {
		return nil, fmt.Errorf("permissions: listar: %w", err)
	}
	out := make([]dto.PermissionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPermissionResponse(p))
	}
	return out, nil
}

func (s *PermissionService) checkBranch(ctx context.Context, companyID int64, branchID *int64) error {
	if branchID == nil {
		return nil
	}
	b, err := s.branches.GetByID(ctx, *branchID)
	if err != nil {
		return fmt.Errorf("permissions: obtener sucursal: %w", err)
	}
	if b == nil || b.CompanyID != companyID {
		return domain.ErrBranchOutOfCompany
	}
	return nil
}

func toMembershipResponse(m *entity.Membership) *dto.MembershipResponse {
	return &dto.MembershipResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		BranchID:  m.BranchID,
		Role:      string(m.Role),
		Active:    m.Active,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
	}
}

func toPermissionResponse(p *entity.Permission) *dto.PermissionResponse {
	return &dto.PermissionResponse{
		ID:           p.ID,
		MembershipID: p.MembershipID,
		Module:       p.Module,
		CanView:      p.CanView,
		CanCreate:    p.CanCreate,
		CanEdit:      p.CanEdit,
		CanDelete:    p.CanDelete,
		CanExport:    p.CanExport,
	}
}
