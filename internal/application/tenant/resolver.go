// Package tenant resuelve la empresa y sucursal actuales de un request.
package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
	"github.com/jhoicas/dental-clinic-api/pkg/logger"
	"github.com/jhoicas/dental-clinic-api/pkg/metrics"
)

// Pasos de la cadena de precedencia (etiqueta de métricas).
const (
	StepSession       = "session"
	StepMembership    = "membership"
	StepAutoProvision = "auto_provision"
	StepUnresolved    = "unresolved"
)

// Resolver calcula el TenantContext con la cadena: sesión, primera membresía activa,
// primera empresa activa (con alta automática como auxiliar) y si no, sin resolver.
type Resolver struct {
	companies   repository.CompanyRepository
	branches    repository.BranchRepository
	memberships repository.MembershipRepository
	tx          repository.TenantTxRunner
	log         *logger.Logger
	metrics     *metrics.Metrics
}

// NewResolver construye el resolver. log y m pueden ser nil.
func NewResolver(
	companies repository.CompanyRepository,
	branches repository.BranchRepository,
	memberships repository.MembershipRepository,
	tx repository.TenantTxRunner,
	log *logger.Logger,
	m *metrics.Metrics,
) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		companies:   companies,
		branches:    branches,
		memberships: memberships,
		tx:          tx,
		log:         log.Named("tenant"),
		metrics:     m,
	}
}

// Resolve devuelve el contexto de tenant del usuario y deja la sesión reflejándolo.
// Devuelve domain.ErrTenantUnresolved si no hay ninguna empresa activa.
func (r *Resolver) Resolve(ctx context.Context, userID string, sess SessionState) (entity.TenantContext, error) {
	tc := entity.TenantContext{UserID: userID}

	company, step, err := r.resolveCompany(ctx, userID, sess)
	if err != nil {
		return tc, err
	}
	r.metrics.ObserveResolution(step)
	if company == nil {
		sess.ClearCompany()
		sess.ClearBranch()
		return tc, domain.ErrTenantUnresolved
	}
	sess.SetCompanyID(company.ID)
	tc.CompanyID = company.ID
	tc.Company = company

	branch, err := r.resolveBranch(ctx, userID, company.ID)
	if err != nil {
		return tc, err
	}
	if branch == nil {
		sess.ClearBranch()
		return tc, nil
	}
	sess.SetBranchID(branch.ID)
	tc.BranchID = &branch.ID
	tc.Branch = branch
	return tc, nil
}

func (r *Resolver) resolveCompany(ctx context.Context, userID string, sess SessionState) (*entity.Company, string, error) {
	// 1. empresa guardada en sesión
	if id, ok := sess.CompanyID(); ok {
		c, err := r.companies.GetByID(ctx, id)
		if err != nil {
			return nil, "", fmt.Errorf("tenant: empresa de sesión: %w", err)
		}
		if c != nil && c.Active {
			return c, StepSession, nil
		}
		r.log.Warn().Str("user_id", userID).Int64("company_id", id).Msg("empresa de sesión inexistente o inactiva, se descarta")
		sess.ClearCompany()
		sess.ClearBranch()
	}

	// 2. primera membresía activa (menor id) con empresa activa
	m, err := r.memberships.FirstActiveByUser(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("tenant: primera membresía activa: %w", err)
	}
	if m != nil {
		c, err := r.companies.GetByID(ctx, m.CompanyID)
		if err != nil {
			return nil, "", fmt.Errorf("tenant: empresa de membresía: %w", err)
		}
		if c != nil && c.Active {
			return c, StepMembership, nil
		}
	}

	// 3. primera empresa activa, con alta automática como auxiliar
	c, err := r.companies.FirstActive(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("tenant: primera empresa activa: %w", err)
	}
	if c == nil {
		return nil, StepUnresolved, nil
	}
	var created bool
	now := time.Now()
	err = r.tx.RunTenant(ctx, func(_ repository.BranchRepository, memberships repository.MembershipRepository) error {
		_, ok, err := memberships.FindOrCreate(ctx, &entity.Membership{
			UserID:    userID,
			CompanyID: c.ID,
			Role:      entity.RoleAuxiliary,
			Active:    true,
			StartDate: now,
			CreatedAt: now,
			UpdatedAt: now,
		})
		created = ok
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("tenant: alta automática de membresía: %w", err)
	}
	if created {
		r.log.Info().Str("user_id", userID).Int64("company_id", c.ID).Str("role", string(entity.RoleAuxiliary)).Msg("membresía creada automáticamente")
	}
	return c, StepAutoProvision, nil
}

// resolveBranch la sucursal sale de la membresía activa del usuario en la empresa.
func (r *Resolver) resolveBranch(ctx context.Context, userID string, companyID int64) (*entity.Branch, error) {
	m, err := r.memberships.FindByUserAndCompany(ctx, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("tenant: membresía para sucursal: %w", err)
	}
	if m == nil || !m.Active || m.BranchID == nil {
		return nil, nil
	}
	b, err := r.branches.GetByID(ctx, *m.BranchID)
	if err != nil {
		return nil, fmt.Errorf("tenant: sucursal de membresía: %w", err)
	}
	if b == nil || !b.Active || b.CompanyID != companyID {
		return nil, nil
	}
	return b, nil
}

// AvailableBranches sucursales activas de la empresa ordenadas por nombre. Se consulta en cada llamada.
func (r *Resolver) AvailableBranches(ctx context.Context, companyID int64) ([]*entity.Branch, error) {
	list, err := r.branches.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("tenant: sucursales disponibles: %w", err)
	}
	return list, nil
}

// SelectableCompanies empresas activas en las que el usuario tiene membresía activa (superusuario: todas).
func (r *Resolver) SelectableCompanies(ctx context.Context, userID string, isSuperuser bool) ([]*entity.Company, error) {
	if isSuperuser {
		list, err := r.companies.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("tenant: empresas activas: %w", err)
		}
		return list, nil
	}
	ms, err := r.memberships.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("tenant: membresías activas: %w", err)
	}
	out := make([]*entity.Company, 0, len(ms))
	for _, m := range ms {
		c, err := r.companies.GetByID(ctx, m.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("tenant: empresa %d: %w", m.CompanyID, err)
		}
		if c != nil && c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

// SwitchCompany fija la empresa actual en la sesión y vuelve a resolver.
// Sin membresía activa en esa empresa devuelve domain.ErrPermissionDenied, salvo superusuario.
func (r *Resolver) SwitchCompany(ctx context.Context, userID string, isSuperuser bool, companyID int64, sess SessionState) (entity.TenantContext, error) {
	c, err := r.companies.GetByID(ctx, companyID)
	if err != nil {
		return entity.TenantContext{}, fmt.Errorf("tenant: obtener empresa: %w", err)
	}
	if c == nil || !c.Active {
		return entity.TenantContext{}, domain.ErrNotFound
	}
	if !isSuperuser {
		m, err := r.memberships.FindByUserAndCompany(ctx, userID, companyID)
		if err != nil {
			return entity.TenantContext{}, fmt.Errorf("tenant: membresía: %w", err)
		}
		if m == nil || !m.Active {
			return entity.TenantContext{}, domain.ErrPermissionDenied
		}
	}
	sess.SetCompanyID(companyID)
	sess.ClearBranch()
	r.log.Info().Str("user_id", userID).Int64("company_id", companyID).Msg("cambio de empresa")
	return r.Resolve(ctx, userID, sess)
}

// SwitchBranch mueve la membresía del usuario a otra sucursal activa de la empresa actual.
func (r *Resolver) SwitchBranch(ctx context.Context, tc entity.TenantContext, branchID int64, sess SessionState) (entity.TenantContext, error) {
	b, err := r.branches.GetByID(ctx, branchID)
	if err != nil {
		return tc, fmt.Errorf("tenant: obtener sucursal: %w", err)
	}
	if b == nil || !b.Active {
		return tc, domain.ErrNotFound
	}
	if b.CompanyID != tc.CompanyID {
		return tc, domain.ErrBranchOutOfCompany
	}
	err = r.tx.RunTenant(ctx, func(_ repository.BranchRepository, memberships repository.MembershipRepository) error {
		m, err := memberships.FindByUserAndCompany(ctx, tc.UserID, tc.CompanyID)
		if err != nil {
			return err
		}
		if m == nil || !m.Active {
			return domain.ErrPermissionDenied
		}
		m.BranchID = &b.ID
		return memberships.Update(ctx, m)
	})
	if err != nil {
		return tc, err
	}
	sess.SetBranchID(b.ID)
	tc.BranchID = &b.ID
	tc.Branch = b
	return tc, nil
}
