package tenant_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/application/tenant"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/mocks"
)

const userX = "00000000-0000-0000-0000-00000000000x"

func newResolver(s *mocks.Store) *tenant.Resolver {
	return tenant.NewResolver(s.Companies(), s.Branches(), s.Memberships(), s.TenantTx(), nil, nil)
}

// ─── Cadena de precedencia ───────────────────────────────────────────────────

func TestResolve_PrimeraMembresiaActivaGanaSobreInactiva(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(5, "Clinica Cinco", true)
	s.AddCompany(7, "Clinica Siete", true)
	s.AddMembership(10, userX, 5, nil, entity.RoleProfessional, false)
	s.AddMembership(11, userX, 7, nil, entity.RoleProfessional, true)
	sess := mocks.NewSession()

	tc, err := newResolver(s).Resolve(context.Background(), userX, sess)
	require.NoError(t, err)

	assert.Equal(t, int64(7), tc.CompanyID)
	assert.Nil(t, tc.BranchID)
	assert.Equal(t, entity.StateCompanyNoBranch, tc.State())
	id, ok := sess.CompanyID()
	assert.True(t, ok)
	assert.Equal(t, int64(7), id, "la empresa resuelta queda en sesión")
}

func TestResolve_SesionTienePrioridad(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddCompany(2, "B", true)
	s.AddMembership(3, userX, 1, nil, entity.RoleReception, true)
	sess := mocks.NewSession()
	sess.SetCompanyID(2)

	tc, err := newResolver(s).Resolve(context.Background(), userX, sess)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tc.CompanyID)
}

func TestResolve_SesionObsoletaSeDescarta(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddCompany(2, "Cerrada", false)
	s.AddMembership(3, userX, 1, nil, entity.RoleReception, true)

	for _, stale := range []int64{2, 999} {
		sess := mocks.NewSession()
		sess.SetCompanyID(stale)
		sess.SetBranchID(42)

		tc, err := newResolver(s).Resolve(context.Background(), userX, sess)
		require.NoError(t, err)
		assert.Equal(t, int64(1), tc.CompanyID)
		_, hasBranch := sess.BranchID()
		assert.False(t, hasBranch)
	}
}

func TestResolve_MembresiaEnEmpresaInactivaSeSalta(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Cerrada", false)
	s.AddCompany(2, "Abierta", true)
	s.AddMembership(3, userX, 1, nil, entity.RoleCompanyAdmin, true)
	s.AddMembership(4, userX, 2, nil, entity.RoleReception, true)

	tc, err := newResolver(s).Resolve(context.Background(), userX, mocks.NewSession())
	require.NoError(t, err)
	assert.Equal(t, int64(2), tc.CompanyID)
}

func TestResolve_AltaAutomaticaComoAuxiliar(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(3, "Primera", true)
	s.AddCompany(4, "Segunda", true)

	tc, err := newResolver(s).Resolve(context.Background(), userX, mocks.NewSession())
	require.NoError(t, err)
	assert.Equal(t, int64(3), tc.CompanyID)

	m, err := s.Memberships().FindByUserAndCompany(context.Background(), userX, 3)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.RoleAuxiliary, m.Role)
	assert.True(t, m.Active)
	assert.Nil(t, m.BranchID)
}

func TestResolve_AltaAutomaticaConFechas(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(3, "Primera", true)
	antes := time.Now()

	_, err := newResolver(s).Resolve(context.Background(), userX, mocks.NewSession())
	require.NoError(t, err)

	m, err := s.Memberships().FindByUserAndCompany(context.Background(), userX, 3)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.False(t, m.StartDate.IsZero(), "start_date debe quedar en la fecha del alta")
	assert.False(t, m.StartDate.Before(antes))
	assert.False(t, m.CreatedAt.IsZero())
	assert.False(t, m.UpdatedAt.IsZero())
}

func TestResolve_AltaAutomaticaNoReactivaMembresiaInactiva(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(3, "Unica", true)
	s.AddMembership(9, userX, 3, nil, entity.RoleProfessional, false)

	tc, err := newResolver(s).Resolve(context.Background(), userX, mocks.NewSession())
	require.NoError(t, err)
	assert.Equal(t, int64(3), tc.CompanyID)

	m, _ := s.Memberships().GetByID(context.Background(), 9)
	assert.False(t, m.Active)
	assert.Equal(t, entity.RoleProfessional, m.Role)
}

func TestResolve_AltaAutomaticaIdempotenteConcurrente(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Unica", true)
	r := newResolver(s)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Resolve(context.Background(), userX, mocks.NewSession())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	list, err := s.Memberships().ListByCompany(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, s.MembershipCreates)
}

func TestResolve_SinEmpresasNoResuelve(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Inactiva", false)
	sess := mocks.NewSession()

	tc, err := newResolver(s).Resolve(context.Background(), userX, sess)
	assert.ErrorIs(t, err, domain.ErrTenantUnresolved)
	assert.Equal(t, entity.StateNoCompany, tc.State())
	_, ok := sess.CompanyID()
	assert.False(t, ok)
}

// ─── Sucursal ────────────────────────────────────────────────────────────────

func TestResolve_SucursalDesdeMembresia(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	centro := s.AddBranch(1, "Centro", true)
	s.AddMembership(5, userX, 1, &centro.ID, entity.RoleReception, true)
	sess := mocks.NewSession()
	sess.SetBranchID(777)

	tc, err := newResolver(s).Resolve(context.Background(), userX, sess)
	require.NoError(t, err)
	require.NotNil(t, tc.BranchID)
	assert.Equal(t, centro.ID, *tc.BranchID)
	assert.Equal(t, entity.StateCompanyAndBranch, tc.State())
	b, _ := sess.BranchID()
	assert.Equal(t, centro.ID, b, "la sesión refleja la sucursal de la membresía")
}

func TestAvailableBranches_ActivasOrdenadasPorNombre(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddBranch(1, "Norte", false)
	s.AddBranch(1, "Centro", true)
	cerrada := s.AddBranch(1, "Antigua", false)
	cerrada.Active = false
	require.NoError(t, s.Branches().Update(context.Background(), cerrada))

	list, err := newResolver(s).AvailableBranches(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Centro", list[0].Name)
	assert.Equal(t, "Norte", list[1].Name)
}

// ─── Cambio de empresa y sucursal ────────────────────────────────────────────

func TestSwitchCompany_RequiereMembresiaActiva(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddCompany(2, "B", true)
	s.AddMembership(3, userX, 1, nil, entity.RoleReception, true)
	r := newResolver(s)
	sess := mocks.NewSession()

	_, err := r.SwitchCompany(context.Background(), userX, false, 2, sess)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	_, ok := sess.CompanyID()
	assert.False(t, ok)

	tc, err := r.SwitchCompany(context.Background(), userX, true, 2, sess)
	require.NoError(t, err, "un superusuario puede cambiar a cualquier empresa activa")
	assert.Equal(t, int64(2), tc.CompanyID)
}

func TestSwitchCompany_LimpiaSucursal(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddCompany(2, "B", true)
	s.AddMembership(3, userX, 1, nil, entity.RoleReception, true)
	s.AddMembership(4, userX, 2, nil, entity.RoleReception, true)
	sess := mocks.NewSession()
	sess.SetCompanyID(1)
	sess.SetBranchID(50)

	tc, err := newResolver(s).SwitchCompany(context.Background(), userX, false, 2, sess)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tc.CompanyID)
	_, ok := sess.BranchID()
	assert.False(t, ok)
}

func TestSwitchCompany_EmpresaInactiva(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Inactiva", false)
	_, err := newResolver(s).SwitchCompany(context.Background(), userX, true, 1, mocks.NewSession())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSwitchBranch_ActualizaMembresia(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddCompany(2, "B", true)
	norte := s.AddBranch(1, "Norte", false)
	ajena := s.AddBranch(2, "Ajena", false)
	s.AddMembership(3, userX, 1, nil, entity.RoleBranchAdmin, true)
	r := newResolver(s)
	sess := mocks.NewSession()

	tc, err := r.Resolve(context.Background(), userX, sess)
	require.NoError(t, err)

	_, err = r.SwitchBranch(context.Background(), tc, ajena.ID, sess)
	assert.ErrorIs(t, err, domain.ErrBranchOutOfCompany)

	tc, err = r.SwitchBranch(context.Background(), tc, norte.ID, sess)
	require.NoError(t, err)
	assert.Equal(t, norte.ID, *tc.BranchID)

	m, _ := s.Memberships().GetByID(context.Background(), 3)
	require.NotNil(t, m.BranchID)
	assert.Equal(t, norte.ID, *m.BranchID)

	again, err := r.Resolve(context.Background(), userX, sess)
	require.NoError(t, err)
	assert.Equal(t, norte.ID, *again.BranchID)
}

func TestSelectableCompanies(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddCompany(2, "B", true)
	s.AddCompany(3, "C", false)
	s.AddMembership(4, userX, 2, nil, entity.RoleReception, true)
	s.AddMembership(5, userX, 3, nil, entity.RoleReception, true)
	r := newResolver(s)

	list, err := r.SelectableCompanies(context.Background(), userX, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)

	all, err := r.SelectableCompanies(context.Background(), userX, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
