package access_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/application/access"
	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/mocks"
	"github.com/jhoicas/dental-clinic-api/pkg/logger"
)

const (
	userA = "00000000-0000-0000-0000-0000000000a1"
	userB = "00000000-0000-0000-0000-0000000000b2"
)

func boolPtr(b bool) *bool { return &b }

func newService(s *mocks.Store, log *logger.Logger) *access.PermissionService {
	return access.NewPermissionService(s.Companies(), s.Branches(), s.Users(), s.Memberships(), s.Permissions(), log, nil)
}

func TestCheckPermission_SinPermisoImplicito(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddMembership(2, userA, 1, nil, entity.RoleReception, true)
	svc := newService(s, nil)
	ctx := context.Background()

	for _, a := range []entity.Action{entity.ActionView, entity.ActionCreate, entity.ActionEdit, entity.ActionDelete, entity.ActionExport} {
		ok, err := svc.CheckPermission(ctx, userA, 1, entity.ModulePatients, a)
		require.NoError(t, err)
		assert.False(t, ok, "sin fila de permiso no hay acceso: %s", a)
	}
}

func TestCheckPermission_SinMembresia(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	ok, err := newService(s, nil).CheckPermission(context.Background(), userA, 1, entity.ModulePatients, entity.ActionView)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGrantModulePermission_DefaultsYActualizacion(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddMembership(2, userA, 1, nil, entity.RoleReception, true)
	svc := newService(s, nil)
	ctx := context.Background()

	p, err := svc.GrantModulePermission(ctx, 2, entity.ModulePatients, dto.PermissionFlags{})
	require.NoError(t, err)
	assert.True(t, p.CanView, "view por defecto en la creación")
	assert.False(t, p.CanCreate)
	assert.False(t, p.CanEdit)
	assert.False(t, p.CanDelete)
	assert.False(t, p.CanExport)

	ok, _ := svc.CheckPermission(ctx, userA, 1, entity.ModulePatients, entity.ActionView)
	assert.True(t, ok)
	ok, _ = svc.CheckPermission(ctx, userA, 1, entity.ModulePatients, entity.ActionCreate)
	assert.False(t, ok)

	p, err = svc.GrantModulePermission(ctx, 2, entity.ModulePatients, dto.PermissionFlags{Create: boolPtr(true), Edit: boolPtr(true)})
	require.NoError(t, err)
	assert.False(t, p.CanView, "en actualización un flag omitido vale false")
	assert.True(t, p.CanCreate)
	assert.True(t, p.CanEdit)

	list, err := svc.ListPermissions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 1, "una sola fila por (membresía, módulo)")
}

func TestGrantModulePermission_ModuloSensibleAMayusculas(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddMembership(2, userA, 1, nil, entity.RoleReception, true)
	svc := newService(s, nil)
	ctx := context.Background()

	_, err := svc.GrantModulePermission(ctx, 2, "Pacientes", dto.PermissionFlags{})
	require.NoError(t, err)

	ok, _ := svc.CheckPermission(ctx, userA, 1, entity.ModulePatients, entity.ActionView)
	assert.False(t, ok)
}

func TestGrantModulePermission_ModuloConEspaciosRechazado(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddMembership(2, userA, 1, nil, entity.RoleReception, true)
	svc := newService(s, nil)
	ctx := context.Background()

	for _, module := range []string{" pacientes", "pacientes ", "\tpacientes", "  "} {
		_, err := svc.GrantModulePermission(ctx, 2, module, dto.PermissionFlags{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%q", module)
	}
	list, err := svc.ListPermissions(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list, "no se crea ninguna fila")
}

func TestGrantModulePermission_MembresiaInexistente(t *testing.T) {
	s := mocks.NewStore()
	_, err := newService(s, nil).GrantModulePermission(context.Background(), 99, entity.ModulePatients, dto.PermissionFlags{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckPermission_SuperAdminBypassAuditado(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddMembership(2, userA, 1, nil, entity.RoleSuperAdmin, true)
	var buf bytes.Buffer
	svc := newService(s, logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}))

	ok, err := svc.CheckPermission(context.Background(), userA, 1, entity.ModuleCashClosures, entity.ActionDelete)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "super_admin_bypass")
	assert.Contains(t, buf.String(), `"module":"cierres_caja"`)
}

func TestCheckPermission_MembresiaVencida(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	m := s.AddMembership(2, userA, 1, nil, entity.RoleCompanyAdmin, true)
	svc := newService(s, nil)
	ctx := context.Background()
	_, err := svc.GrantModulePermission(ctx, m.ID, entity.ModulePayments, dto.PermissionFlags{View: boolPtr(true)})
	require.NoError(t, err)

	end := time.Now().Add(time.Hour)
	_, err = svc.UpdateMembership(ctx, m.ID, dto.UpdateMembershipRequest{EndDate: &end})
	require.NoError(t, err)

	ok, _ := svc.CheckPermission(ctx, userA, 1, entity.ModulePayments, entity.ActionView)
	assert.True(t, ok)

	svc.WithClock(func() time.Time { return end.Add(time.Minute) })
	ok, _ = svc.CheckPermission(ctx, userA, 1, entity.ModulePayments, entity.ActionView)
	assert.False(t, ok)
}

func TestAddMembership_Validaciones(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddCompany(2, "B", true)
	ajena := s.AddBranch(2, "Ajena", false)
	propia := s.AddBranch(1, "Centro", true)
	s.AddUser(userA, "a@clinica.cl", false)
	svc := newService(s, nil)
	ctx := context.Background()

	_, err := svc.AddMembership(ctx, 1, dto.CreateMembershipRequest{UserID: userA, Role: "professional", BranchID: &ajena.ID})
	assert.ErrorIs(t, err, domain.ErrBranchOutOfCompany)

	_, err = svc.AddMembership(ctx, 1, dto.CreateMembershipRequest{UserID: userB, Role: "professional"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.AddMembership(ctx, 1, dto.CreateMembershipRequest{UserID: userA, Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	m, err := svc.AddMembership(ctx, 1, dto.CreateMembershipRequest{UserID: userA, Role: "professional", BranchID: &propia.ID})
	require.NoError(t, err)
	assert.True(t, m.Active)
	assert.Equal(t, propia.ID, *m.BranchID)

	_, err = svc.AddMembership(ctx, 1, dto.CreateMembershipRequest{UserID: userA, Role: "reception"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	members, err := svc.ListMembers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestUpdateMembership_SucursalDeOtraEmpresa(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddCompany(2, "B", true)
	ajena := s.AddBranch(2, "Ajena", false)
	m := s.AddMembership(3, userA, 1, nil, entity.RoleReception, true)

	_, err := newService(s, nil).UpdateMembership(context.Background(), m.ID, dto.UpdateMembershipRequest{BranchID: &ajena.ID})
	assert.ErrorIs(t, err, domain.ErrBranchOutOfCompany)
}
