package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/mocks"
)

const recepcion = "00000000-0000-0000-0000-00000000r001"

type fixture struct {
	s      *mocks.Store
	tcA    entity.TenantContext
	tcB    entity.TenantContext
	centro *entity.Branch
	norte  *entity.Branch
}

func newFixture() *fixture {
	s := mocks.NewStore()
	s.AddCompany(1, "Empresa A", true)
	s.AddCompany(2, "Empresa B", true)
	centro := s.AddBranch(1, "Centro", true)
	norte := s.AddBranch(1, "Norte", false)
	matriz := s.AddBranch(2, "Matriz", true)
	return &fixture{
		s:      s,
		tcA:    entity.TenantContext{UserID: recepcion, CompanyID: 1, BranchID: &centro.ID},
		tcB:    entity.TenantContext{UserID: recepcion, CompanyID: 2, BranchID: &matriz.ID},
		centro: centro,
		norte:  norte,
	}
}

func (f *fixture) patients() *usecase.PatientUseCase {
	return usecase.NewPatientUseCase(f.s.Patients(), f.s.Catalog())
}

func (f *fixture) appointments() *usecase.AppointmentUseCase {
	return usecase.NewAppointmentUseCase(f.s.Appointments(), f.s.Patients(), f.s.Catalog(), f.s.Memberships())
}

// ─── Pacientes ───────────────────────────────────────────────────────────────

func TestPatients_AislamientoYCompartidos(t *testing.T) {
	f := newFixture()
	uc := f.patients()
	ctx := context.Background()

	p, err := uc.Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "12.345.678-9", FirstName: "Ana", LastName: "Rojas"})
	require.NoError(t, err)
	assert.Equal(t, "12345678-9", p.DocumentID)
	assert.Equal(t, int64(1), p.CompanyID)

	list, err := uc.List(ctx, f.tcB, "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items, "la empresa B no ve fichas de A")
	_, err = uc.Get(ctx, f.tcB, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Share(ctx, f.tcA, p.ID, dto.SharePatientRequest{CompanyIDs: []int64{2, 2, 1}})
	require.NoError(t, err)

	list, err = uc.List(ctx, f.tcB, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].Shared)
	assert.Equal(t, []int64{2}, list.Items[0].SharedWith)

	notes := "intento de B"
	_, err = uc.Update(ctx, f.tcB, p.ID, dto.UpdatePatientRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrForbidden, "la ficha compartida es de solo lectura")
}

func TestPatients_CompartirFallidoConservaPrevios(t *testing.T) {
	f := newFixture()
	uc := f.patients()
	ctx := context.Background()

	p, err := uc.Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "5-1", FirstName: "Luis", LastName: "Soto"})
	require.NoError(t, err)
	_, err = uc.Share(ctx, f.tcA, p.ID, dto.SharePatientRequest{CompanyIDs: []int64{2}})
	require.NoError(t, err)

	_, err = uc.Share(ctx, f.tcA, p.ID, dto.SharePatientRequest{CompanyIDs: []int64{2, 999}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "empresa inexistente")

	got, err := uc.Get(ctx, f.tcA, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, got.SharedWith, "los compartidos previos se conservan")

	list, err := uc.List(ctx, f.tcB, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestPatients_FiltroSucursal(t *testing.T) {
	f := newFixture()
	uc := f.patients()
	ctx := context.Background()
	tcNorte := f.tcA
	tcNorte.BranchID = &f.norte.ID

	_, err := uc.Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "1-9", FirstName: "Local", LastName: "Centro"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "2-7", FirstName: "Compartida", LastName: "Centro", ShareAcrossBranches: true})
	require.NoError(t, err)

	list, err := uc.List(ctx, tcNorte, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Compartida", list.Items[0].FirstName)

	sinSucursal := entity.TenantContext{UserID: recepcion, CompanyID: 1}
	list, err = uc.List(ctx, sinSucursal, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

func TestPatients_DocumentoDuplicadoYBaja(t *testing.T) {
	f := newFixture()
	uc := f.patients()
	ctx := context.Background()

	p, err := uc.Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "3-5", FirstName: "Luis", LastName: "Pérez"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "3-5", FirstName: "Otro", LastName: "Pérez"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, f.tcB, dto.CreatePatientRequest{DocumentID: "3-5", FirstName: "Luis", LastName: "Pérez"})
	assert.NoError(t, err, "el documento es único por empresa")

	require.NoError(t, uc.Deactivate(ctx, f.tcA, p.ID))
	list, err := uc.List(ctx, f.tcA, "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestPatients_PrevisionDeOtraEmpresa(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prevB, err := usecase.NewCatalogUseCase(entity.CatalogPrevisions, f.s.Catalog()).Save(ctx, f.tcB, "", dto.SaveCatalogItemRequest{Name: "Fonasa"})
	require.NoError(t, err)

	_, err = f.patients().Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "4-3", FirstName: "X", LastName: "Y", PrevisionID: &prevB.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Citas ───────────────────────────────────────────────────────────────────

func TestAppointments_TraslapeYEstados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.patients().Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "5-1", FirstName: "Eva", LastName: "Mora"})
	require.NoError(t, err)
	uc := f.appointments()
	prof := "00000000-0000-0000-0000-0000000000d1"
	f.s.AddMembership(100, prof, 1, nil, entity.RoleProfessional, true)
	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	a, err := uc.Create(ctx, f.tcA, dto.CreateAppointmentRequest{PatientID: p.ID, ProfessionalID: &prof, StartsAt: start})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", a.Status)
	assert.Equal(t, start.Add(30*time.Minute), a.EndsAt)

	_, err = uc.Create(ctx, f.tcA, dto.CreateAppointmentRequest{PatientID: p.ID, ProfessionalID: &prof, StartsAt: start.Add(15 * time.Minute)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, f.tcA, dto.CreateAppointmentRequest{PatientID: p.ID, ProfessionalID: &prof, StartsAt: start.Add(30 * time.Minute)})
	assert.NoError(t, err, "citas contiguas no se traslapan")

	_, err = uc.ChangeStatus(ctx, f.tcA, a.ID, dto.ChangeAppointmentStatusRequest{Status: "attended"})
	require.NoError(t, err)
	_, err = uc.ChangeStatus(ctx, f.tcA, a.ID, dto.ChangeAppointmentStatusRequest{Status: "scheduled"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Get(ctx, f.tcB, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppointments_RequiereSucursal(t *testing.T) {
	f := newFixture()
	uc := f.appointments()
	_, err := uc.Create(context.Background(), entity.TenantContext{UserID: recepcion, CompanyID: 1},
		dto.CreateAppointmentRequest{PatientID: "00000000-0000-0000-0000-000000000001", StartsAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppointments_ProfesionalDeLaEmpresa(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.patients().Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "7-2", FirstName: "Ema", LastName: "Paz"})
	require.NoError(t, err)
	uc := f.appointments()
	propio := "00000000-0000-0000-0000-0000000000d2"
	ajeno := "00000000-0000-0000-0000-0000000000d3"
	inactivo := "00000000-0000-0000-0000-0000000000d4"
	f.s.AddMembership(100, propio, 1, nil, entity.RoleProfessional, true)
	f.s.AddMembership(101, ajeno, 2, nil, entity.RoleProfessional, true)
	f.s.AddMembership(102, inactivo, 1, nil, entity.RoleProfessional, false)
	start := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	_, err = uc.Create(ctx, f.tcA, dto.CreateAppointmentRequest{PatientID: p.ID, ProfessionalID: &ajeno, StartsAt: start})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "profesional de otra empresa")
	_, err = uc.Create(ctx, f.tcA, dto.CreateAppointmentRequest{PatientID: p.ID, ProfessionalID: &inactivo, StartsAt: start})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "membresía inactiva")

	a, err := uc.Create(ctx, f.tcA, dto.CreateAppointmentRequest{PatientID: p.ID, ProfessionalID: &propio, StartsAt: start})
	require.NoError(t, err)

	_, err = uc.Update(ctx, f.tcA, a.ID, dto.UpdateAppointmentRequest{ProfessionalID: &ajeno})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	got, err := uc.Get(ctx, f.tcA, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProfessionalID)
	assert.Equal(t, propio, *got.ProfessionalID)
}

// ─── Tratamientos y pagos ────────────────────────────────────────────────────

func TestTreatments_PrecioDesdeArancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.patients().Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "6-K", FirstName: "Sol", LastName: "Vera"})
	require.NoError(t, err)
	proc, err := usecase.NewProcedureUseCase(f.s.Procedures(), f.s.Catalog()).Save(ctx, f.tcA, "", dto.SaveProcedureRequest{Code: "end01", Name: "Endodoncia", Price: decimal.RequireFromString("120000")})
	require.NoError(t, err)
	assert.Equal(t, "END01", proc.Code)

	uc := usecase.NewTreatmentUseCase(f.s.Treatments(), f.s.Patients(), f.s.Procedures())
	tr, err := uc.Create(ctx, f.tcA, dto.CreateTreatmentRequest{PatientID: p.ID, ProcedureID: &proc.ID, Tooth: "36"})
	require.NoError(t, err)
	assert.True(t, tr.Price.Equal(decimal.RequireFromString("120000")))
	assert.Equal(t, "planned", tr.Status)

	done := "completed"
	tr, err = uc.Update(ctx, f.tcA, tr.ID, dto.UpdateTreatmentRequest{Status: &done})
	require.NoError(t, err)
	assert.NotNil(t, tr.CompletedOn)
}

func TestPayments_MontoPositivoYCerradoInmutable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.patients().Create(ctx, f.tcA, dto.CreatePatientRequest{DocumentID: "7-8", FirstName: "Tomás", LastName: "Lagos"})
	require.NoError(t, err)
	uc := usecase.NewPaymentUseCase(f.s.Payments(), f.s.Patients(), f.s.Treatments(), f.s.Catalog())

	_, err = uc.Create(ctx, f.tcA, dto.CreatePaymentRequest{PatientID: p.ID, Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	pay, err := uc.Create(ctx, f.tcA, dto.CreatePaymentRequest{PatientID: p.ID, Amount: decimal.RequireFromString("15000.456")})
	require.NoError(t, err)
	assert.Equal(t, "15000.46", pay.Amount.StringFixed(2))
	assert.Equal(t, recepcion, pay.CreatedBy)

	require.NoError(t, f.s.Payments().AssignClosure(ctx, []string{pay.ID}, "cierre-1"))

	amount := decimal.NewFromInt(1)
	_, err = uc.Update(ctx, f.tcA, pay.ID, dto.UpdatePaymentRequest{Amount: &amount})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, uc.Delete(ctx, f.tcA, pay.ID), domain.ErrConflict)
}

// ─── Catálogos ───────────────────────────────────────────────────────────────

func TestCatalog_NombreUnicoPorEmpresaYTipo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	esp := usecase.NewCatalogUseCase(entity.CatalogSpecialties, f.s.Catalog())
	medios := usecase.NewCatalogUseCase(entity.CatalogPaymentMethods, f.s.Catalog())

	_, err := esp.Save(ctx, f.tcA, "", dto.SaveCatalogItemRequest{Name: "Ortodoncia"})
	require.NoError(t, err)
	_, err = esp.Save(ctx, f.tcA, "", dto.SaveCatalogItemRequest{Name: "Ortodoncia"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = esp.Save(ctx, f.tcB, "", dto.SaveCatalogItemRequest{Name: "Ortodoncia"})
	assert.NoError(t, err)
	_, err = medios.Save(ctx, f.tcA, "", dto.SaveCatalogItemRequest{Name: "Ortodoncia"})
	assert.NoError(t, err)

	list, err := esp.List(ctx, f.tcA, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
