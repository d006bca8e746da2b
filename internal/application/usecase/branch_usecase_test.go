package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/application/usecase"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/mocks"
)

func TestBranchSave_SoloUnaPrincipal(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Empresa A", true)
	uc := usecase.NewBranchUseCase(s.Companies(), s.Branches(), s.TenantTx())
	ctx := context.Background()

	centro, err := uc.Save(ctx, 1, nil, dto.SaveBranchRequest{Name: "Centro", IsPrimary: true})
	require.NoError(t, err)
	norte, err := uc.Save(ctx, 1, nil, dto.SaveBranchRequest{Name: "Norte"})
	require.NoError(t, err)
	assert.False(t, norte.IsPrimary)

	_, err = uc.Save(ctx, 1, &norte.ID, dto.SaveBranchRequest{Name: "Norte", IsPrimary: true})
	require.NoError(t, err)

	c, err := uc.GetByID(ctx, 1, centro.ID)
	require.NoError(t, err)
	n, err := uc.GetByID(ctx, 1, norte.ID)
	require.NoError(t, err)
	assert.False(t, c.IsPrimary, "Centro deja de ser principal")
	assert.True(t, n.IsPrimary)
}

func TestBranchSave_NuevaPrincipalDesmarcaAnterior(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Empresa A", true)
	s.AddCompany(2, "Empresa B", true)
	uc := usecase.NewBranchUseCase(s.Companies(), s.Branches(), s.TenantTx())
	ctx := context.Background()

	_, err := uc.Save(ctx, 1, nil, dto.SaveBranchRequest{Name: "Centro", IsPrimary: true})
	require.NoError(t, err)
	otra, err := uc.Save(ctx, 2, nil, dto.SaveBranchRequest{Name: "Matriz", IsPrimary: true})
	require.NoError(t, err)
	_, err = uc.Save(ctx, 1, nil, dto.SaveBranchRequest{Name: "Sur", IsPrimary: true})
	require.NoError(t, err)

	list, err := uc.ListByCompany(ctx, 1)
	require.NoError(t, err)
	primaries := 0
	for _, b := range list {
		if b.IsPrimary {
			primaries++
			assert.Equal(t, "Sur", b.Name)
		}
	}
	assert.Equal(t, 1, primaries)

	o, err := uc.GetByID(ctx, 2, otra.ID)
	require.NoError(t, err)
	assert.True(t, o.IsPrimary, "otra empresa no se ve afectada")
}

func TestBranchSave_NombreDuplicado(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Empresa A", true)
	uc := usecase.NewBranchUseCase(s.Companies(), s.Branches(), s.TenantTx())
	ctx := context.Background()

	_, err := uc.Save(ctx, 1, nil, dto.SaveBranchRequest{Name: "Centro"})
	require.NoError(t, err)
	_, err = uc.Save(ctx, 1, nil, dto.SaveBranchRequest{Name: "Centro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestBranchSave_SucursalDeOtraEmpresa(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Empresa A", true)
	s.AddCompany(2, "Empresa B", true)
	ajena := s.AddBranch(2, "Ajena", false)
	uc := usecase.NewBranchUseCase(s.Companies(), s.Branches(), s.TenantTx())

	_, err := uc.Save(context.Background(), 1, &ajena.ID, dto.SaveBranchRequest{Name: "Ajena"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyDeactivate_NoTocaSucursales(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Empresa A", true)
	b := s.AddBranch(1, "Centro", true)
	uc := usecase.NewCompanyUseCase(s.Companies())
	ctx := context.Background()

	require.NoError(t, uc.Deactivate(ctx, 1))
	c, err := uc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, c.Active)

	got, _ := s.Branches().GetByID(ctx, b.ID)
	require.NotNil(t, got)
	assert.True(t, got.Active)
}

func TestCompanyDelete_Cascada(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "Empresa A", true)
	b := s.AddBranch(1, "Centro", true)
	s.AddMembership(5, "u1", 1, &b.ID, "reception", true)
	uc := usecase.NewCompanyUseCase(s.Companies())
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, 1))
	got, _ := s.Branches().GetByID(ctx, b.ID)
	assert.Nil(t, got)
	m, _ := s.Memberships().GetByID(ctx, 5)
	assert.Nil(t, m)
	_, err := uc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyCreate_RutDuplicado(t *testing.T) {
	s := mocks.NewStore()
	uc := usecase.NewCompanyUseCase(s.Companies())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCompanyRequest{LegalName: "Clínica Sonrisa SpA", DisplayName: "Sonrisa", TaxID: "76.111.222-8"})
	require.NoError(t, err)
	assert.True(t, c.Active)
	assert.Equal(t, "Sonrisa", c.Name)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{LegalName: "Otra", TaxID: "76111222-8"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el RUT se compara normalizado")
}

func TestCompanyCreate_RutInvalido(t *testing.T) {
	uc := usecase.NewCompanyUseCase(mocks.NewStore().Companies())

	_, err := uc.Create(context.Background(), dto.CreateCompanyRequest{LegalName: "X", TaxID: "76.111.222-3"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
