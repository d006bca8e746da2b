package cashier_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/application/cashier"
	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
	"github.com/jhoicas/dental-clinic-api/internal/mocks"
)

const cajera = "00000000-0000-0000-0000-0000000000c1"

var day = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func str(s string) *string { return &s }

func addPayment(t *testing.T, s *mocks.Store, companyID int64, branchID int64, method *string, amount string, at time.Time) *entity.Payment {
	t.Helper()
	p := &entity.Payment{
		CompanyID:       companyID,
		BranchID:        &branchID,
		PatientID:       "p1",
		PaymentMethodID: method,
		Amount:          decimal.RequireFromString(amount),
		PaidAt:          at,
	}
	require.NoError(t, s.Payments().Create(context.Background(), p))
	return p
}

func newClosureUC(s *mocks.Store, gen cashier.ClosurePDFGenerator) *cashier.ClosureUseCase {
	return cashier.NewClosureUseCase(s.CashierTx(), s.CashClosures(), s.Catalog(), s.Companies(), s.Branches(), gen, nil)
}

func TestCreate_SumaPorMedioYMarcaPagos(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	centro := s.AddBranch(1, "Centro", true)
	norte := s.AddBranch(1, "Norte", false)
	efectivo := &entity.CatalogItem{ID: "m-efectivo", CompanyID: 1, Kind: entity.CatalogPaymentMethods, Name: "Efectivo", Active: true}
	debito := &entity.CatalogItem{ID: "m-debito", CompanyID: 1, Kind: entity.CatalogPaymentMethods, Name: "Débito", Active: true}
	require.NoError(t, s.Catalog().Create(context.Background(), efectivo))
	require.NoError(t, s.Catalog().Create(context.Background(), debito))

	p1 := addPayment(t, s, 1, centro.ID, str("m-efectivo"), "10000", day.Add(9*time.Hour))
	addPayment(t, s, 1, centro.ID, str("m-efectivo"), "5000.50", day.Add(10*time.Hour))
	addPayment(t, s, 1, centro.ID, str("m-debito"), "20000", day.Add(11*time.Hour))
	addPayment(t, s, 1, centro.ID, nil, "1000", day.Add(12*time.Hour))
	addPayment(t, s, 1, norte.ID, str("m-efectivo"), "99999", day.Add(12*time.Hour))
	addPayment(t, s, 1, centro.ID, str("m-efectivo"), "77777", day.Add(25*time.Hour))

	uc := newClosureUC(s, nil)
	tc := entity.TenantContext{UserID: cajera, CompanyID: 1, BranchID: &centro.ID}

	c, err := uc.Create(context.Background(), tc, dto.CreateCashClosureRequest{
		PeriodFrom:   day,
		PeriodTo:     day.Add(24 * time.Hour),
		CountedTotal: decimal.RequireFromString("36000"),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, c.PaymentsCount)
	assert.Equal(t, "36000.50", c.ExpectedTotal.StringFixed(2))
	assert.Equal(t, "-0.50", c.Difference.StringFixed(2))
	require.Len(t, c.Lines, 3)
	assert.Equal(t, "Débito", c.Lines[0].PaymentMethodName)
	assert.Equal(t, "Efectivo", c.Lines[1].PaymentMethodName)
	assert.Equal(t, 2, c.Lines[1].PaymentsCount)
	assert.Equal(t, "15000.50", c.Lines[1].Total.StringFixed(2))
	assert.Equal(t, "Sin medio de pago", c.Lines[2].PaymentMethodName)
	assert.Equal(t, cajera, c.ClosedBy)

	got, _ := s.Payments().GetByID(context.Background(), 1, p1.ID)
	require.NotNil(t, got.ClosureID)
	assert.Equal(t, c.ID, *got.ClosureID)

	again, err := uc.Create(context.Background(), tc, dto.CreateCashClosureRequest{PeriodFrom: day, PeriodTo: day.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.Zero(t, again.PaymentsCount, "los pagos ya cerrados no se vuelven a contar")
}

func TestCreate_RequiereSucursalYPeriodoValido(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	uc := newClosureUC(s, nil)

	_, err := uc.Create(context.Background(), entity.TenantContext{UserID: cajera, CompanyID: 1},
		dto.CreateCashClosureRequest{PeriodFrom: day, PeriodTo: day.Add(time.Hour)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	b := int64(9)
	_, err = uc.Create(context.Background(), entity.TenantContext{UserID: cajera, CompanyID: 1, BranchID: &b},
		dto.CreateCashClosureRequest{PeriodFrom: day, PeriodTo: day})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type pdfGeneratorMock struct{ mock.Mock }

func (m *pdfGeneratorMock) GenerateClosurePDF(ctx context.Context, c *entity.CashRegisterClosure, company *entity.Company, branch *entity.Branch) ([]byte, error) {
	args := m.Called(ctx, c, company, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestExportPDF_DelegaEnGenerador(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	s.AddCompany(2, "B", true)
	centro := s.AddBranch(1, "Centro", true)
	gen := &pdfGeneratorMock{}
	uc := newClosureUC(s, gen)
	tc := entity.TenantContext{UserID: cajera, CompanyID: 1, BranchID: &centro.ID}

	c, err := uc.Create(context.Background(), tc, dto.CreateCashClosureRequest{PeriodFrom: day, PeriodTo: day.Add(time.Hour)})
	require.NoError(t, err)

	gen.On("GenerateClosurePDF", mock.Anything,
		mock.MatchedBy(func(x *entity.CashRegisterClosure) bool { return x.ID == c.ID }),
		mock.MatchedBy(func(x *entity.Company) bool { return x.ID == 1 }),
		mock.MatchedBy(func(x *entity.Branch) bool { return x != nil && x.ID == centro.ID }),
	).Return([]byte("%PDF-1.3"), nil).Once()

	pdf, name, err := uc.ExportPDF(context.Background(), tc, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Contains(t, name, "cierre_caja_")
	gen.AssertExpectations(t)

	_, _, err = uc.ExportPDF(context.Background(), entity.TenantContext{UserID: cajera, CompanyID: 2}, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// companiesVacias simula una empresa eliminada entre el cierre y la exportación.
type companiesVacias struct{ repository.CompanyRepository }

func (companiesVacias) GetByID(context.Context, int64) (*entity.Company, error) { return nil, nil }

func TestExportPDF_EmpresaInexistente(t *testing.T) {
	s := mocks.NewStore()
	s.AddCompany(1, "A", true)
	centro := s.AddBranch(1, "Centro", true)
	tc := entity.TenantContext{UserID: cajera, CompanyID: 1, BranchID: &centro.ID}

	c, err := newClosureUC(s, &pdfGeneratorMock{}).Create(context.Background(), tc,
		dto.CreateCashClosureRequest{PeriodFrom: day, PeriodTo: day.Add(time.Hour)})
	require.NoError(t, err)

	gen := &pdfGeneratorMock{}
	uc := cashier.NewClosureUseCase(s.CashierTx(), s.CashClosures(), s.Catalog(), companiesVacias{s.Companies()}, s.Branches(), gen, nil)

	_, _, err = uc.ExportPDF(context.Background(), tc, c.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotContains(t, err.Error(), "%!w")
	gen.AssertNotCalled(t, "GenerateClosurePDF", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
