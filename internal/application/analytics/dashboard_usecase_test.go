package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

type dashboardRepoMock struct{ mock.Mock }

func (m *dashboardRepoMock) CountAppointments(ctx context.Context, companyID int64, branchID *int64, from, to time.Time) (int, error) {
	args := m.Called(ctx, companyID, branchID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *dashboardRepoMock) SumPayments(ctx context.Context, companyID int64, branchID *int64, from, to time.Time) (decimal.Decimal, int, error) {
	args := m.Called(ctx, companyID, branchID, from, to)
	return args.Get(0).(decimal.Decimal), args.Int(1), args.Error(2)
}

func (m *dashboardRepoMock) CountOpenTreatments(ctx context.Context, companyID int64, branchID *int64) (int, error) {
	args := m.Called(ctx, companyID, branchID)
	return args.Int(0), args.Error(1)
}

var fixedNow = time.Date(2026, time.March, 17, 15, 30, 0, 0, time.UTC)

func TestGetSummary_RangosYTotales(t *testing.T) {
	repo := &dashboardRepoMock{}
	branch := int64(4)
	tc := entity.TenantContext{UserID: "u", CompanyID: 10, BranchID: &branch}

	todayStart := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	todayEnd := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	repo.On("CountAppointments", mock.Anything, int64(10), &branch, todayStart, todayEnd).Return(7, nil)
	repo.On("SumPayments", mock.Anything, int64(10), &branch, todayStart, todayEnd).
		Return(decimal.RequireFromString("45000.555"), 3, nil)
	repo.On("SumPayments", mock.Anything, int64(10), &branch, monthStart, todayEnd).
		Return(decimal.RequireFromString("900000"), 40, nil)
	repo.On("CountOpenTreatments", mock.Anything, int64(10), &branch).Return(12, nil)

	out, err := NewDashboardUseCase(repo).WithClock(func() time.Time { return fixedNow }).GetSummary(context.Background(), tc)
	require.NoError(t, err)

	assert.Equal(t, 7, out.AppointmentsToday)
	assert.Equal(t, "45000.56", out.IncomeToday.StringFixed(2))
	assert.Equal(t, 3, out.PaymentsToday)
	assert.Equal(t, "900000.00", out.IncomeMonth.StringFixed(2))
	assert.Equal(t, 40, out.PaymentsMonth)
	assert.Equal(t, 12, out.OpenTreatments)
	assert.Equal(t, "Marzo 2026", out.DateLabel)
	repo.AssertExpectations(t)
}

func TestGetSummary_PropagaError(t *testing.T) {
	repo := &dashboardRepoMock{}
	repo.On("CountAppointments", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, errors.New("db caída"))
	repo.On("SumPayments", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, 0, nil)
	repo.On("CountOpenTreatments", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)

	_, err := NewDashboardUseCase(repo).GetSummary(context.Background(), entity.TenantContext{UserID: "u", CompanyID: 1})
	assert.ErrorContains(t, err, "citas de hoy")
}

func TestGetSummary_SinEmpresa(t *testing.T) {
	_, err := NewDashboardUseCase(&dashboardRepoMock{}).GetSummary(context.Background(), entity.TenantContext{UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrTenantUnresolved)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Diciembre 2025", monthLabel(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}
