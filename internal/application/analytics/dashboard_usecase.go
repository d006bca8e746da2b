// Package analytics contiene el resumen operativo (dashboard) del tenant actual.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

// DashboardUseCase genera los KPIs del día y del mes en curso.
//
// Fuente de datos: DashboardRepository (consultas read-only), acotadas a la empresa
// y, si hay sucursal actual, a esa sucursal.
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO para el tenant.
//
// Cuatro consultas en paralelo:
//  1. CountAppointments(hoy)
//  2. SumPayments(hoy)
//  3. SumPayments(mes)
//  4. CountOpenTreatments
func (uc *DashboardUseCase) GetSummary(ctx context.Context, tc entity.TenantContext) (*dto.DashboardSummaryDTO, error) {
	if tc.CompanyID == 0 {
		return nil, domain.ErrTenantUnresolved
	}
	now := uc.now()

	// ── Rangos de fecha (semiabiertos) ────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type countResult struct {
		n   int
		err error
	}
	type sumResult struct {
		total decimal.Decimal
		n     int
		err   error
	}

	apptCh := make(chan countResult, 1)
	todayCh := make(chan sumResult, 1)
	monthCh := make(chan sumResult, 1)
	openCh := make(chan countResult, 1)

	go func() {
		n, err := uc.repo.CountAppointments(ctx, tc.CompanyID, tc.BranchID, todayStart, todayEnd)
		apptCh <- countResult{n, err}
	}()
	go func() {
		total, n, err := uc.repo.SumPayments(ctx, tc.CompanyID, tc.BranchID, todayStart, todayEnd)
		todayCh <- sumResult{total, n, err}
	}()
	go func() {
		total, n, err := uc.repo.SumPayments(ctx, tc.CompanyID, tc.BranchID, monthStart, todayEnd)
		monthCh <- sumResult{total, n, err}
	}()
	go func() {
		n, err := uc.repo.CountOpenTreatments(ctx, tc.CompanyID, tc.BranchID)
		openCh <- countResult{n, err}
	}()

	appts := <-apptCh
	today := <-todayCh
	month := <-monthCh
	open := <-openCh

	if appts.err != nil {
		return nil, fmt.Errorf("dashboard: citas de hoy: %w", appts.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", month.err)
	}
	if open.err != nil {
		return nil, fmt.Errorf("dashboard: tratamientos abiertos: %w", open.err)
	}

	return &dto.DashboardSummaryDTO{
		AppointmentsToday: appts.n,
		IncomeToday:       today.total.Round(2),
		PaymentsToday:     today.n,
		IncomeMonth:       month.total.Round(2),
		PaymentsMonth:     month.n,
		OpenTreatments:    open.n,
		DateLabel:         monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
