// Package cashier contiene el cierre de caja por sucursal.
package cashier

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dental-clinic-api/internal/application/dto"
	"github.com/jhoicas/dental-clinic-api/internal/domain"
	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
	"github.com/jhoicas/dental-clinic-api/pkg/logger"
)

const noMethodName = "Sin medio de pago"

// ClosureUseCase calcula y persiste cierres de caja.
//
// El cierre suma los pagos sin cerrar de la sucursal en el período, los agrupa por medio de pago
// y los marca con el id del cierre, todo en una misma transacción.
type ClosureUseCase struct {
	tx        repository.CashierTxRunner
	closures  repository.CashClosureRepository
	catalog   repository.CatalogRepository
	companies repository.CompanyRepository
	branches  repository.BranchRepository
	generator ClosurePDFGenerator
	log       *logger.Logger
}

// NewClosureUseCase construye el caso de uso.
func NewClosureUseCase(
	tx repository.CashierTxRunner,
	closures repository.CashClosureRepository,
	catalog repository.CatalogRepository,
	companies repository.CompanyRepository,
	branches repository.BranchRepository,
	generator ClosurePDFGenerator,
	log *logger.Logger,
) *ClosureUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ClosureUseCase{
		tx:        tx,
		closures:  closures,
		catalog:   catalog,
		companies: companies,
		branches:  branches,
		generator: generator,
		log:       log.Named("cashier"),
	}
}

// Create cierra la caja de la sucursal actual para [PeriodFrom, PeriodTo).
func (uc *ClosureUseCase) Create(ctx context.Context, tc entity.TenantContext, in dto.CreateCashClosureRequest) (*dto.CashClosureResponse, error) {
	if tc.CompanyID == 0 {
		return nil, domain.ErrTenantUnresolved
	}
	if !tc.HasBranch() {
		return nil, fmt.Errorf("%w: seleccione una sucursal", domain.ErrInvalidInput)
	}
	if !in.PeriodTo.After(in.PeriodFrom) {
		return nil, fmt.Errorf("%w: período inválido", domain.ErrInvalidInput)
	}
	if in.CountedTotal.IsNegative() {
		return nil, fmt.Errorf("%w: monto contado negativo", domain.ErrInvalidInput)
	}

	methods, err := uc.methodNames(ctx, tc.CompanyID)
	if err != nil {
		return nil, err
	}

	var closure *entity.CashRegisterClosure
	err = uc.tx.RunCashier(ctx, func(payments repository.PaymentRepository, closures repository.CashClosureRepository) error {
		pending, err := payments.ListUnclosedForUpdate(ctx, tc.CompanyID, tc.BranchID, in.PeriodFrom, in.PeriodTo)
		if err != nil {
			return fmt.Errorf("pagos pendientes: %w", err)
		}
		now := time.Now()
		closure = Summarize(pending, methods)
		closure.ID = uuid.New().String()
		closure.CompanyID = tc.CompanyID
		closure.BranchID = tc.BranchID
		closure.PeriodFrom = in.PeriodFrom
		closure.PeriodTo = in.PeriodTo
		closure.CountedTotal = in.CountedTotal.Round(2)
		closure.Difference = closure.CountedTotal.Sub(closure.ExpectedTotal)
		closure.Notes = in.Notes
		closure.ClosedBy = tc.UserID
		closure.ClosedAt = now
		closure.CreatedAt = now

		if err := closures.Create(ctx, closure); err != nil {
			return fmt.Errorf("guardar cierre: %w", err)
		}
		ids := make([]string, 0, len(pending))
		for _, p := range pending {
			ids = append(ids, p.ID)
		}
		if len(ids) == 0 {
			return nil
		}
		return payments.AssignClosure(ctx, ids, closure.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("cashier: cierre: %w", err)
	}
	uc.log.Info().
		Str("closure_id", closure.ID).
		Int64("company_id", closure.CompanyID).
		Int("payments", closure.PaymentsCount).
		Str("expected", closure.ExpectedTotal.StringFixed(2)).
		Str("difference", closure.Difference.StringFixed(2)).
		Msg("cierre de caja registrado")
	return toClosureResponse(closure), nil
}

// Summarize agrupa pagos por medio de pago. Las líneas quedan ordenadas por nombre del medio.
func Summarize(payments []*entity.Payment, methodNames map[string]string) *entity.CashRegisterClosure {
	byMethod := map[string]*entity.CashRegisterClosureLine{}
	total := decimal.Zero
	for _, p := range payments {
		key := ""
		if p.PaymentMethodID != nil {
			key = *p.PaymentMethodID
		}
		line, ok := byMethod[key]
		if !ok {
			line = &entity.CashRegisterClosureLine{PaymentMethodName: noMethodName, Total: decimal.Zero}
			if key != "" {
				id := key
				line.PaymentMethodID = &id
				line.PaymentMethodName = methodNames[key]
				if line.PaymentMethodName == "" {
					line.PaymentMethodName = key
				}
			}
			byMethod[key] = line
		}
		line.PaymentsCount++
		line.Total = line.Total.Add(p.Amount)
		total = total.Add(p.Amount)
	}
	lines := make([]entity.CashRegisterClosureLine, 0, len(byMethod))
	for _, l := range byMethod {
		lines = append(lines, *l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].PaymentMethodName < lines[j].PaymentMethodName })
	return &entity.CashRegisterClosure{
		ExpectedTotal: total.Round(2),
		PaymentsCount: len(payments),
		Lines:         lines,
	}
}

// Get detalle de un cierre de la empresa.
func (uc *ClosureUseCase) Get(ctx context.Context, tc entity.TenantContext, id string) (*dto.CashClosureResponse, error) {
	c, err := uc.get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	return toClosureResponse(c), nil
}

// List cierres de la empresa (y de la sucursal actual si la hay), más recientes primero.
func (uc *ClosureUseCase) List(ctx context.Context, tc entity.TenantContext, limit, offset int) (*dto.CashClosureListResponse, error) {
	if tc.CompanyID == 0 {
		return nil, domain.ErrTenantUnresolved
	}
	list, err := uc.closures.List(ctx, tc.CompanyID, tc.BranchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("cashier: listar: %w", err)
	}
	items := make([]dto.CashClosureResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClosureResponse(c))
	}
	return &dto.CashClosureListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ExportPDF genera el comprobante del cierre. Retorna (bytes, nombre de archivo).
func (uc *ClosureUseCase) ExportPDF(ctx context.Context, tc entity.TenantContext, id string) ([]byte, string, error) {
	c, err := uc.get(ctx, tc, id)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companies.GetByID(ctx, c.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("cashier: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", fmt.Errorf("cashier: empresa %d: %w", c.CompanyID, domain.ErrNotFound)
	}
	var branch *entity.Branch
	if c.BranchID != nil {
		branch, err = uc.branches.GetByID(ctx, *c.BranchID)
		if err != nil {
			return nil, "", fmt.Errorf("cashier: obtener sucursal: %w", err)
		}
	}
	pdf, err := uc.generator.GenerateClosurePDF(ctx, c, company, branch)
	if err != nil {
		return nil, "", fmt.Errorf("cashier: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("cierre_caja_%s.pdf", c.ClosedAt.Format("20060102_1504"))
	return pdf, filename, nil
}

func (uc *ClosureUseCase) get(ctx context.Context, tc entity.TenantContext, id string) (*entity.CashRegisterClosure, error) {
	if tc.CompanyID == 0 {
		return nil, domain.ErrTenantUnresolved
	}
	c, err := uc.closures.GetByID(ctx, tc.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("cashier: obtener: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *ClosureUseCase) methodNames(ctx context.Context, companyID int64) (map[string]string, error) {
	items, err := uc.catalog.List(ctx, entity.CatalogPaymentMethods, companyID, false)
	if err != nil {
		return nil, fmt.Errorf("cashier: medios de pago: %w", err)
	}
	out := make(map[string]string, len(items))
	for _, it := range items {
		out[it.ID] = it.Name
	}
	return out, nil
}

func toClosureResponse(c *entity.CashRegisterClosure) *dto.CashClosureResponse {
	lines := make([]dto.CashClosureLineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, dto.CashClosureLineResponse{
			PaymentMethodID:   l.PaymentMethodID,
			PaymentMethodName: l.PaymentMethodName,
			PaymentsCount:     l.PaymentsCount,
			Total:             l.Total,
		})
	}
	return &dto.CashClosureResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		BranchID:      c.BranchID,
		PeriodFrom:    c.PeriodFrom,
		PeriodTo:      c.PeriodTo,
		ExpectedTotal: c.ExpectedTotal,
		CountedTotal:  c.CountedTotal,
		Difference:    c.Difference,
		PaymentsCount: c.PaymentsCount,
		Lines:         lines,
		Notes:         c.Notes,
		ClosedBy:      c.ClosedBy,
		ClosedAt:      c.ClosedAt,
	}
}
