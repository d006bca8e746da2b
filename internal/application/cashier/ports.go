package cashier

import (
	"context"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

// ClosurePDFGenerator genera el comprobante PDF de un cierre de caja.
type ClosurePDFGenerator interface {
	GenerateClosurePDF(ctx context.Context, closure *entity.CashRegisterClosure, company *entity.Company, branch *entity.Branch) ([]byte, error)
}
