package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-clinic-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1.234.567", formatMoney(decimal.RequireFromString("1234567")))
	assert.Equal(t, "$250.000", formatMoney(decimal.RequireFromString("249999.6")))
	assert.Equal(t, "-$150.000", formatMoney(decimal.RequireFromString("-150000")))
}

func TestGenerateClosurePDF(t *testing.T) {
	method := "m1"
	branchID := int64(3)
	closure := &entity.CashRegisterClosure{
		ID:            "6f1c2b1e-8d7a-4f5e-9a57-3f1c2b1e8d7a",
		CompanyID:     1,
		BranchID:      &branchID,
		PeriodFrom:    time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		PeriodTo:      time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
		ExpectedTotal: decimal.RequireFromString("36000.50"),
		CountedTotal:  decimal.RequireFromString("36000"),
		Difference:    decimal.RequireFromString("-0.50"),
		PaymentsCount: 3,
		Lines: []entity.CashRegisterClosureLine{
			{PaymentMethodID: &method, PaymentMethodName: "Efectivo", PaymentsCount: 2, Total: decimal.RequireFromString("16000.50")},
			{PaymentMethodName: "Sin medio de pago", PaymentsCount: 1, Total: decimal.RequireFromString("20000")},
		},
		ClosedAt: time.Date(2026, 5, 4, 20, 0, 0, 0, time.UTC),
	}
	company := &entity.Company{ID: 1, LegalName: "Clínica Sonrisa SpA", TaxID: "76.123.456-7"}
	branch := &entity.Branch{ID: branchID, CompanyID: 1, Name: "Centro", Address: "Av. Principal 123"}

	out, err := NewMarotoPDFGenerator().GenerateClosurePDF(context.Background(), closure, company, branch)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	out, err = NewMarotoPDFGenerator().GenerateClosurePDF(context.Background(), &entity.CashRegisterClosure{ID: "x"}, company, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
