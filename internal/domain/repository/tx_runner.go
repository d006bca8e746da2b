package repository

import "context"

// TenantTxRunner ejecuta fn en una transacción con repos de sucursales y membresías atados a ella.
// Lo usan el guardado de sucursal principal y el find-or-create de membresías.
type TenantTxRunner interface {
	RunTenant(ctx context.Context, fn func(branches BranchRepository, memberships MembershipRepository) error) error
}

// CashierTxRunner ejecuta fn en una transacción con repos de pagos y cierres de caja.
type CashierTxRunner interface {
	RunCashier(ctx context.Context, fn func(payments PaymentRepository, closures CashClosureRepository) error) error
}
