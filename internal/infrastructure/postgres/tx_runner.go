package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/dental-clinic-api/internal/domain/repository"
)

var (
	_ repository.TenantTxRunner  = (*TxRunner)(nil)
	_ repository.CashierTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTenant ejecuta fn con repos de sucursales y membresías atados a la tx.
func (r *TxRunner) RunTenant(ctx context.Context, fn func(repository.BranchRepository, repository.MembershipRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewBranchRepository(tx), NewMembershipRepository(tx))
	})
}

// RunCashier ejecuta fn con repos de pagos y cierres atados a la tx (cierre de caja).
func (r *TxRunner) RunCashier(ctx context.Context, fn func(repository.PaymentRepository, repository.CashClosureRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewPaymentRepository(tx), NewCashClosureRepository(tx))
	})
}

// run inicia la transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
