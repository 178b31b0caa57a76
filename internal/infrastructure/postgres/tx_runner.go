package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/billing"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/application/inventory"
	"github.com/jhoicas/Gestao-Seguranca-api/internal/domain/repository"
)

var (
	_ billing.BillingTxRunner     = (*TxRunner)(nil)
	_ inventory.StockTxRunner     = (*TxRunner)(nil)
	_ inventory.EquipmentTxRunner = (*TxRunner)(nil)
	_ Querier                     = (*pgxpool.Pool)(nil)
	_ Querier                     = (pgx.Tx)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
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

// RunBilling inicia una transacción con los repos de contratos, faturamentos y recebimentos
// (emitir y deshacer son atómicos).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	contractRepo repository.ContractRepository,
	billingRepo repository.BillingRepository,
	receivableRepo repository.ReceivableRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewContractRepository(tx), NewBillingRepository(tx), NewReceivableRepository(tx))
	})
}

// RunStock inicia una transacción con los repos del ledger de estoque.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.StockProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStockProductRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunEquipment inicia una transacción con los repos de armamento.
func (r *TxRunner) RunEquipment(ctx context.Context, fn func(
	itemRepo repository.EquipmentRepository,
	movementRepo repository.EquipmentMovementRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewEquipmentRepository(tx), NewEquipmentMovementRepository(tx))
	})
}
