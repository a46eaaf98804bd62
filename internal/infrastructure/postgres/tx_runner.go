package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m1ndvortex/jewely-sub003/internal/application/inventory"
	"github.com/m1ndvortex/jewely-sub003/internal/application/pos"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// Ensure TxRunner implements the application ports.
var _ pos.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to that tx
// and commits, or rolls back when fn (or the commit) errors. Row locks
// taken inside fn (SELECT ... FOR UPDATE) are released on transaction end.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewInventoryItemRepository(tx)
	saleRepo := NewSaleRepository(tx)
	movRepo := NewStockMovementRepository(tx)

	if err := fn(itemRepo, saleRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
