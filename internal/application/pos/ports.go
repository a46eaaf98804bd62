package pos

import (
	"context"

	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, handing it
// repositories bound to that transaction. Guarantees the all-or-nothing
// semantics of a sale commit: either every decrement and every sale row
// lands, or none do.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// IdempotencyStore dedupes terminal retries of the same sale submission.
// Reserve returns false when the key was already claimed. Release frees a
// reserved key again; a sale that rolled back left no state behind, so the
// same key must be allowed to retry.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
