package inventory

import (
	"context"

	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction with repositories
// bound to that transaction. Receiving stock locks the item row and must
// commit the quantity, cost and movement together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
