package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
)

// InventoryItemRepository is the persistence port for jewelry items.
// GetForUpdate acquires a row-level lock (SELECT ... FOR UPDATE) and is only
// meaningful when the repository is bound to a transaction.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetByTenantAndSKU(ctx context.Context, tenantID, sku string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.InventoryItem, error)
	ListLowStock(ctx context.Context, tenantID string) ([]*entity.InventoryItem, error)

	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	SetQuantity(ctx context.Context, id string, quantity int64) error
}
