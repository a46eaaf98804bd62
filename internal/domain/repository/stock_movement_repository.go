package repository

import (
	"context"

	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
)

// StockMovementRepository persists the audit trail of quantity mutations.
type StockMovementRepository interface {
	Create(ctx context.Context, mov *entity.StockMovement) error
	ListByItem(ctx context.Context, tenantID, itemID string, limit, offset int) ([]*entity.StockMovement, error)
}
