package repository

import (
	"context"

	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
)

// TerminalRepository is the persistence port for POS terminals.
type TerminalRepository interface {
	Create(ctx context.Context, terminal *entity.Terminal) error
	GetByID(ctx context.Context, id string) (*entity.Terminal, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Terminal, error)
	Update(ctx context.Context, terminal *entity.Terminal) error
}
