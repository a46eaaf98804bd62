package repository

import (
	"context"

	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
)

// BranchRepository is the persistence port for store branches.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Branch, error)
}
