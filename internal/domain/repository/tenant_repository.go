package repository

import (
	"context"

	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
)

// TenantRepository is the persistence port for tenants (shops).
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
}
