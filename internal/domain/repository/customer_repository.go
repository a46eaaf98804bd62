package repository

import (
	"context"

	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
)

// CustomerRepository is the persistence port for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
}
