package repository

import (
	"context"

	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
)

// SaleRepository is the persistence port for sales, their lines and payments.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	CreatePayment(ctx context.Context, payment *entity.SalePayment) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	GetPaymentsBySaleID(ctx context.Context, saleID string) ([]*entity.SalePayment, error)
	ListHeldByTerminal(ctx context.Context, tenantID, terminalID string) ([]*entity.Sale, error)
	// UpdateStatus transitions from -> to and fails with ErrConflict when the
	// sale is no longer in the from status, so racing transitions cannot both
	// apply.
	UpdateStatus(ctx context.Context, id, from, to string) error
	UpdateTotals(ctx context.Context, sale *entity.Sale) error
}
