package pos

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/m1ndvortex/jewely-sub003/internal/application/dto"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// HoldSale parks a cart at the terminal: the sale and its lines are
// persisted with status "held" and price snapshots taken now, but stock is
// not touched. Payments in the request are ignored.
func (uc *CreateSaleUseCase) HoldSale(ctx context.Context, tenantID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	terminal, err := uc.resolveTerminal(ctx, tenantID, in.TerminalID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkCustomer(ctx, tenantID, in.CustomerID); err != nil {
		return nil, err
	}
	lines, err := uc.priceLines(ctx, tenantID, in.Items)
	if err != nil {
		return nil, err
	}
	subtotal, tax, total, err := computeTotals(lines, in.Discount)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		BranchID:   terminal.BranchID,
		TerminalID: terminal.ID,
		CustomerID: in.CustomerID,
		CashierID:  userID,
		Status:     entity.SaleStatusHeld,
		Subtotal:   subtotal,
		Discount:   in.Discount,
		Tax:        tax,
		Total:      total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	saleItems := buildSaleItems(sale.ID, lines)

	err = uc.txRunner.Run(ctx, func(
		_ repository.InventoryItemRepository,
		saleRepo repository.SaleRepository,
		_ repository.StockMovementRepository,
	) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, it := range saleItems {
			if err := saleRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, saleItems, nil), nil
}

// CompleteSale commits a held sale: same locking transaction as CreateSale
// but using the held lines, so the cashier's price snapshots survive any
// catalog changes made while the cart was parked.
func (uc *CreateSaleUseCase) CompleteSale(ctx context.Context, tenantID, userID, saleID string, in dto.CompleteSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	if sale.Status != entity.SaleStatusHeld {
		return nil, domain.ErrConflict
	}
	saleItems, err := uc.saleRepo.GetItemsBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if len(saleItems) == 0 {
		return nil, domain.ErrConflict
	}
	payments, err := normalizePayments(in.Payments, in.PaymentMethod, sale.Total)
	if err != nil {
		return nil, err
	}
	salePayments := buildSalePayments(sale.ID, payments)

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// the conditional flip comes first: a concurrent completion of the
		// same sale loses here and rolls back before touching stock
		if err := saleRepo.UpdateStatus(ctx, sale.ID, entity.SaleStatusHeld, entity.SaleStatusCompleted); err != nil {
			return err
		}
		if err := commitHeldStock(ctx, itemRepo, movRepo, tenantID, userID, sale.ID, saleItems, now); err != nil {
			return err
		}
		for _, p := range salePayments {
			if err := saleRepo.CreatePayment(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sale.Status = entity.SaleStatusCompleted
	sale.UpdatedAt = now
	return toSaleResponse(sale, saleItems, salePayments), nil
}

// commitHeldStock is commitStock over persisted sale lines instead of
// freshly priced ones. Same sorted lock order, same re-check.
func commitHeldStock(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	tenantID, userID, saleID string,
	saleItems []*entity.SaleItem,
	now time.Time,
) error {
	sorted := make([]*entity.SaleItem, len(saleItems))
	copy(sorted, saleItems)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ItemID < sorted[j].ItemID })

	for _, line := range sorted {
		locked, err := itemRepo.GetForUpdate(ctx, line.ItemID)
		if err != nil {
			return err
		}
		if locked == nil || locked.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if locked.Quantity < line.Quantity {
			return &domain.InsufficientStockError{
				ItemID:    locked.ID,
				SKU:       locked.SKU,
				Requested: line.Quantity,
				Available: locked.Quantity,
			}
		}
		if err := itemRepo.SetQuantity(ctx, locked.ID, locked.Quantity-line.Quantity); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			ItemID:      locked.ID,
			ReferenceID: saleID,
			Type:        entity.MovementTypeSale,
			Quantity:    -line.Quantity,
			UnitCost:    locked.CostPrice,
			CreatedAt:   now,
			CreatedBy:   userID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}

// VoidSale voids a sale. A held sale is a plain status flip; a completed
// sale also restores the sold quantities (VOID_RESTOCK movements) in the
// same transaction.
func (uc *CreateSaleUseCase) VoidSale(ctx context.Context, tenantID, userID, saleID string) error {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.TenantID != tenantID {
		return domain.ErrForbidden
	}
	switch sale.Status {
	case entity.SaleStatusHeld:
		return uc.saleRepo.UpdateStatus(ctx, sale.ID, entity.SaleStatusHeld, entity.SaleStatusVoided)
	case entity.SaleStatusCompleted:
		// fall through to restock below
	default:
		return domain.ErrConflict
	}

	saleItems, err := uc.saleRepo.GetItemsBySaleID(ctx, saleID)
	if err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// flip first so a concurrent void cannot restock the same sale twice
		if err := saleRepo.UpdateStatus(ctx, sale.ID, entity.SaleStatusCompleted, entity.SaleStatusVoided); err != nil {
			return err
		}
		sorted := make([]*entity.SaleItem, len(saleItems))
		copy(sorted, saleItems)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ItemID < sorted[j].ItemID })

		for _, line := range sorted {
			locked, err := itemRepo.GetForUpdate(ctx, line.ItemID)
			if err != nil {
				return err
			}
			if locked == nil {
				// item deleted since the sale; nothing to restore to
				continue
			}
			if err := itemRepo.SetQuantity(ctx, locked.ID, locked.Quantity+line.Quantity); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ID:          uuid.New().String(),
				TenantID:    tenantID,
				ItemID:      locked.ID,
				ReferenceID: sale.ID,
				Type:        entity.MovementTypeVoidRestock,
				Quantity:    line.Quantity,
				UnitCost:    locked.CostPrice,
				CreatedAt:   now,
				CreatedBy:   userID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListHeldSales returns the held sales for a terminal with their lines, so
// a cashier can resume any parked cart exactly as it was.
func (uc *CreateSaleUseCase) ListHeldSales(ctx context.Context, tenantID, terminalID string) ([]*dto.SaleResponse, error) {
	terminal, err := uc.resolveTerminal(ctx, tenantID, terminalID)
	if err != nil {
		return nil, err
	}
	sales, err := uc.saleRepo.ListHeldByTerminal(ctx, tenantID, terminal.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		items, err := uc.saleRepo.GetItemsBySaleID(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toSaleResponse(sale, items, nil))
	}
	return out, nil
}
