package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/m1ndvortex/jewely-sub003/internal/application/dto"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
	domaininv "github.com/m1ndvortex/jewely-sub003/internal/domain/inventory"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// UseCase covers catalog maintenance and stock receiving for jewelry items.
type UseCase struct {
	txRunner   TxRunner
	itemRepo   repository.InventoryItemRepository
	branchRepo repository.BranchRepository
	movRepo    repository.StockMovementRepository
}

// NewUseCase builds the inventory use case.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.InventoryItemRepository,
	branchRepo repository.BranchRepository,
	movRepo repository.StockMovementRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, branchRepo: branchRepo, movRepo: movRepo}
}

// CreateItem adds an item to the tenant's catalog with quantity 0; stock
// arrives through ReceiveStock.
func (uc *UseCase) CreateItem(ctx context.Context, tenantID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SellingPrice.LessThan(decimal.Zero) || in.TaxRate.LessThan(decimal.Zero) || in.MinQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.branchRepo.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.itemRepo.GetByTenantAndSKU(ctx, tenantID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		BranchID:     in.BranchID,
		SKU:          in.SKU,
		Name:         in.Name,
		Category:     in.Category,
		Karat:        in.Karat,
		WeightGrams:  in.WeightGrams,
		Quantity:     0,
		MinQuantity:  in.MinQuantity,
		CostPrice:    decimal.Zero,
		SellingPrice: in.SellingPrice,
		TaxRate:      in.TaxRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem returns a catalog item, tenant-checked.
func (uc *UseCase) GetItem(ctx context.Context, tenantID, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return toItemResponse(item), nil
}

// ListItems pages through the tenant's catalog.
func (uc *UseCase) ListItems(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.ItemResponse, error) {
	page.DefaultPage()
	items, err := uc.itemRepo.List(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

// UpdateItem edits catalog fields. Quantity and cost are never edited here;
// they move only through sales, voids and receiving.
func (uc *UseCase) UpdateItem(ctx context.Context, tenantID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		item.Name = in.Name
	}
	if in.Category != "" {
		item.Category = in.Category
	}
	if in.Karat != 0 {
		item.Karat = in.Karat
	}
	if !in.WeightGrams.IsZero() {
		item.WeightGrams = in.WeightGrams
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinQuantity = *in.MinQuantity
	}
	if !in.SellingPrice.IsZero() {
		if in.SellingPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.SellingPrice = in.SellingPrice
	}
	if !in.TaxRate.IsZero() {
		if in.TaxRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.TaxRate = in.TaxRate
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ReceiveStock books received goods: locks the item row, increments the
// quantity, recomputes the weighted-average cost and writes a RECEIVE
// movement, all in one transaction.
func (uc *UseCase) ReceiveStock(ctx context.Context, tenantID, userID, itemID string, in dto.ReceiveStockRequest) (*dto.ItemResponse, error) {
	if in.Quantity <= 0 || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var updated *entity.InventoryItem
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		locked, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		newCost := domaininv.WeightedAverageCost(
			decimal.NewFromInt(locked.Quantity), locked.CostPrice,
			decimal.NewFromInt(in.Quantity), in.UnitCost,
		)
		if err := itemRepo.SetQuantity(ctx, locked.ID, locked.Quantity+in.Quantity); err != nil {
			return err
		}
		if err := itemRepo.UpdateCost(ctx, locked.ID, newCost); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			ItemID:      locked.ID,
			ReferenceID: uuid.New().String(),
			Type:        entity.MovementTypeReceive,
			Quantity:    in.Quantity,
			UnitCost:    in.UnitCost,
			CreatedAt:   now,
			CreatedBy:   userID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		locked.Quantity += in.Quantity
		locked.CostPrice = newCost
		locked.UpdatedAt = now
		updated = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

// ListLowStock returns items at or below their minimum quantity.
func (uc *UseCase) ListLowStock(ctx context.Context, tenantID string) ([]*dto.ItemResponse, error) {
	items, err := uc.itemRepo.ListLowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

// ListMovements returns the stock audit trail for an item.
func (uc *UseCase) ListMovements(ctx context.Context, tenantID, itemID string, page dto.PageRequest) ([]*entity.StockMovement, error) {
	page.DefaultPage()
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return uc.movRepo.ListByItem(ctx, tenantID, itemID, page.Limit, page.Offset)
}

func toItemResponse(item *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           item.ID,
		TenantID:     item.TenantID,
		BranchID:     item.BranchID,
		SKU:          item.SKU,
		Name:         item.Name,
		Category:     item.Category,
		Karat:        item.Karat,
		WeightGrams:  item.WeightGrams,
		Quantity:     item.Quantity,
		MinQuantity:  item.MinQuantity,
		CostPrice:    item.CostPrice,
		SellingPrice: item.SellingPrice,
		TaxRate:      item.TaxRate,
		LowStock:     item.IsLowStock(),
	}
}
