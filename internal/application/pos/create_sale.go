package pos

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/m1ndvortex/jewely-sub003/internal/application/dto"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// CreateSaleUseCase commits POS sales: one DB transaction that locks the
// referenced inventory rows, re-checks quantities, decrements stock and
// persists the sale with its lines and payments.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.InventoryItemRepository
	terminalRepo repository.TerminalRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	idempotency  IdempotencyStore // nil disables deduplication
}

// NewCreateSaleUseCase builds the use case. idempotency may be nil.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	itemRepo repository.InventoryItemRepository,
	terminalRepo repository.TerminalRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	idempotency IdempotencyStore,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		terminalRepo: terminalRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		idempotency:  idempotency,
	}
}

// saleLine is a priced cart line: the catalog item plus the quantity and
// the unit-price snapshot the sale will carry.
type saleLine struct {
	item      *entity.InventoryItem
	quantity  int64
	unitPrice decimal.Decimal
}

// CreateSale validates the cart, then commits it atomically. Inventory rows
// are locked in ascending item-ID order so concurrent sales sharing items
// cannot deadlock; quantities are re-checked under the lock.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, tenantID, userID, idempotencyKey string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
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
	payments, err := normalizePayments(in.Payments, in.PaymentMethod, total)
	if err != nil {
		return nil, err
	}

	var reservedKey string
	if uc.idempotency != nil && idempotencyKey != "" {
		reservedKey = fmt.Sprintf("pos:sale:%s:%s:%s", tenantID, terminal.ID, idempotencyKey)
		ok, err := uc.idempotency.Reserve(ctx, reservedKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency check: %w", err)
		}
		if !ok {
			return nil, domain.ErrDuplicateRequest
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		BranchID:   terminal.BranchID,
		TerminalID: terminal.ID,
		CustomerID: in.CustomerID,
		CashierID:  userID,
		Status:     entity.SaleStatusCompleted,
		Subtotal:   subtotal,
		Discount:   in.Discount,
		Tax:        tax,
		Total:      total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	saleItems := buildSaleItems(sale.ID, lines)
	salePayments := buildSalePayments(sale.ID, payments)

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if err := commitStock(ctx, itemRepo, movRepo, tenantID, userID, sale.ID, lines, now); err != nil {
			return err
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, it := range saleItems {
			if err := saleRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		for _, p := range salePayments {
			if err := saleRepo.CreatePayment(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// the rollback persisted nothing, so the key must not block a retry
		if reservedKey != "" {
			_ = uc.idempotency.Release(ctx, reservedKey)
		}
		return nil, err
	}

	return toSaleResponse(sale, saleItems, salePayments), nil
}

// commitStock locks each referenced inventory row (SELECT ... FOR UPDATE)
// in ascending item-ID order, re-checks on-hand quantity against the
// request and decrements. Returning an error rolls the whole sale back.
func commitStock(
	ctx context.Context,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	tenantID, userID, saleID string,
	lines []saleLine,
	now time.Time,
) error {
	// lines are already sorted by item ID; the sort is the deadlock guard,
	// keep it even if callers change.
	sorted := make([]saleLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].item.ID < sorted[j].item.ID })

	for _, line := range sorted {
		locked, err := itemRepo.GetForUpdate(ctx, line.item.ID)
		if err != nil {
			return err
		}
		if locked == nil || locked.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if locked.Quantity < line.quantity {
			return &domain.InsufficientStockError{
				ItemID:    locked.ID,
				SKU:       locked.SKU,
				Requested: line.quantity,
				Available: locked.Quantity,
			}
		}
		if err := itemRepo.SetQuantity(ctx, locked.ID, locked.Quantity-line.quantity); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			ItemID:      locked.ID,
			ReferenceID: saleID,
			Type:        entity.MovementTypeSale,
			Quantity:    -line.quantity,
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

// resolveTerminal loads the terminal and checks it belongs to the tenant
// and is active.
func (uc *CreateSaleUseCase) resolveTerminal(ctx context.Context, tenantID, terminalID string) (*entity.Terminal, error) {
	if terminalID == "" {
		return nil, domain.ErrInvalidTerminal
	}
	terminal, err := uc.terminalRepo.GetByID(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if terminal == nil || terminal.TenantID != tenantID || !terminal.IsActive {
		return nil, domain.ErrInvalidTerminal
	}
	return terminal, nil
}

func (uc *CreateSaleUseCase) checkCustomer(ctx context.Context, tenantID, customerID string) error {
	if customerID == "" {
		return nil // walk-in
	}
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if customer.TenantID != tenantID {
		return domain.ErrForbidden
	}
	return nil
}

// priceLines validates the cart, merges duplicate item references and takes
// the unit-price snapshot (override or catalog selling price). Returns
// lines sorted by item ID.
func (uc *CreateSaleUseCase) priceLines(ctx context.Context, tenantID string, items []dto.SaleItemRequest) ([]saleLine, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	type rawLine struct {
		quantity int64
		override decimal.Decimal
	}
	merged := make(map[string]*rawLine)
	for _, req := range items {
		if req.ItemID == "" || req.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if req.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if existing, ok := merged[req.ItemID]; ok {
			// same item twice with conflicting price overrides is ambiguous
			if !req.UnitPrice.IsZero() && !existing.override.IsZero() && !req.UnitPrice.Equal(existing.override) {
				return nil, domain.ErrInvalidInput
			}
			existing.quantity += req.Quantity
			if existing.override.IsZero() {
				existing.override = req.UnitPrice
			}
			continue
		}
		merged[req.ItemID] = &rawLine{quantity: req.Quantity, override: req.UnitPrice}
	}

	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]saleLine, 0, len(ids))
	for _, id := range ids {
		raw := merged[id]
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
		price := raw.override
		if price.IsZero() {
			price = item.SellingPrice
		}
		lines = append(lines, saleLine{item: item, quantity: raw.quantity, unitPrice: price})
	}
	return lines, nil
}

// computeTotals derives subtotal, tax and total. Tax is per line at the
// item's snapshot rate; total = subtotal - discount + tax.
func computeTotals(lines []saleLine, discount decimal.Decimal) (subtotal, tax, total decimal.Decimal, err error) {
	if discount.LessThan(decimal.Zero) {
		return decimal.Zero, decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	for _, line := range lines {
		lineSubtotal := decimal.NewFromInt(line.quantity).Mul(line.unitPrice)
		subtotal = subtotal.Add(lineSubtotal)
		tax = tax.Add(lineSubtotal.Mul(line.item.TaxRate))
	}
	if discount.GreaterThan(subtotal) {
		return decimal.Zero, decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	total = subtotal.Sub(discount).Add(tax)
	return subtotal, tax, total, nil
}

// normalizePayments expands the single payment_method shorthand and checks
// the breakdown sums exactly to the total.
func normalizePayments(payments []dto.PaymentRequest, method string, total decimal.Decimal) ([]dto.PaymentRequest, error) {
	if len(payments) == 0 {
		if method == "" {
			return nil, domain.ErrInvalidInput
		}
		payments = []dto.PaymentRequest{{Method: method, Amount: total}}
	}
	var paid decimal.Decimal
	for _, p := range payments {
		if !validPaymentMethod(p.Method) || !p.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		paid = paid.Add(p.Amount)
	}
	if !paid.Equal(total) {
		return nil, domain.ErrPaymentMismatch
	}
	return payments, nil
}

func validPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentBankTransfer, entity.PaymentStoreCredit:
		return true
	}
	return false
}

func buildSaleItems(saleID string, lines []saleLine) []*entity.SaleItem {
	out := make([]*entity.SaleItem, 0, len(lines))
	for _, line := range lines {
		out = append(out, &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			ItemID:    line.item.ID,
			SKU:       line.item.SKU,
			Name:      line.item.Name,
			Quantity:  line.quantity,
			UnitPrice: line.unitPrice,
			TaxRate:   line.item.TaxRate,
			Subtotal:  decimal.NewFromInt(line.quantity).Mul(line.unitPrice),
		})
	}
	return out
}

func buildSalePayments(saleID string, payments []dto.PaymentRequest) []*entity.SalePayment {
	out := make([]*entity.SalePayment, 0, len(payments))
	for _, p := range payments {
		out = append(out, &entity.SalePayment{
			ID:     uuid.New().String(),
			SaleID: saleID,
			Method: p.Method,
			Amount: p.Amount,
		})
	}
	return out
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem, payments []*entity.SalePayment) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         sale.ID,
		TenantID:   sale.TenantID,
		BranchID:   sale.BranchID,
		TerminalID: sale.TerminalID,
		CustomerID: sale.CustomerID,
		CashierID:  sale.CashierID,
		Status:     sale.Status,
		Subtotal:   sale.Subtotal,
		Discount:   sale.Discount,
		Tax:        sale.Tax,
		Total:      sale.Total,
		CreatedAt:  sale.CreatedAt.Format(time.RFC3339),
		Items:      make([]dto.SaleItemResponse, 0, len(items)),
		Payments:   make([]dto.PaymentResponse, 0, len(payments)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			SKU:       it.SKU,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
			Subtotal:  it.Subtotal,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{ID: p.ID, Method: p.Method, Amount: p.Amount})
	}
	return resp
}

// GetSale returns a sale with lines and payments, tenant-checked.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, tenantID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.saleRepo.GetItemsBySaleID(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.saleRepo.GetPaymentsBySaleID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items, payments), nil
}
