package pos

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory store shared by the fake repositories. A single mutex plays the
// role of the database: repositories take it per call, while the fake
// TxRunner holds it for the whole callback so transactions serialize exactly
// like row locks do, and restores a snapshot on error (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu           sync.Mutex
	items        map[string]*entity.InventoryItem
	terminals    map[string]*entity.Terminal
	customers    map[string]*entity.Customer
	sales        map[string]*entity.Sale
	saleItems    map[string][]*entity.SaleItem
	salePayments map[string][]*entity.SalePayment
	movements    []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		items:        make(map[string]*entity.InventoryItem),
		terminals:    make(map[string]*entity.Terminal),
		customers:    make(map[string]*entity.Customer),
		sales:        make(map[string]*entity.Sale),
		saleItems:    make(map[string][]*entity.SaleItem),
		salePayments: make(map[string][]*entity.SalePayment),
	}
}

type memSnapshot struct {
	items        map[string]*entity.InventoryItem
	sales        map[string]*entity.Sale
	saleItems    map[string][]*entity.SaleItem
	salePayments map[string][]*entity.SalePayment
	movements    []*entity.StockMovement
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		items:        make(map[string]*entity.InventoryItem, len(s.items)),
		sales:        make(map[string]*entity.Sale, len(s.sales)),
		saleItems:    make(map[string][]*entity.SaleItem, len(s.saleItems)),
		salePayments: make(map[string][]*entity.SalePayment, len(s.salePayments)),
		movements:    append([]*entity.StockMovement(nil), s.movements...),
	}
	for id, it := range s.items {
		c := *it
		snap.items[id] = &c
	}
	for id, sale := range s.sales {
		c := *sale
		snap.sales[id] = &c
	}
	for id, lines := range s.saleItems {
		snap.saleItems[id] = append([]*entity.SaleItem(nil), lines...)
	}
	for id, pays := range s.salePayments {
		snap.salePayments[id] = append([]*entity.SalePayment(nil), pays...)
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.items = snap.items
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.salePayments = snap.salePayments
	s.movements = snap.movements
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	err := fn(
		&memItemRepo{store: r.store, inTx: true},
		&memSaleRepo{store: r.store, inTx: true},
		&memMovementRepo{store: r.store, inTx: true},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// gateTxRunner parks every caller at a barrier before the transaction runs,
// so N racing calls all finish their pre-transaction reads first.
type gateTxRunner struct {
	inner *memTxRunner
	gate  *sync.WaitGroup
}

func (r *gateTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.gate.Done()
	r.gate.Wait()
	return r.inner.Run(ctx, fn)
}

// flakyTxRunner fails the first n transactions before delegating, standing in
// for a connection dropped mid-commit.
type flakyTxRunner struct {
	inner    *memTxRunner
	failures int
}

func (r *flakyTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if r.failures > 0 {
		r.failures--
		return errTxDropped
	}
	return r.inner.Run(ctx, fn)
}

var errTxDropped = errors.New("connection reset by peer")

// ── Inventory items ───────────────────────────────────────────────────────────

type memItemRepo struct {
	store *memStore
	inTx  bool
}

func (r *memItemRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	defer r.lock()()
	c := *item
	r.store.items[item.ID] = &c
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	defer r.lock()()
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	c := *it
	return &c, nil
}

func (r *memItemRepo) GetByTenantAndSKU(_ context.Context, tenantID, sku string) (*entity.InventoryItem, error) {
	defer r.lock()()
	for _, it := range r.store.items {
		if it.TenantID == tenantID && it.SKU == sku {
			c := *it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	defer r.lock()()
	c := *item
	r.store.items[item.ID] = &c
	return nil
}

func (r *memItemRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	defer r.lock()()
	if it, ok := r.store.items[id]; ok {
		it.CostPrice = cost
	}
	return nil
}

func (r *memItemRepo) List(_ context.Context, tenantID string, _, _ int) ([]*entity.InventoryItem, error) {
	defer r.lock()()
	var out []*entity.InventoryItem
	for _, it := range r.store.items {
		if it.TenantID == tenantID {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memItemRepo) ListLowStock(_ context.Context, tenantID string) ([]*entity.InventoryItem, error) {
	defer r.lock()()
	var out []*entity.InventoryItem
	for _, it := range r.store.items {
		if it.TenantID == tenantID && it.Quantity <= it.MinQuantity {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *memItemRepo) SetQuantity(_ context.Context, id string, quantity int64) error {
	defer r.lock()()
	if it, ok := r.store.items[id]; ok {
		it.Quantity = quantity
	}
	return nil
}

// ── Sales ─────────────────────────────────────────────────────────────────────

type memSaleRepo struct {
	store *memStore
	inTx  bool
}

func (r *memSaleRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.lock()()
	c := *sale
	r.store.sales[sale.ID] = &c
	return nil
}

func (r *memSaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	defer r.lock()()
	c := *item
	r.store.saleItems[item.SaleID] = append(r.store.saleItems[item.SaleID], &c)
	return nil
}

func (r *memSaleRepo) CreatePayment(_ context.Context, payment *entity.SalePayment) error {
	defer r.lock()()
	c := *payment
	r.store.salePayments[payment.SaleID] = append(r.store.salePayments[payment.SaleID], &c)
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.lock()()
	sale, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	c := *sale
	return &c, nil
}

func (r *memSaleRepo) GetItemsBySaleID(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	defer r.lock()()
	var out []*entity.SaleItem
	for _, it := range r.store.saleItems[saleID] {
		c := *it
		out = append(out, &c)
	}
	return out, nil
}

func (r *memSaleRepo) GetPaymentsBySaleID(_ context.Context, saleID string) ([]*entity.SalePayment, error) {
	defer r.lock()()
	var out []*entity.SalePayment
	for _, p := range r.store.salePayments[saleID] {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *memSaleRepo) ListHeldByTerminal(_ context.Context, tenantID, terminalID string) ([]*entity.Sale, error) {
	defer r.lock()()
	var out []*entity.Sale
	for _, sale := range r.store.sales {
		if sale.TenantID == tenantID && sale.TerminalID == terminalID && sale.Status == entity.SaleStatusHeld {
			c := *sale
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memSaleRepo) UpdateStatus(_ context.Context, id, from, to string) error {
	defer r.lock()()
	sale, ok := r.store.sales[id]
	if !ok || sale.Status != from {
		return domain.ErrConflict
	}
	sale.Status = to
	return nil
}

func (r *memSaleRepo) UpdateTotals(_ context.Context, sale *entity.Sale) error {
	defer r.lock()()
	if existing, ok := r.store.sales[sale.ID]; ok {
		existing.Subtotal = sale.Subtotal
		existing.Discount = sale.Discount
		existing.Tax = sale.Tax
		existing.Total = sale.Total
	}
	return nil
}

// ── Stock movements ───────────────────────────────────────────────────────────

type memMovementRepo struct {
	store *memStore
	inTx  bool
}

func (r *memMovementRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memMovementRepo) Create(_ context.Context, mov *entity.StockMovement) error {
	defer r.lock()()
	c := *mov
	r.store.movements = append(r.store.movements, &c)
	return nil
}

func (r *memMovementRepo) ListByItem(_ context.Context, tenantID, itemID string, _, _ int) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.TenantID == tenantID && m.ItemID == itemID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Terminals and customers ───────────────────────────────────────────────────

type memTerminalRepo struct {
	store *memStore
}

func (r *memTerminalRepo) Create(_ context.Context, terminal *entity.Terminal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *terminal
	r.store.terminals[terminal.ID] = &c
	return nil
}

func (r *memTerminalRepo) GetByID(_ context.Context, id string) (*entity.Terminal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.terminals[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (r *memTerminalRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Terminal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Terminal
	for _, t := range r.store.terminals {
		if t.TenantID == tenantID {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memTerminalRepo) Update(_ context.Context, terminal *entity.Terminal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *terminal
	r.store.terminals[terminal.ID] = &c
	return nil
}

type memCustomerRepo struct {
	store *memStore
}

func (r *memCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *customer
	r.store.customers[customer.ID] = &c
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cu, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	c := *cu
	return &c, nil
}

func (r *memCustomerRepo) List(_ context.Context, tenantID string, _, _ int) ([]*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Customer
	for _, cu := range r.store.customers {
		if cu.TenantID == tenantID {
			c := *cu
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *customer
	r.store.customers[customer.ID] = &c
	return nil
}

// ── Idempotency ───────────────────────────────────────────────────────────────

type memIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{keys: make(map[string]bool)}
}

func (s *memIdempotencyStore) Reserve(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *memIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

// saleTotalPaid cross-checks payment invariants in assertions.
func saleTotalPaid(payments []*entity.SalePayment) decimal.Decimal {
	var sum decimal.Decimal
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}
