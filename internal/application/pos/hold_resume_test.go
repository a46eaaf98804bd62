package pos

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1ndvortex/jewely-sub003/internal/application/dto"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Hold
// ──────────────────────────────────────────────────────────────────────────────

func TestHoldSale_DoesNotTouchStock(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		Items:      []dto.SaleItemRequest{{ItemID: "item-ring", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusHeld, resp.Status)
	assert.Equal(t, int64(5), env.store.items["item-ring"].Quantity, "holding must not move stock")
	assert.Empty(t, env.store.movements)
	assert.Empty(t, env.store.salePayments[resp.ID], "payments are ignored on hold")

	// lines are persisted with the price snapshot taken at hold time
	lines := env.store.saleItems[resp.ID]
	require.Len(t, lines, 1)
	assert.True(t, dec("100.00").Equal(lines[0].UnitPrice))
}

func TestListHeldSales_ReproducesCarts(t *testing.T) {
	env := newTestEnv()

	first, err := env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		CustomerID: testCustomerID,
		Items: []dto.SaleItemRequest{
			{ItemID: "item-ring", Quantity: 2},
			{ItemID: "item-neck", Quantity: 1},
		},
	})
	require.NoError(t, err)
	_, err = env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		Items:      []dto.SaleItemRequest{{ItemID: "item-coin", Quantity: 1}},
	})
	require.NoError(t, err)

	held, err := env.uc.ListHeldSales(context.Background(), testTenantID, testTerminalID)
	require.NoError(t, err)
	require.Len(t, held, 2)

	var got *dto.SaleResponse
	for _, h := range held {
		if h.ID == first.ID {
			got = h
		}
	}
	require.NotNil(t, got, "the first held cart must be listed")
	assert.Equal(t, testCustomerID, got.CustomerID)
	require.Len(t, got.Items, 2)
	assert.True(t, first.Total.Equal(got.Total), "resumed cart must carry the exact held totals")
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestCompleteSale_UsesHeldPriceSnapshot(t *testing.T) {
	env := newTestEnv()

	held, err := env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		Items:      []dto.SaleItemRequest{{ItemID: "item-ring", Quantity: 2}},
	})
	require.NoError(t, err)

	// catalog price changes while the cart is parked
	env.store.items["item-ring"].SellingPrice = dec("150.00")

	resp, err := env.uc.CompleteSale(context.Background(), testTenantID, testCashierID, held.ID, dto.CompleteSaleRequest{
		PaymentMethod: entity.PaymentCard,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompleted, resp.Status)
	require.Len(t, resp.Items, 1)
	assert.True(t, dec("100.00").Equal(resp.Items[0].UnitPrice), "held snapshot survives catalog changes")
	assert.True(t, held.Total.Equal(resp.Total))
	assert.Equal(t, int64(3), env.store.items["item-ring"].Quantity, "completing decrements stock")
	require.Len(t, env.store.movements, 1)
	assert.Equal(t, entity.MovementTypeSale, env.store.movements[0].Type)
}

func TestCompleteSale_PaymentMustMatchHeldTotal(t *testing.T) {
	env := newTestEnv()

	held, err := env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		Items:      []dto.SaleItemRequest{{ItemID: "item-ring", Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = env.uc.CompleteSale(context.Background(), testTenantID, testCashierID, held.ID, dto.CompleteSaleRequest{
		Payments: []dto.PaymentRequest{{Method: entity.PaymentCash, Amount: dec("10.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrPaymentMismatch)
	assert.Equal(t, int64(5), env.store.items["item-ring"].Quantity)
}

func TestCompleteSale_InsufficientStockLeavesSaleHeld(t *testing.T) {
	env := newTestEnv()

	// Holding never checks stock, so a cart can be parked for more coins
	// than are on hand. The shortage surfaces at completion.
	held, err := env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		Items:      []dto.SaleItemRequest{{ItemID: "item-coin", Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = env.uc.CompleteSale(context.Background(), testTenantID, testCashierID, held.ID, dto.CompleteSaleRequest{
		PaymentMethod: entity.PaymentCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(1), env.store.items["item-coin"].Quantity)
	assert.Equal(t, entity.SaleStatusHeld, env.store.sales[held.ID].Status, "a failed completion keeps the sale held")
	assert.Empty(t, env.store.salePayments[held.ID])
}

func TestCompleteSale_OnlyHeldSales(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.CreateSale(context.Background(), testTenantID, testCashierID, "", cashSale(
		dto.SaleItemRequest{ItemID: "item-ring", Quantity: 1},
	))
	require.NoError(t, err)

	_, err = env.uc.CompleteSale(context.Background(), testTenantID, testCashierID, resp.ID, dto.CompleteSaleRequest{
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "a completed sale cannot be completed again")
}

func TestCompleteSale_TenantChecked(t *testing.T) {
	env := newTestEnv()

	held, err := env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		Items:      []dto.SaleItemRequest{{ItemID: "item-ring", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = env.uc.CompleteSale(context.Background(), testOtherTenantID, testCashierID, held.ID, dto.CompleteSaleRequest{
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Void
// ──────────────────────────────────────────────────────────────────────────────

func TestVoidSale_HeldIsStatusFlip(t *testing.T) {
	env := newTestEnv()

	held, err := env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		Items:      []dto.SaleItemRequest{{ItemID: "item-ring", Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.VoidSale(context.Background(), testTenantID, testCashierID, held.ID))
	assert.Equal(t, entity.SaleStatusVoided, env.store.sales[held.ID].Status)
	assert.Equal(t, int64(5), env.store.items["item-ring"].Quantity, "voiding a held sale never touches stock")
	assert.Empty(t, env.store.movements)
}

func TestVoidSale_CompletedRestoresStock(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.CreateSale(context.Background(), testTenantID, testCashierID, "", cashSale(
		dto.SaleItemRequest{ItemID: "item-ring", Quantity: 3},
	))
	require.NoError(t, err)
	require.Equal(t, int64(2), env.store.items["item-ring"].Quantity)

	require.NoError(t, env.uc.VoidSale(context.Background(), testTenantID, testCashierID, resp.ID))

	assert.Equal(t, entity.SaleStatusVoided, env.store.sales[resp.ID].Status)
	assert.Equal(t, int64(5), env.store.items["item-ring"].Quantity, "void must put the sold pieces back")

	var restock int
	for _, mov := range env.store.movements {
		if mov.Type == entity.MovementTypeVoidRestock {
			restock++
			assert.Equal(t, int64(3), mov.Quantity)
			assert.Equal(t, resp.ID, mov.ReferenceID)
		}
	}
	assert.Equal(t, 1, restock, "exactly one restock movement per voided line")
}

// ──────────────────────────────────────────────────────────────────────────────
// Status-transition races. The barrier runner lets every caller pass the
// pre-transaction status read before any transaction runs, the worst-case
// interleaving for a double complete or double void.
// ──────────────────────────────────────────────────────────────────────────────

func gatedUseCase(env *testEnv, gate *sync.WaitGroup) *CreateSaleUseCase {
	return NewCreateSaleUseCase(
		&gateTxRunner{inner: &memTxRunner{store: env.store}, gate: gate},
		&memItemRepo{store: env.store},
		&memTerminalRepo{store: env.store},
		&memCustomerRepo{store: env.store},
		&memSaleRepo{store: env.store},
		nil,
	)
}

func TestCompleteSale_ConcurrentCompletionsExactlyOnce(t *testing.T) {
	env := newTestEnv()

	held, err := env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		Items:      []dto.SaleItemRequest{{ItemID: "item-ring", Quantity: 2}},
	})
	require.NoError(t, err)

	gate := &sync.WaitGroup{}
	gate.Add(2)
	uc := gatedUseCase(env, gate)

	var okCount, conflictCount int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CompleteSale(context.Background(), testTenantID, testCashierID, held.ID, dto.CompleteSaleRequest{
				PaymentMethod: entity.PaymentCash,
			})
			switch {
			case err == nil:
				atomic.AddInt32(&okCount, 1)
			case errors.Is(err, domain.ErrConflict):
				atomic.AddInt32(&conflictCount, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), okCount, "exactly one completion may win")
	assert.Equal(t, int32(1), conflictCount, "the loser must get a conflict")
	assert.Equal(t, entity.SaleStatusCompleted, env.store.sales[held.ID].Status)
	assert.Equal(t, int64(3), env.store.items["item-ring"].Quantity, "stock must drop once, 5 -> 3")
	assert.Len(t, env.store.salePayments[held.ID], 1, "the customer is charged a single tender")
	assert.Len(t, env.store.movements, 1)
}

func TestVoidSale_ConcurrentVoidsRestockOnce(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.CreateSale(context.Background(), testTenantID, testCashierID, "", cashSale(
		dto.SaleItemRequest{ItemID: "item-ring", Quantity: 3},
	))
	require.NoError(t, err)
	require.Equal(t, int64(2), env.store.items["item-ring"].Quantity)

	gate := &sync.WaitGroup{}
	gate.Add(2)
	uc := gatedUseCase(env, gate)

	var okCount, conflictCount int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := uc.VoidSale(context.Background(), testTenantID, testCashierID, resp.ID)
			switch {
			case err == nil:
				atomic.AddInt32(&okCount, 1)
			case errors.Is(err, domain.ErrConflict):
				atomic.AddInt32(&conflictCount, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), okCount, "a completed sale must void exactly once")
	assert.Equal(t, int32(1), conflictCount)
	assert.Equal(t, int64(5), env.store.items["item-ring"].Quantity, "restocked once, never twice")

	var restock int
	for _, mov := range env.store.movements {
		if mov.Type == entity.MovementTypeVoidRestock && mov.ReferenceID == resp.ID {
			restock++
		}
	}
	assert.Equal(t, 1, restock)
}

func TestVoidSale_AlreadyVoidedRejected(t *testing.T) {
	env := newTestEnv()

	held, err := env.uc.HoldSale(context.Background(), testTenantID, testCashierID, dto.CreateSaleRequest{
		TerminalID: testTerminalID,
		Items:      []dto.SaleItemRequest{{ItemID: "item-ring", Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.VoidSale(context.Background(), testTenantID, testCashierID, held.ID))
	err = env.uc.VoidSale(context.Background(), testTenantID, testCashierID, held.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
