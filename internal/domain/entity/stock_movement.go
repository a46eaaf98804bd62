package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement types.
const (
	MovementTypeSale        = "SALE"         // decrement from a committed sale
	MovementTypeReceive     = "RECEIVE"      // goods received, increment
	MovementTypeAdjust      = "ADJUSTMENT"   // manual correction
	MovementTypeVoidRestock = "VOID_RESTOCK" // increment from voiding a completed sale
)

// StockMovement is the audit trail row written alongside every quantity
// mutation. ReferenceID points at the sale (or adjustment) that caused it.
type StockMovement struct {
	ID          string
	TenantID    string
	ItemID      string
	ReferenceID string
	Type        string
	Quantity    int64 // positive on increments, negative on decrements
	UnitCost    decimal.Decimal
	CreatedAt   time.Time
	CreatedBy   string
}
