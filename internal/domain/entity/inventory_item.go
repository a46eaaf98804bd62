package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a piece (or lot of identical pieces) of jewelry in a
// tenant's catalog. Quantity counts whole pieces and must never go
// negative; a sale that would do so fails atomically.
type InventoryItem struct {
	ID           string
	TenantID     string
	BranchID     string
	SKU          string // unique per tenant
	Name         string
	Category     string // ring, necklace, bracelet, ...
	Karat        int    // gold purity; 0 when not applicable
	WeightGrams  decimal.Decimal
	Quantity     int64
	MinQuantity  int64 // low-stock threshold
	CostPrice    decimal.Decimal // weighted-average purchase cost
	SellingPrice decimal.Decimal
	TaxRate      decimal.Decimal // fraction, e.g. 0.09
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock reports whether the item is at or below its threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}
