package dto

import "github.com/shopspring/decimal"

// CreateItemRequest body for POST /api/inventory/items.
type CreateItemRequest struct {
	BranchID     string          `json:"branch_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Karat        int             `json:"karat,omitempty"`
	WeightGrams  decimal.Decimal `json:"weight_grams,omitempty"`
	MinQuantity  int64           `json:"min_quantity,omitempty"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	TaxRate      decimal.Decimal `json:"tax_rate,omitempty"`
}

// UpdateItemRequest body for PUT /api/inventory/items/:id.
type UpdateItemRequest struct {
	Name         string          `json:"name,omitempty"`
	Category     string          `json:"category,omitempty"`
	Karat        int             `json:"karat,omitempty"`
	WeightGrams  decimal.Decimal `json:"weight_grams,omitempty"`
	MinQuantity  *int64          `json:"min_quantity,omitempty"`
	SellingPrice decimal.Decimal `json:"selling_price,omitempty"`
	TaxRate      decimal.Decimal `json:"tax_rate,omitempty"`
}

// ReceiveStockRequest body for POST /api/inventory/items/:id/receive.
type ReceiveStockRequest struct {
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// ItemResponse inventory item in responses.
type ItemResponse struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenant_id"`
	BranchID     string          `json:"branch_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Karat        int             `json:"karat,omitempty"`
	WeightGrams  decimal.Decimal `json:"weight_grams"`
	Quantity     int64           `json:"quantity"`
	MinQuantity  int64           `json:"min_quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	LowStock     bool            `json:"low_stock"`
}
