package dto

import "github.com/shopspring/decimal"

// SaleItemRequest one cart line. UnitPrice overrides the catalog price when
// non-zero (negotiated price); otherwise the item's selling price is
// snapshotted.
type SaleItemRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// StockShortage identifies the line that could not be fulfilled.
type StockShortage struct {
	ItemID    string `json:"item_id"`
	SKU       string `json:"sku"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

// StockErrorResponse 409 body for insufficient stock.
type StockErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Item    StockShortage `json:"item"`
}

// PaymentRequest one tender of a split payment.
type PaymentRequest struct {
	Method string          `json:"method"` // cash | card | bank_transfer | store_credit
	Amount decimal.Decimal `json:"amount"`
}

// CreateSaleRequest body for POST /api/pos/sales and /api/pos/sales/hold.
// Either Payments or the single PaymentMethod (meaning full amount) must be
// given on commit; both are ignored on hold.
type CreateSaleRequest struct {
	TerminalID    string            `json:"terminal_id"`
	CustomerID    string            `json:"customer_id,omitempty"`
	Items         []SaleItemRequest `json:"items"`
	Discount      decimal.Decimal   `json:"discount,omitempty"`
	Payments      []PaymentRequest  `json:"payments,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
}

// CompleteSaleRequest body for POST /api/pos/sales/:id/complete.
type CompleteSaleRequest struct {
	Payments      []PaymentRequest `json:"payments,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
}

// SaleItemResponse one committed line.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PaymentResponse one recorded tender.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// SaleResponse sale with lines and payments.
type SaleResponse struct {
	ID         string             `json:"id"`
	TenantID   string             `json:"tenant_id"`
	BranchID   string             `json:"branch_id"`
	TerminalID string             `json:"terminal_id"`
	CustomerID string             `json:"customer_id,omitempty"`
	CashierID  string             `json:"cashier_id"`
	Status     string             `json:"status"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Discount   decimal.Decimal    `json:"discount"`
	Tax        decimal.Decimal    `json:"tax"`
	Total      decimal.Decimal    `json:"total"`
	CreatedAt  string             `json:"created_at"`
	Items      []SaleItemResponse `json:"items"`
	Payments   []PaymentResponse  `json:"payments,omitempty"`
}
