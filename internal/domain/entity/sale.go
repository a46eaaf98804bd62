package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale statuses.
const (
	SaleStatusHeld      = "held"      // cart parked at the terminal, stock untouched
	SaleStatusCompleted = "completed" // committed, stock decremented
	SaleStatusVoided    = "voided"
)

// Payment methods.
const (
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentBankTransfer = "bank_transfer"
	PaymentStoreCredit  = "store_credit"
)

// Sale is a POS transaction header. Total = Subtotal - Discount + Tax.
type Sale struct {
	ID         string
	TenantID   string
	BranchID   string
	TerminalID string
	CustomerID string // optional, empty for walk-ins
	CashierID  string
	Status     string
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SaleItem is one line of a sale. UnitPrice is a snapshot taken when the
// line entered the sale; later catalog price changes never touch it.
type SaleItem struct {
	ID        string
	SaleID    string
	ItemID    string
	SKU       string
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal // Quantity * UnitPrice
}

// SalePayment is one tender of a (possibly split) payment.
type SalePayment struct {
	ID     string
	SaleID string
	Method string
	Amount decimal.Decimal
}
