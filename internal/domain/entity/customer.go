package entity

import "time"

// Customer is a shop customer (CRM).
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
