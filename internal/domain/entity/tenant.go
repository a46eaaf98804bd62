package entity

import "time"

// Tenant is the isolation boundary: one jewelry shop's data never mixes
// with another's. Every scoped entity carries a TenantID.
type Tenant struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
