package entity

import "time"

// Branch is a physical store location of a tenant.
type Branch struct {
	ID        string
	TenantID  string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
