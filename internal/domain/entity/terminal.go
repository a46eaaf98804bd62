package entity

import "time"

// Terminal is a point-of-sale register inside a branch. Sales reference the
// terminal they were rung up on.
type Terminal struct {
	ID        string
	TenantID  string
	BranchID  string
	Name      string // e.g. "Counter 1"
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
