package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

var _ repository.TerminalRepository = (*TerminalRepo)(nil)

// TerminalRepo implements TerminalRepository over PostgreSQL (usable with pool or tx).
type TerminalRepo struct {
	q Querier
}

// NewTerminalRepository builds the adapter. Pass a pool or tx (Querier).
func NewTerminalRepository(q Querier) *TerminalRepo {
	return &TerminalRepo{q: q}
}

// Create persists a new terminal.
func (r *TerminalRepo) Create(ctx context.Context, terminal *entity.Terminal) error {
	query := `
		INSERT INTO terminals (id, tenant_id, branch_id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		terminal.ID, terminal.TenantID, terminal.BranchID, terminal.Name,
		terminal.IsActive, terminal.CreatedAt, terminal.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert terminal: %w", err)
	}
	return nil
}

// GetByID fetches a terminal by ID.
func (r *TerminalRepo) GetByID(ctx context.Context, id string) (*entity.Terminal, error) {
	query := `
		SELECT id, tenant_id, branch_id, name, is_active, created_at, updated_at
		FROM terminals WHERE id = $1`
	var t entity.Terminal
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.TenantID, &t.BranchID, &t.Name, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get terminal: %w", err)
	}
	return &t, nil
}

// ListByTenant fetches all terminals of a tenant.
func (r *TerminalRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Terminal, error) {
	query := `
		SELECT id, tenant_id, branch_id, name, is_active, created_at, updated_at
		FROM terminals WHERE tenant_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list terminals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Terminal
	for rows.Next() {
		var t entity.Terminal
		if err := rows.Scan(&t.ID, &t.TenantID, &t.BranchID, &t.Name, &t.IsActive,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan terminal: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update rewrites terminal name and active flag.
func (r *TerminalRepo) Update(ctx context.Context, terminal *entity.Terminal) error {
	query := `
		UPDATE terminals SET name = $2, is_active = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, terminal.ID, terminal.Name, terminal.IsActive, terminal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update terminal: %w", err)
	}
	return nil
}
