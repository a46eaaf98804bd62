package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/m1ndvortex/jewely-sub003/internal/domain"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/entity"
	"github.com/m1ndvortex/jewely-sub003/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, tenant_id, branch_id, sku, name, category, karat, weight_grams,
	       quantity, min_quantity, cost_price, selling_price, tax_rate, created_at, updated_at`

// InventoryItemRepo implements InventoryItemRepository over PostgreSQL
// (usable with pool or tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository builds the adapter. Pass a pool or tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persists a new item.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, tenant_id, branch_id, sku, name, category, karat, weight_grams, quantity, min_quantity, cost_price, selling_price, tax_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.TenantID, item.BranchID, item.SKU, item.Name, item.Category,
		item.Karat, item.WeightGrams, item.Quantity, item.MinQuantity,
		item.CostPrice, item.SellingPrice, item.TaxRate, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID fetches an item by ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get inventory item")
}

// GetByTenantAndSKU fetches an item by tenant and SKU.
func (r *InventoryItemRepo) GetByTenantAndSKU(ctx context.Context, tenantID, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, tenantID, sku), "get inventory item by sku")
}

// GetForUpdate fetches the item and locks its row (SELECT ... FOR UPDATE).
// Callers must hold a transaction; the lock is released on tx end.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get inventory item for update")
}

// Update edits catalog fields (not quantity or cost).
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category = $3, karat = $4, weight_grams = $5,
		    min_quantity = $6, selling_price = $7, tax_rate = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Karat, item.WeightGrams,
		item.MinQuantity, item.SellingPrice, item.TaxRate, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateCost sets the weighted-average cost.
func (r *InventoryItemRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	query := `UPDATE inventory_items SET cost_price = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, cost); err != nil {
		return fmt.Errorf("update inventory item cost: %w", err)
	}
	return nil
}

// SetQuantity writes the new on-hand quantity. A CHECK (quantity >= 0) on
// the table backs the application-level re-check.
func (r *InventoryItemRepo) SetQuantity(ctx context.Context, id string, quantity int64) error {
	query := `UPDATE inventory_items SET quantity = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, quantity); err != nil {
		return fmt.Errorf("set inventory item quantity: %w", err)
	}
	return nil
}

// List pages through a tenant's items.
func (r *InventoryItemRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM inventory_items WHERE tenant_id = $1
		ORDER BY sku LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListLowStock returns items at or below their minimum quantity.
func (r *InventoryItemRepo) ListLowStock(ctx context.Context, tenantID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM inventory_items WHERE tenant_id = $1 AND quantity <= min_quantity
		ORDER BY sku`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *InventoryItemRepo) scanOne(row pgx.Row, op string) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.TenantID, &i.BranchID, &i.SKU, &i.Name, &i.Category, &i.Karat,
		&i.WeightGrams, &i.Quantity, &i.MinQuantity, &i.CostPrice, &i.SellingPrice,
		&i.TaxRate, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}

func (r *InventoryItemRepo) scanMany(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(
			&i.ID, &i.TenantID, &i.BranchID, &i.SKU, &i.Name, &i.Category, &i.Karat,
			&i.WeightGrams, &i.Quantity, &i.MinQuantity, &i.CostPrice, &i.SellingPrice,
			&i.TaxRate, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
