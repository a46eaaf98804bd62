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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements SaleRepository over PostgreSQL (usable with pool or tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the adapter. Pass a pool or tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persists the sale header.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, tenant_id, branch_id, terminal_id, customer_id, cashier_id, status, subtotal, discount, tax, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.TenantID, sale.BranchID, sale.TerminalID, nullIfEmpty(sale.CustomerID),
		sale.CashierID, sale.Status, sale.Subtotal, sale.Discount, sale.Tax, sale.Total,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persists one sale line with its price snapshot.
func (r *SaleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, item_id, sku, name, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SaleID, item.ItemID, item.SKU, item.Name,
		item.Quantity, item.UnitPrice, item.TaxRate, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// CreatePayment persists one tender.
func (r *SaleRepo) CreatePayment(ctx context.Context, payment *entity.SalePayment) error {
	query := `
		INSERT INTO sale_payments (id, sale_id, method, amount)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, payment.ID, payment.SaleID, payment.Method, payment.Amount)
	if err != nil {
		return fmt.Errorf("insert sale payment: %w", err)
	}
	return nil
}

// GetByID fetches a sale header.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `
		SELECT id, tenant_id, branch_id, terminal_id, customer_id, cashier_id, status,
		       subtotal, discount, tax, total, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	var customerID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.TenantID, &s.BranchID, &s.TerminalID, &customerID, &s.CashierID,
		&s.Status, &s.Subtotal, &s.Discount, &s.Tax, &s.Total, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.CustomerID = derefStr(customerID)
	return &s, nil
}

// GetItemsBySaleID fetches all lines of a sale.
func (r *SaleRepo) GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, item_id, sku, name, quantity, unit_price, tax_rate, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ItemID, &it.SKU, &it.Name,
			&it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetPaymentsBySaleID fetches all tenders of a sale.
func (r *SaleRepo) GetPaymentsBySaleID(ctx context.Context, saleID string) ([]*entity.SalePayment, error) {
	query := `SELECT id, sale_id, method, amount FROM sale_payments WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalePayment
	for rows.Next() {
		var p entity.SalePayment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount); err != nil {
			return nil, fmt.Errorf("scan sale payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListHeldByTerminal fetches the held sales parked at a terminal, oldest first.
func (r *SaleRepo) ListHeldByTerminal(ctx context.Context, tenantID, terminalID string) ([]*entity.Sale, error) {
	query := `
		SELECT id, tenant_id, branch_id, terminal_id, customer_id, cashier_id, status,
		       subtotal, discount, tax, total, created_at, updated_at
		FROM sales WHERE tenant_id = $1 AND terminal_id = $2 AND status = $3
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, tenantID, terminalID, entity.SaleStatusHeld)
	if err != nil {
		return nil, fmt.Errorf("list held sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var customerID *string
		if err := rows.Scan(&s.ID, &s.TenantID, &s.BranchID, &s.TerminalID, &customerID,
			&s.CashierID, &s.Status, &s.Subtotal, &s.Discount, &s.Tax, &s.Total,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.CustomerID = derefStr(customerID)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus transitions the sale status, conditional on the current one.
// Zero rows affected means another transition got there first.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	query := `UPDATE sales SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// UpdateTotals rewrites the computed totals (held-sale edits).
func (r *SaleRepo) UpdateTotals(ctx context.Context, sale *entity.Sale) error {
	query := `
		UPDATE sales SET subtotal = $2, discount = $3, tax = $4, total = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, sale.ID, sale.Subtotal, sale.Discount, sale.Tax, sale.Total, sale.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale totals: %w", err)
	}
	return nil
}
