// Package inventory owns product stock bookkeeping. Nothing else in the
// codebase writes stock_quantity; every mutation goes through the Ledger,
// inside the transaction handed in by the order workflow.
package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vincula/internal/domain"
	"vincula/internal/errors"
	"vincula/internal/infrastructure/mysql"
)

type Ledger struct {
	logger *zap.Logger
}

func NewLedger(logger *zap.Logger) *Ledger {
	return &Ledger{logger: logger}
}

// Lock fetches the product with a row lock, scoped to the tenant. Foreign
// and absent products are the same NotFound.
func (l *Ledger) Lock(ctx context.Context, tx mysql.Tx, productID, tenantID uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, tenant_id, name, description, price, stock_quantity, created_at, updated_at
		FROM products
		WHERE id = ? AND tenant_id = ?
		FOR UPDATE
	`

	var p domain.Product
	err := tx.QueryRowContext(ctx, query, productID, tenantID).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("locking product row: %w", err)
	}

	return &p, nil
}

// Reserve takes amount units from the product's stock. The caller must
// hold the row lock from Lock on the same transaction.
func (l *Ledger) Reserve(ctx context.Context, tx mysql.Tx, p *domain.Product, amount int) error {
	if amount <= 0 {
		return errors.NewValidationError("reservation amount must be positive", errors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}
	if !p.CanReserve(amount) {
		return errors.NewInsufficientStockError(amount, p.StockQuantity)
	}

	// stock_quantity >= ? repeats the check in SQL so the counter cannot
	// go negative even if the snapshot is stale.
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - ?, updated_at = NOW()
		WHERE id = ? AND tenant_id = ? AND stock_quantity >= ?
	`

	result, err := tx.ExecContext(ctx, query, amount, p.ID, p.TenantID, amount)
	if err != nil {
		return fmt.Errorf("reserving stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return errors.NewInsufficientStockError(amount, p.StockQuantity)
	}

	p.StockQuantity -= amount
	l.logger.Debug("stock reserved",
		zap.String("productId", p.ID.String()),
		zap.Int("amount", amount),
		zap.Int("remaining", p.StockQuantity))

	return nil
}

// Release returns amount units to the product's stock.
func (l *Ledger) Release(ctx context.Context, tx mysql.Tx, p *domain.Product, amount int) error {
	if amount < 0 {
		return errors.NewValidationError("release amount must not be negative", errors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must not be negative",
		})
	}
	if amount == 0 {
		return nil
	}

	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + ?, updated_at = NOW()
		WHERE id = ? AND tenant_id = ?
	`

	result, err := tx.ExecContext(ctx, query, amount, p.ID, p.TenantID)
	if err != nil {
		return fmt.Errorf("releasing stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError("product not found")
	}

	p.StockQuantity += amount
	l.logger.Debug("stock released",
		zap.String("productId", p.ID.String()),
		zap.Int("amount", amount),
		zap.Int("remaining", p.StockQuantity))

	return nil
}

// SetStock overwrites the counter with an absolute value. This is the
// direct-edit path (restocks, corrections), not reservation bookkeeping.
func (l *Ledger) SetStock(ctx context.Context, tx mysql.Tx, p *domain.Product, quantity int) error {
	if quantity < 0 {
		return errors.NewValidationError("stock quantity must not be negative", errors.ValidationDetail{
			Field:   "stock_quantity",
			Message: "stock_quantity must not be negative",
		})
	}

	query := `
		UPDATE products
		SET stock_quantity = ?, updated_at = NOW()
		WHERE id = ? AND tenant_id = ?
	`

	// No rows-affected check here: the driver reports changed rows, so
	// writing the value the row already holds would look like a miss.
	// Callers prove existence with Lock on the same row first.
	if _, err := tx.ExecContext(ctx, query, quantity, p.ID, p.TenantID); err != nil {
		return fmt.Errorf("setting stock: %w", err)
	}

	p.StockQuantity = quantity
	return nil
}

// Adjust moves the reservation held against p by delta in one step:
// delta > 0 reserves more, delta < 0 releases the difference.
func (l *Ledger) Adjust(ctx context.Context, tx mysql.Tx, p *domain.Product, delta int) error {
	switch {
	case delta > 0:
		return l.Reserve(ctx, tx, p, delta)
	case delta < 0:
		return l.Release(ctx, tx, p, -delta)
	default:
		return nil
	}
}
