package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vincula/internal/domain"
	"vincula/internal/errors"
	"vincula/internal/infrastructure/mysql"
)

const orderColumns = "id, tenant_id, product_id, customer_id, quantity, total_price, status, created_at, updated_at"

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) Insert(ctx context.Context, tx mysql.Tx, o domain.Order) error {
	query := `
		INSERT INTO orders (id, tenant_id, product_id, customer_id, quantity, total_price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		o.ID, o.TenantID, o.ProductID, o.CustomerID,
		o.Quantity, o.TotalPrice, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ? AND tenant_id = ?`, orderColumns)

	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&o.ID, &o.TenantID, &o.ProductID, &o.CustomerID,
		&o.Quantity, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &o, nil
}

func (r *MySQLRepository) FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id, tenantID uuid.UUID) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ? AND tenant_id = ? FOR UPDATE`, orderColumns)

	var o domain.Order
	err := tx.QueryRowContext(ctx, query, id, tenantID).Scan(
		&o.ID, &o.TenantID, &o.ProductID, &o.CustomerID,
		&o.Quantity, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("locking order row: %w", err)
	}

	return &o, nil
}

func (r *MySQLRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE tenant_id = ? ORDER BY created_at DESC`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var ordersList []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID, &o.TenantID, &o.ProductID, &o.CustomerID,
			&o.Quantity, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		ordersList = append(ordersList, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return ordersList, nil
}

func (r *MySQLRepository) Update(ctx context.Context, tx mysql.Tx, o domain.Order) error {
	query := `
		UPDATE orders
		SET quantity = ?, total_price = ?, status = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := tx.ExecContext(ctx, query, o.Quantity, o.TotalPrice, o.Status, o.UpdatedAt, o.ID, o.TenantID)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, tx mysql.Tx, id, tenantID uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = ? AND tenant_id = ?`

	result, err := tx.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError("order not found")
	}

	return nil
}
