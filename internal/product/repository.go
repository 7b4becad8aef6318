package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vincula/internal/domain"
	"vincula/internal/errors"
	"vincula/internal/infrastructure/mysql"
)

const productColumns = "id, tenant_id, name, description, price, stock_quantity, created_at, updated_at"

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) Insert(ctx context.Context, p domain.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, name, description, price, stock_quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.TenantID, p.Name, p.Description, p.Price, p.StockQuantity, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ? AND tenant_id = ?`, productColumns)

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE tenant_id = ? ORDER BY created_at DESC`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Price, &p.StockQuantity,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

// UpdateDetails writes everything except stock_quantity; that column
// belongs to the inventory ledger.
func (r *MySQLRepository) UpdateDetails(ctx context.Context, tx mysql.Tx, p domain.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := tx.ExecContext(ctx, query, p.Name, p.Description, p.Price, p.UpdatedAt, p.ID, p.TenantID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError("product not found")
	}

	return nil
}
