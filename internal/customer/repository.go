package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vincula/internal/domain"
	"vincula/internal/errors"
	"vincula/internal/infrastructure/mysql"
)

const customerColumns = "id, tenant_id, name, email, phone, created_at, updated_at"

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) Insert(ctx context.Context, c domain.Customer) error {
	query := `
		INSERT INTO customers (id, tenant_id, name, email, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.TenantID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt)
	if mysql.IsDuplicateEntry(err) {
		return errors.NewConflictError("a customer with this email already exists")
	}
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}

	return nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = ? AND tenant_id = ?`, customerColumns)

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("customer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	return &c, nil
}

// Exists is the cheap lookup the order workflow uses for referential checks.
func (r *MySQLRepository) Exists(ctx context.Context, id, tenantID uuid.UUID) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM customers WHERE id = ? AND tenant_id = ?`, id, tenantID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking customer existence: %w", err)
	}
	return true, nil
}

func (r *MySQLRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE tenant_id = ? ORDER BY created_at DESC`, customerColumns)

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (r *MySQLRepository) Update(ctx context.Context, c domain.Customer) error {
	query := `
		UPDATE customers
		SET name = ?, email = ?, phone = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	// The driver reports changed rows, so an idempotent rewrite of the
	// same values would count as zero; existence was already checked by
	// the FindByID that produced c.
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.UpdatedAt, c.ID, c.TenantID)
	if mysql.IsDuplicateEntry(err) {
		return errors.NewConflictError("a customer with this email already exists")
	}
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError("customer not found")
	}

	return nil
}
