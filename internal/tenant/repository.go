package tenant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vincula/internal/domain"
	"vincula/internal/errors"
	"vincula/internal/infrastructure/mysql"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) Insert(ctx context.Context, t domain.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Email, t.PasswordHash, t.CreatedAt, t.UpdatedAt)
	if mysql.IsDuplicateEntry(err) {
		return errors.NewConflictError("email already registered")
	}
	if err != nil {
		return fmt.Errorf("inserting tenant: %w", err)
	}

	return nil
}

func (r *MySQLRepository) FindByEmail(ctx context.Context, email string) (*domain.Tenant, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM tenants
		WHERE email = ?
	`

	var t domain.Tenant
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&t.ID, &t.Name, &t.Email, &t.PasswordHash, &t.CreatedAt, &t.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("tenant not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying tenant by email: %w", err)
	}

	return &t, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM tenants
		WHERE id = ?
	`

	var t domain.Tenant
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Email, &t.PasswordHash, &t.CreatedAt, &t.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("tenant not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying tenant by id: %w", err)
	}

	return &t, nil
}
