package order

import (
	"context"

	"github.com/google/uuid"

	"vincula/internal/domain"
	"vincula/internal/infrastructure/mysql"
)

type Repository interface {
	Insert(ctx context.Context, tx mysql.Tx, o domain.Order) error
	FindByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Order, error)
	FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id, tenantID uuid.UUID) (*domain.Order, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Order, error)
	Update(ctx context.Context, tx mysql.Tx, o domain.Order) error
	Delete(ctx context.Context, tx mysql.Tx, id, tenantID uuid.UUID) error
}

// CustomerDirectory answers whether a customer exists inside the tenant.
type CustomerDirectory interface {
	Exists(ctx context.Context, id, tenantID uuid.UUID) (bool, error)
}

// StockLedger is the inventory side of the workflow; implemented by
// inventory.Ledger. All methods run on the workflow's transaction.
type StockLedger interface {
	Lock(ctx context.Context, tx mysql.Tx, productID, tenantID uuid.UUID) (*domain.Product, error)
	Reserve(ctx context.Context, tx mysql.Tx, p *domain.Product, amount int) error
	Release(ctx context.Context, tx mysql.Tx, p *domain.Product, amount int) error
	Adjust(ctx context.Context, tx mysql.Tx, p *domain.Product, delta int) error
}
