package product

import (
	"context"

	"github.com/google/uuid"

	"vincula/internal/domain"
	"vincula/internal/infrastructure/mysql"
)

type Repository interface {
	Insert(ctx context.Context, p domain.Product) error
	FindByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Product, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Product, error)
	UpdateDetails(ctx context.Context, tx mysql.Tx, p domain.Product) error
	Delete(ctx context.Context, id, tenantID uuid.UUID) error
}

// StockWriter is the slice of the inventory ledger the product module
// needs: row locking and absolute stock edits. Reservation bookkeeping
// stays with the order workflow.
type StockWriter interface {
	Lock(ctx context.Context, tx mysql.Tx, productID, tenantID uuid.UUID) (*domain.Product, error)
	SetStock(ctx context.Context, tx mysql.Tx, p *domain.Product, quantity int) error
}
