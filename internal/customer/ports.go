package customer

import (
	"context"

	"github.com/google/uuid"

	"vincula/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, c domain.Customer) error
	FindByID(ctx context.Context, id, tenantID uuid.UUID) (*domain.Customer, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) error
	Delete(ctx context.Context, id, tenantID uuid.UUID) error
}
