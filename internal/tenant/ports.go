package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vincula/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, t domain.Tenant) error
	FindByEmail(ctx context.Context, email string) (*domain.Tenant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

// SessionStore maps bearer tokens to tenant ids. Entries expire on their
// own; Delete exists for explicit logout.
type SessionStore interface {
	Put(ctx context.Context, token string, tenantID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, token string) (uuid.UUID, bool, error)
	Delete(ctx context.Context, token string) error
}
