package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the isolation boundary: every product, customer and order
// belongs to exactly one tenant and is invisible to the others.
type Tenant struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
