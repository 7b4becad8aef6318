package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vincula/internal/domain"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, name, email string, phone *string) (*domain.Customer, error) {
	now := time.Now().UTC()
	c := domain.Customer{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customerId", c.ID.String()),
		zap.String("tenantId", tenantID.String()))

	return &c, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id, tenantID)
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Customer, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, name, email *string, phone *string) (*domain.Customer, error) {
	c, err := s.repo.FindByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		c.Name = *name
	}
	if email != nil {
		c.Email = *email
	}
	if phone != nil {
		c.Phone = phone
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, *c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, tenantID)
}
