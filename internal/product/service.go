package product

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vincula/internal/domain"
	"vincula/internal/infrastructure/mysql"
)

type Service struct {
	txm    mysql.TxManager
	repo   Repository
	stock  StockWriter
	logger *zap.Logger
}

func NewService(txm mysql.TxManager, repo Repository, stock StockWriter, logger *zap.Logger) *Service {
	return &Service{
		txm:    txm,
		repo:   repo,
		stock:  stock,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, name, description string, price decimal.Decimal, stockQuantity int) (*domain.Product, error) {
	now := time.Now().UTC()
	p := domain.Product{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("productId", p.ID.String()),
		zap.String("tenantId", tenantID.String()),
		zap.Int("stock", stockQuantity))

	return &p, nil
}

func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id, tenantID)
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Product, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// Update edits product fields. A stock edit goes through the inventory
// ledger under the product's row lock, so it cannot race a concurrent
// order reservation.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, name, description *string, price *decimal.Decimal, stockQuantity *int) (*domain.Product, error) {
	tx, err := s.txm.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := s.stock.Lock(ctx, tx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		p.Name = *name
	}
	if description != nil {
		p.Description = *description
	}
	if price != nil {
		p.Price = *price
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateDetails(ctx, tx, *p); err != nil {
		return nil, err
	}

	if stockQuantity != nil {
		if err := s.stock.SetStock(ctx, tx, p, *stockQuantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, tenantID)
}
