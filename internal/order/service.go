package order

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vincula/internal/config"
	"vincula/internal/domain"
	"vincula/internal/errors"
	"vincula/internal/infrastructure/mysql"
)

// Service is the order workflow engine. Every multi-step mutation (stock
// check, stock adjustment, order write) runs inside one REPEATABLE READ
// transaction with the product row locked, so concurrent orders against
// the same product serialize on the row and cannot jointly oversell.
type Service struct {
	txm             mysql.TxManager
	repo            Repository
	customers       CustomerDirectory
	ledger          StockLedger
	logger          *zap.Logger
	txTimeout       time.Duration
	maxRetries      int
	releaseOnDelete bool
}

func NewService(
	txm mysql.TxManager,
	repo Repository,
	customers CustomerDirectory,
	ledger StockLedger,
	logger *zap.Logger,
	cfg config.OrderConfig,
) *Service {
	// A zero config (e.g. a hand-built OrderConfig) must not brick the
	// workflow: one attempt and a sane timeout are the floor.
	if cfg.MaxRetryAttempts < 1 {
		cfg.MaxRetryAttempts = 1
	}
	if cfg.TxTimeout <= 0 {
		cfg.TxTimeout = 5 * time.Second
	}

	return &Service{
		txm:             txm,
		repo:            repo,
		customers:       customers,
		ledger:          ledger,
		logger:          logger,
		txTimeout:       cfg.TxTimeout,
		maxRetries:      cfg.MaxRetryAttempts,
		releaseOnDelete: cfg.ReleaseOnDelete,
	}
}

func (s *Service) Create(ctx context.Context, tenantID, productID, customerID uuid.UUID, quantity int) (*domain.Order, error) {
	if quantity < 1 {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}

	ok, err := s.customers.Exists(ctx, customerID, tenantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("customer not found")
	}

	return s.withRetry(ctx, "create", func(ctx context.Context) (*domain.Order, error) {
		return s.createOnce(ctx, tenantID, productID, customerID, quantity)
	})
}

func (s *Service) createOnce(ctx context.Context, tenantID, productID, customerID uuid.UUID, quantity int) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.txm.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	// Rollback after a successful commit is a no-op.
	defer tx.Rollback()

	product, err := s.ledger.Lock(txCtx, tx, productID, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Reserve(txCtx, tx, product, quantity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := domain.Order{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ProductID:  productID,
		CustomerID: customerID,
		Quantity:   quantity,
		TotalPrice: product.TotalFor(quantity),
		Status:     domain.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(txCtx, tx, o); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("orderId", o.ID.String()),
		zap.String("tenantId", tenantID.String()),
		zap.Int("quantity", quantity),
		zap.String("totalPrice", o.TotalPrice.String()))

	return &o, nil
}

func (s *Service) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.Order, error) {
	return s.repo.FindByID(ctx, orderID, tenantID)
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Order, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// Update changes an order's quantity and/or status as one atomic unit.
// Orders that are shipped, delivered or canceled reject any change.
func (s *Service) Update(ctx context.Context, tenantID, orderID uuid.UUID, newQuantity *int, newStatus *domain.OrderStatus) (*domain.Order, error) {
	if newQuantity == nil && newStatus == nil {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "body",
			Message: "at least one of quantity or status is required",
		})
	}
	if newQuantity != nil && *newQuantity < 1 {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}
	if newStatus != nil && !domain.ValidOrderStatus(*newStatus) {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, processed, shipped, delivered, canceled",
		})
	}

	return s.withRetry(ctx, "update", func(ctx context.Context) (*domain.Order, error) {
		return s.updateOnce(ctx, tenantID, orderID, newQuantity, newStatus)
	})
}

func (s *Service) updateOnce(ctx context.Context, tenantID, orderID uuid.UUID, newQuantity *int, newStatus *domain.OrderStatus) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.txm.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	o, err := s.repo.FindByIDForUpdate(txCtx, tx, orderID, tenantID)
	if err != nil {
		return nil, err
	}

	if !o.Mutable() {
		return nil, errors.NewForbiddenError("order can no longer be modified")
	}
	if newStatus != nil && !domain.CanTransition(o.Status, *newStatus) {
		return nil, errors.NewForbiddenError("invalid status transition from " + string(o.Status) + " to " + string(*newStatus))
	}

	var product *domain.Product
	if newQuantity != nil {
		product, err = s.ledger.Lock(txCtx, tx, o.ProductID, tenantID)
		if err != nil {
			return nil, err
		}

		diff := *newQuantity - o.Quantity
		if err := s.ledger.Adjust(txCtx, tx, product, diff); err != nil {
			return nil, err
		}

		o.Quantity = *newQuantity
		o.TotalPrice = product.TotalFor(*newQuantity)
	}

	if newStatus != nil {
		// Canceling hands the held quantity back to the product.
		if *newStatus == domain.OrderStatusCanceled && o.Status.HoldsStock() {
			if product == nil {
				product, err = s.ledger.Lock(txCtx, tx, o.ProductID, tenantID)
				if err != nil {
					return nil, err
				}
			}
			if err := s.ledger.Release(txCtx, tx, product, o.Quantity); err != nil {
				return nil, err
			}
		}
		o.Status = *newStatus
	}

	o.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(txCtx, tx, *o); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("order updated",
		zap.String("orderId", o.ID.String()),
		zap.String("tenantId", tenantID.String()),
		zap.Int("quantity", o.Quantity),
		zap.String("status", string(o.Status)))

	return o, nil
}

// UpdateStatus is the status-only path. Apart from cancellation, which
// releases the held stock, it has no inventory side effects.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, newStatus domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(newStatus) {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, processed, shipped, delivered, canceled",
		})
	}

	return s.withRetry(ctx, "updateStatus", func(ctx context.Context) (*domain.Order, error) {
		return s.updateStatusOnce(ctx, tenantID, orderID, newStatus)
	})
}

func (s *Service) updateStatusOnce(ctx context.Context, tenantID, orderID uuid.UUID, newStatus domain.OrderStatus) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.txm.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	o, err := s.repo.FindByIDForUpdate(txCtx, tx, orderID, tenantID)
	if err != nil {
		return nil, err
	}

	if o.Status.IsTerminal() {
		return nil, errors.NewForbiddenError("order can no longer be modified")
	}
	if !domain.CanTransition(o.Status, newStatus) {
		return nil, errors.NewForbiddenError("invalid status transition from " + string(o.Status) + " to " + string(newStatus))
	}

	if newStatus == domain.OrderStatusCanceled && o.Status.HoldsStock() {
		product, err := s.ledger.Lock(txCtx, tx, o.ProductID, tenantID)
		if err != nil {
			return nil, err
		}
		if err := s.ledger.Release(txCtx, tx, product, o.Quantity); err != nil {
			return nil, err
		}
	}

	o.Status = newStatus
	o.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(txCtx, tx, *o); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("orderId", o.ID.String()),
		zap.String("status", string(newStatus)))

	return o, nil
}

// Delete removes the order. When release_on_delete is on and the order
// still holds stock, the held quantity goes back to the product in the
// same transaction.
func (s *Service) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	_, err := s.withRetry(ctx, "delete", func(ctx context.Context) (*domain.Order, error) {
		return nil, s.deleteOnce(ctx, tenantID, orderID)
	})
	return err
}

func (s *Service) deleteOnce(ctx context.Context, tenantID, orderID uuid.UUID) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.txm.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	o, err := s.repo.FindByIDForUpdate(txCtx, tx, orderID, tenantID)
	if err != nil {
		return err
	}

	if s.releaseOnDelete && o.Status.HoldsStock() {
		product, err := s.ledger.Lock(txCtx, tx, o.ProductID, tenantID)
		if err != nil {
			return err
		}
		if err := s.ledger.Release(txCtx, tx, product, o.Quantity); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(txCtx, tx, orderID, tenantID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("order deleted",
		zap.String("orderId", orderID.String()),
		zap.String("tenantId", tenantID.String()))

	return nil
}

// withRetry re-runs fn on MySQL deadlock / lock-wait-timeout errors,
// sleeping a jittered backoff between attempts.
func (s *Service) withRetry(ctx context.Context, op string, fn func(ctx context.Context) (*domain.Order, error)) (*domain.Order, error) {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		o, err := fn(ctx)
		if err == nil {
			return o, nil
		}

		if !mysql.IsDeadlock(err) {
			return nil, err
		}

		if attempt < s.maxRetries {
			base := backoffs[(attempt-1)%len(backoffs)]
			jitter := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
			time.Sleep(jitter)
			s.logger.Warn("deadlock detected, retrying",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", s.maxRetries))
		}
	}

	return nil, errors.NewDeadlockError("max retries exceeded")
}
