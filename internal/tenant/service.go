package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"vincula/internal/domain"
	"vincula/internal/errors"
)

type Service struct {
	repo       Repository
	sessions   SessionStore
	logger     *zap.Logger
	sessionTTL time.Duration
}

func NewService(repo Repository, sessions SessionStore, logger *zap.Logger, sessionTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		sessions:   sessions,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.Tenant, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError("hashing password", err)
	}

	now := time.Now().UTC()
	t := domain.Tenant{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("tenant registered", zap.String("tenantId", t.ID.String()))
	return &t, nil
}

// Login verifies the credentials and issues a bearer token backed by the
// session store. The token is the only thing the caller keeps; the tenant
// id never leaves the server.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	t, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return "", errors.NewUnauthorizedError("invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(password)); err != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	token := uuid.New().String()
	if err := s.sessions.Put(ctx, token, t.ID, s.sessionTTL); err != nil {
		return "", err
	}

	s.logger.Info("tenant logged in", zap.String("tenantId", t.ID.String()))
	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Resolve maps a bearer token to the owning tenant id.
func (s *Service) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	id, found, err := s.sessions.Get(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	if !found {
		return uuid.Nil, errors.NewUnauthorizedError("invalid or expired token")
	}
	return id, nil
}
