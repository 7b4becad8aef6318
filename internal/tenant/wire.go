package tenant

import (
	"database/sql"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Module struct {
	Controller *Controller
	Service    *Service
}

func NewModule(db *sql.DB, redisClient *goredis.Client, logger *zap.Logger, sessionTTL time.Duration) *Module {
	repo := NewMySQLRepository(db)
	sessions := NewRedisSessionStore(redisClient)
	svc := NewService(repo, sessions, logger, sessionTTL)

	return &Module{
		Controller: NewController(svc, logger),
		Service:    svc,
	}
}
