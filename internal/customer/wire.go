package customer

import (
	"database/sql"

	"go.uber.org/zap"
)

type Module struct {
	Controller *Controller
	Repository *MySQLRepository
}

func NewModule(db *sql.DB, logger *zap.Logger) *Module {
	repo := NewMySQLRepository(db)
	svc := NewService(repo, logger)

	return &Module{
		Controller: NewController(svc, logger),
		Repository: repo,
	}
}
