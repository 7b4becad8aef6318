package product

import (
	"database/sql"

	"go.uber.org/zap"

	"vincula/internal/infrastructure/mysql"
	"vincula/internal/inventory"
)

type Module struct {
	Controller *Controller
	Repository *MySQLRepository
}

func NewModule(db *sql.DB, ledger *inventory.Ledger, logger *zap.Logger) *Module {
	repo := NewMySQLRepository(db)
	svc := NewService(mysql.NewTxManager(db), repo, ledger, logger)

	return &Module{
		Controller: NewController(svc, logger),
		Repository: repo,
	}
}
