package order

import (
	"database/sql"

	"go.uber.org/zap"

	"vincula/internal/config"
	"vincula/internal/customer"
	"vincula/internal/infrastructure/mysql"
	"vincula/internal/inventory"
)

func NewModule(db *sql.DB, customers *customer.MySQLRepository, ledger *inventory.Ledger, cfg config.OrderConfig, logger *zap.Logger) *Controller {
	repo := NewMySQLRepository(db)
	svc := NewService(mysql.NewTxManager(db), repo, customers, ledger, logger, cfg)
	return NewController(svc, logger)
}
