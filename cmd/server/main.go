package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"vincula/internal/commons"
	"vincula/internal/config"
	"vincula/internal/customer"
	"vincula/internal/infrastructure/logger"
	"vincula/internal/infrastructure/mysql"
	"vincula/internal/infrastructure/redis"
	"vincula/internal/inventory"
	"vincula/internal/order"
	"vincula/internal/product"
	"vincula/internal/server"
	"vincula/internal/tenant"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file; env vars are used when empty")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = commons.LoadConfig(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("connecting to redis", zap.Error(err))
	}
	defer redisClient.Close()
	zapLogger.Info("redis connected")

	ledger := inventory.NewLedger(zapLogger)

	tenantModule := tenant.NewModule(db, redisClient, zapLogger, cfg.Session.TTL)
	productModule := product.NewModule(db, ledger, zapLogger)
	customerModule := customer.NewModule(db, zapLogger)
	orderCtrl := order.NewModule(db, customerModule.Repository, ledger, cfg.Order, zapLogger)

	router := server.NewRouter(tenantModule, productModule.Controller, customerModule.Controller, orderCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
