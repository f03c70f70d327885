package main

import (
	"context"
	"log"

	"giftcommerce-admin/internal/backend"
	"giftcommerce-admin/internal/config"
	"giftcommerce-admin/internal/logger"
	"giftcommerce-admin/internal/metrics"
	"giftcommerce-admin/internal/order"
	"giftcommerce-admin/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendToken)
	store := order.NewStore()
	svc := order.NewService(client, store, metrics.NewRegistry())

	// Warm the unified list; a failed first pass is not fatal, the
	// dashboard can refresh once the backend is reachable.
	if err := svc.Reconcile(context.Background()); err != nil {
		logger.L().Warn("initial reconciliation failed", zap.Error(err))
	}

	srv, err := server.New(cfg, svc)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	logger.L().Info("admin order service running", zap.String("port", cfg.AppPort))
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
