package main

import (
	"context"
	"log"
	"time"

	"registeruser/internal/config"
	"registeruser/internal/database"
	"registeruser/internal/logger"
	"registeruser/internal/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// orphan_cleanup removes accounts whose profile write failed. Only the sql
// driver is supported; hosted backends keep their own user listings.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zapLogger, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Driver != config.DriverSQL {
		zapLogger.Fatal("orphan cleanup requires BACKEND_DRIVER=sql", zap.String("driver", cfg.Driver))
	}

	db, err := database.Connect(cfg.DatabaseURL, zapLogger)
	if err != nil {
		zapLogger.Fatal("db connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		zapLogger.Fatal("migrate failed", zap.Error(err))
	}

	sweeper := repository.NewOrphanSweeper(db, repository.Collection{
		DatabaseID:   cfg.Backend.DatabaseID,
		CollectionID: cfg.Backend.CollectionID,
	}, zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := sweeper.Sweep(ctx, time.Now(), cfg.OrphanMinAge)
	if err != nil {
		zapLogger.Fatal("orphan cleanup failed", zap.Error(err))
	}
	zapLogger.Info("orphan cleanup completed", zap.Int64("accounts", n), zap.Duration("min_age", cfg.OrphanMinAge))
}
