package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"registeruser/internal/config"
	"registeruser/internal/logger"
	"registeruser/internal/modules/register"
	"registeruser/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zapLogger, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	accounts, documents, closeBackend, err := server.Backends(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("backend init failed", zap.String("driver", cfg.Driver), zap.Error(err))
	}
	defer closeBackend()

	registerService := register.NewService(accounts, documents, server.Settings(cfg), zapLogger.Named("register"))
	registerHandler := register.NewHandler(registerService)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewServer(cfg, zapLogger, registerHandler).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLogger.Info("listening", zap.String("addr", cfg.Addr), zap.String("driver", cfg.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
