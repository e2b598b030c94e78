package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"go-pairchat/config"
	"go-pairchat/internal/app"
	queueadapter "go-pairchat/internal/infrastructure/queue/adapter"
	"go-pairchat/internal/pkg/notification/application/task"
	"go-pairchat/pkg/logger"
)

// worker consumes notification tasks without serving HTTP.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if !cfg.QueueEnabled() {
		log.Fatalf("worker requires REDIS_URL")
	}
	logPtr, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	appLogger := logPtr.With("component", "worker")
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	a, err := app.Open(startCtx, cfg, appLogger)
	cancel()
	if err != nil {
		appLogger.Fatal("failed to open infrastructure", "err", err)
	}
	defer a.Close()

	srv, err := queueadapter.NewAsynqServer(cfg.Redis.URL, cfg.Queue.Concurrency, cfg.Queue.Queues, appLogger)
	if err != nil {
		appLogger.Fatal("failed to create queue server", "err", err)
	}
	task.RegisterNotifyMessageTask(srv, a.FanOut(), appLogger)

	appLogger.Info("worker started", "queues", cfg.Queue.Queues)
	if err := srv.Run(ctx); err != nil {
		appLogger.Error("worker stopped with error", "err", err)
		return
	}
	appLogger.Info("worker stopped")
}
