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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"go-pairchat/cmd/api/router"
	"go-pairchat/config"
	"go-pairchat/internal/app"
	queueadapter "go-pairchat/internal/infrastructure/queue/adapter"
	"go-pairchat/internal/infrastructure/realtime"
	"go-pairchat/internal/pkg/auth/application/credential"
	"go-pairchat/internal/pkg/notification/application/notifier"
	"go-pairchat/internal/pkg/notification/application/task"
	"go-pairchat/pkg/logger"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logPtr, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	appLogger := *logPtr
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	a, err := app.Open(startCtx, cfg, appLogger)
	cancel()
	if err != nil {
		appLogger.Fatal("failed to open infrastructure", "err", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			appLogger.Error("closing infrastructure", "err", err)
		}
	}()

	sessions := realtime.NewRouter()
	defer sessions.Close()

	g, gctx := errgroup.WithContext(ctx)

	notifiers := notifier.Notifiers{notifier.NewRealtimeNotifier(sessions, appLogger)}
	var inline *notifier.InlineNotifier
	if cfg.QueueEnabled() {
		client, err := queueadapter.NewAsynqClient(cfg.Redis.URL)
		if err != nil {
			appLogger.Fatal("failed to create queue client", "err", err)
		}
		defer client.Close()
		notifiers = append(notifiers, notifier.NewQueueNotifier(client, appLogger))

		srv, err := queueadapter.NewAsynqServer(cfg.Redis.URL, cfg.Queue.Concurrency, cfg.Queue.Queues, appLogger)
		if err != nil {
			appLogger.Fatal("failed to create queue server", "err", err)
		}
		task.RegisterNotifyMessageTask(srv, a.FanOut(), appLogger)
		g.Go(func() error { return srv.Run(gctx) })
	} else {
		appLogger.Info("REDIS_URL not set, notifications dispatched in-process")
		inline = notifier.NewInlineNotifier(a.FanOut(), appLogger)
		notifiers = append(notifiers, inline)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), router.RequestLogger(appLogger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.ClientURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.RegisterRoutes(r, router.Deps{
		Users:         a.Users,
		Chats:         a.Chats,
		Credentials:   credential.NewVerifier(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiredIn)*time.Hour),
		Notifier:      notifiers,
		Sessions:      sessions,
		PushEnabled:   a.Sender.Configured(),
		PushPublicKey: cfg.Push.VAPIDPublicKey,
		Logger:        appLogger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		appLogger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("server stopped with error", "err", err)
	}
	if inline != nil {
		inline.Wait()
	}
	appLogger.Info("server stopped")
}
