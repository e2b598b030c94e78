// Package app opens the infrastructure both binaries share.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"go-pairchat/config"
	cacheadapter "go-pairchat/internal/infrastructure/cache/adapter"
	cacheport "go-pairchat/internal/infrastructure/cache/port"
	"go-pairchat/internal/infrastructure/database"
	pushadapter "go-pairchat/internal/infrastructure/push/adapter"
	pushport "go-pairchat/internal/infrastructure/push/port"
	chatadapter "go-pairchat/internal/pkg/chat/persistence/repository/adapter"
	chatport "go-pairchat/internal/pkg/chat/persistence/repository/port"
	notificationusecase "go-pairchat/internal/pkg/notification/application/usecase"
	useradapter "go-pairchat/internal/pkg/user/persistence/repository/adapter"
	userport "go-pairchat/internal/pkg/user/persistence/repository/port"
	"go-pairchat/pkg/logger"
)

type App struct {
	Config *config.Config
	Logger logger.Logger

	Users  userport.UserRepository
	Chats  chatport.ChatRepository
	Cache  cacheport.Cache
	Sender pushport.Sender

	closers []func() error
}

// Open connects storage and cache according to cfg.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	if err := a.openStorage(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Cache = cacheadapter.NopCache{}
	if cfg.QueueEnabled() {
		cache, err := cacheadapter.NewRedisAdapter(ctx, cfg.Redis.URL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Cache = cache
		a.closers = append(a.closers, cache.Close)
	}
	a.Chats = chatadapter.NewCachedChatRepository(a.Chats, a.Cache, log)

	publicKey, privateKey := "", ""
	if cfg.Push.Enabled() {
		publicKey, privateKey = cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey
	} else {
		log.Warn("VAPID keys not configured, push notifications disabled")
	}
	a.Sender = pushadapter.NewWebPushSender(publicKey, privateKey, cfg.Push.Subject, time.Duration(cfg.Push.TTL)*time.Second)
	return a, nil
}

func (a *App) openStorage(ctx context.Context) error {
	switch a.Config.Storage.Driver {
	case config.DriverPostgres:
		pool, err := database.Connect(ctx, a.Config.Storage.DSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		a.Users = useradapter.NewPgUserRepository(pool)
		a.Chats = chatadapter.NewPgChatRepository(pool)
		a.Logger.Info("storage ready", "driver", config.DriverPostgres)
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, a.Config.Storage.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.Users = useradapter.NewSqliteUserRepository(db)
		a.Chats = chatadapter.NewSqliteChatRepository(db)
		a.Logger.Info("storage ready", "driver", config.DriverSQLite, "path", a.Config.Storage.SQLitePath)
	default:
		return fmt.Errorf("unknown storage driver %q", a.Config.Storage.Driver)
	}
	return nil
}

// FanOut builds the push dispatcher over this app's storage and sender.
func (a *App) FanOut() *notificationusecase.FanOutUseCase {
	return notificationusecase.NewFanOutUseCase(a.Users, a.Sender, a.Logger)
}

// Close releases everything Open acquired, newest first.
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	return err
}
