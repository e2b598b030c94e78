package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pairchat/config"
	cacheadapter "go-pairchat/internal/infrastructure/cache/adapter"
	"go-pairchat/pkg/logger"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Storage: config.Storage{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "app.db")},
		Push:    config.Push{VAPIDPublicKey: "your-public-key", VAPIDPrivateKey: "your-private-key", TTL: 30},
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path - sqlite without redis", func(t *testing.T) {
		a, err := Open(ctx, sqliteConfig(t), logger.Logger{})
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, a.Close()) })

		assert.IsType(t, cacheadapter.NopCache{}, a.Cache)
		assert.False(t, a.Sender.Configured())
		assert.NotNil(t, a.FanOut())

		_, err = a.Users.ListUsersExcept(ctx, "nobody")
		assert.NoError(t, err)
	})

	t.Run("happy path - redis cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := sqliteConfig(t)
		cfg.Redis.URL = "redis://" + mr.Addr()

		a, err := Open(ctx, cfg, logger.Logger{})
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, a.Close()) })
		assert.IsType(t, &cacheadapter.RedisCache{}, a.Cache)
	})

	t.Run("sad path - unknown driver", func(t *testing.T) {
		cfg := sqliteConfig(t)
		cfg.Storage.Driver = "mongo"
		_, err := Open(ctx, cfg, logger.Logger{})
		assert.Error(t, err)
	})
}
