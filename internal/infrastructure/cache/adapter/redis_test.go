package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pairchat/internal/infrastructure/cache/port"
)

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := NewRedisAdapter(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	t.Run("happy path - set and get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k1", "v1", time.Minute))
		got, err := c.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, "v1", got)
	})

	t.Run("sad path - miss", func(t *testing.T) {
		_, err := c.Get(ctx, "absent")
		assert.True(t, errors.Is(err, port.ErrMiss))
	})

	t.Run("happy path - ttl expiry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", "v", time.Second))
		mr.FastForward(2 * time.Second)
		_, err := c.Get(ctx, "short")
		assert.True(t, errors.Is(err, port.ErrMiss))
	})

	t.Run("happy path - delete", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "gone", "v", 0))
		n, err := c.Del(ctx, "gone", "never-existed")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = c.Del(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	assert.NoError(t, c.Ping(ctx))
}

func TestNewRedisAdapter_Errors(t *testing.T) {
	_, err := NewRedisAdapter(context.Background(), "")
	assert.Error(t, err)

	_, err = NewRedisAdapter(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestNopCache(t *testing.T) {
	var c port.Cache = NopCache{}
	require.NoError(t, c.Set(context.Background(), "k", "v", time.Minute))
	_, err := c.Get(context.Background(), "k")
	assert.True(t, errors.Is(err, port.ErrMiss))
}
