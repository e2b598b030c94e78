package adapter

import (
	"context"
	"time"

	"go-pairchat/internal/infrastructure/cache/port"
)

// NopCache always misses. Used when no Redis is configured.
type NopCache struct{}

var _ port.Cache = NopCache{}

func (NopCache) Get(context.Context, string) (string, error) { return "", port.ErrMiss }
func (NopCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (NopCache) Del(context.Context, ...string) (int64, error) { return 0, nil }
func (NopCache) Ping(context.Context) error { return nil }
func (NopCache) Close() error { return nil }
