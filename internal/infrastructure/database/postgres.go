package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOption tweaks the pool configuration before the pool is created.
type PoolOption func(*pgxpool.Config)

func WithMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) { c.MaxConns = n }
}

// Connect opens a pgx pool, verifies it with a ping and bootstraps the schema.
// DSNs carrying a driver suffix ("postgresql+asyncpg://", "postgres+pgx://") are accepted.
func Connect(ctx context.Context, dsn string, opts ...PoolOption) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(normalizeDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	cfg.MaxConns = 8
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = time.Hour
	cfg.HealthCheckPeriod = time.Minute
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Migrate creates the tables and indexes if they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate step %d: %w", i, err)
		}
	}
	return nil
}

func normalizeDSN(dsn string) string {
	s := strings.TrimSpace(dsn)
	for _, suffix := range []string{"+asyncpg", "+pgx"} {
		s = strings.Replace(s, "postgresql"+suffix+"://", "postgresql://", 1)
		s = strings.Replace(s, "postgres"+suffix+"://", "postgres://", 1)
	}
	return s
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                UUID PRIMARY KEY,
		username          TEXT NOT NULL,
		email             TEXT NOT NULL,
		password_hash     TEXT NOT NULL,
		is_online         BOOLEAN NOT NULL DEFAULT FALSE,
		last_seen         TIMESTAMPTZ NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL,
		push_subscription JSONB,
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id         UUID PRIMARY KEY,
		user_low   UUID NOT NULL REFERENCES users(id),
		user_high  UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT conversations_pair_key UNIQUE (user_low, user_high),
		CONSTRAINT conversations_pair_order CHECK (user_low < user_high)
	)`,
	`CREATE INDEX IF NOT EXISTS conversations_user_low_idx ON conversations (user_low, updated_at DESC)`,
	`CREATE INDEX IF NOT EXISTS conversations_user_high_idx ON conversations (user_high, updated_at DESC)`,
	`CREATE TABLE IF NOT EXISTS messages (
		seq             BIGSERIAL PRIMARY KEY,
		id              UUID NOT NULL UNIQUE,
		conversation_id UUID NOT NULL REFERENCES conversations(id),
		sender_id       UUID NOT NULL REFERENCES users(id),
		sender_username TEXT NOT NULL,
		body            TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS messages_conversation_idx ON messages (conversation_id, created_at, seq)`,
}
