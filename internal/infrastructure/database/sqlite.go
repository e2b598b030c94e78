package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens (or creates) a SQLite database file with foreign keys and WAL enabled
// and bootstraps the schema. Timestamps are stored as unix microseconds.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=1&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	for i, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: migrate step %d: %w", i, err)
		}
	}
	return db, nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                TEXT PRIMARY KEY,
		username          TEXT NOT NULL UNIQUE,
		email             TEXT NOT NULL UNIQUE,
		password_hash     TEXT NOT NULL,
		is_online         INTEGER NOT NULL DEFAULT 0,
		last_seen         INTEGER NOT NULL,
		created_at        INTEGER NOT NULL,
		push_subscription TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id         TEXT PRIMARY KEY,
		user_low   TEXT NOT NULL REFERENCES users(id),
		user_high  TEXT NOT NULL REFERENCES users(id),
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE (user_low, user_high),
		CHECK (user_low < user_high)
	)`,
	`CREATE INDEX IF NOT EXISTS conversations_user_low_idx ON conversations (user_low, updated_at)`,
	`CREATE INDEX IF NOT EXISTS conversations_user_high_idx ON conversations (user_high, updated_at)`,
	`CREATE TABLE IF NOT EXISTS messages (
		seq             INTEGER PRIMARY KEY AUTOINCREMENT,
		id              TEXT NOT NULL UNIQUE,
		conversation_id TEXT NOT NULL REFERENCES conversations(id),
		sender_id       TEXT NOT NULL REFERENCES users(id),
		sender_username TEXT NOT NULL,
		body            TEXT NOT NULL,
		created_at      INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS messages_conversation_idx ON messages (conversation_id, created_at, seq)`,
}
