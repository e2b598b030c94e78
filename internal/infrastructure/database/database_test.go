package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	assert.Equal(t, "postgresql://u:p@h/db", normalizeDSN(" postgresql+asyncpg://u:p@h/db "))
	assert.Equal(t, "postgres://u:p@h/db", normalizeDSN("postgres+pgx://u:p@h/db"))
	assert.Equal(t, "postgres://u:p@h/db?sslmode=disable", normalizeDSN("postgres://u:p@h/db?sslmode=disable"))
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chat.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'conversations', 'messages')`,
	).Scan(&n))
	assert.Equal(t, 3, n)
	require.NoError(t, db.Close())

	// schema bootstrap is idempotent
	db, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
