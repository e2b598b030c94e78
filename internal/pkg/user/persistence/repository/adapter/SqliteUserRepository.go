package adapter

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	user "go-pairchat/internal/pkg/user/application/domain"
	"go-pairchat/internal/pkg/user/persistence/repository/port"
)

const sqliteUserColumns = `id, username, email, password_hash, is_online, last_seen, created_at, push_subscription`

// SqliteUserRepository stores users in a single SQLite file. Timestamps are unix microseconds.
type SqliteUserRepository struct {
	db *sql.DB
}

func NewSqliteUserRepository(db *sql.DB) *SqliteUserRepository {
	return &SqliteUserRepository{db: db}
}

var _ port.UserRepository = (*SqliteUserRepository)(nil)

func (r *SqliteUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, is_online, last_seen, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.IsOnline, u.LastSeen.UnixMicro(), u.CreatedAt.UnixMicro())
	if err == nil {
		return nil
	}
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		switch {
		case strings.Contains(sqlErr.Error(), "users.email"):
			return port.ErrEmailTaken
		case strings.Contains(sqlErr.Error(), "users.username"):
			return port.ErrUsernameTaken
		}
	}
	return errors.Wrap(err, "SqliteUserRepository.CreateUser")
}

func (r *SqliteUserRepository) FindTaken(ctx context.Context, email string, username string) (bool, bool, error) {
	var emailTaken, usernameTaken bool
	err := r.db.QueryRowContext(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM users WHERE email = ?),
			EXISTS (SELECT 1 FROM users WHERE username = ?)
	`, email, username).Scan(&emailTaken, &usernameTaken)
	if err != nil {
		return false, false, errors.Wrap(err, "SqliteUserRepository.FindTaken")
	}
	return emailTaken, usernameTaken, nil
}

func (r *SqliteUserRepository) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteUserColumns+` FROM users WHERE id = ?`, id)
	u, err := scanSqliteUser(row)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteUserRepository.GetUserByID")
	}
	return u, nil
}

func (r *SqliteUserRepository) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteUserColumns+` FROM users WHERE email = ?`, email)
	u, err := scanSqliteUser(row)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteUserRepository.GetUserByEmail")
	}
	return u, nil
}

func (r *SqliteUserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + sqliteUserColumns + ` FROM users WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := r.db.QueryContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteUserRepository.GetUsersByIDs")
	}
	return collectSqliteUsers(rows, "SqliteUserRepository.GetUsersByIDs")
}

func (r *SqliteUserRepository) ListUsersExcept(ctx context.Context, id string) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sqliteUserColumns+` FROM users WHERE id <> ? ORDER BY username`, id)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteUserRepository.ListUsersExcept")
	}
	return collectSqliteUsers(rows, "SqliteUserRepository.ListUsersExcept")
}

func (r *SqliteUserRepository) UpdateStatus(ctx context.Context, id string, online bool, lastSeen time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_online = ?, last_seen = ? WHERE id = ?`, online, lastSeen.UnixMicro(), id)
	if err != nil {
		return errors.Wrap(err, "SqliteUserRepository.UpdateStatus")
	}
	return requireAffected(res, "SqliteUserRepository.UpdateStatus")
}

func (r *SqliteUserRepository) SetPushSubscription(ctx context.Context, id string, subscription []byte) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET push_subscription = ? WHERE id = ?`, string(subscription), id)
	if err != nil {
		return errors.Wrap(err, "SqliteUserRepository.SetPushSubscription")
	}
	return requireAffected(res, "SqliteUserRepository.SetPushSubscription")
}

func (r *SqliteUserRepository) ClearPushSubscription(ctx context.Context, id string, expected []byte) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET push_subscription = NULL
		WHERE id = ? AND push_subscription = ?
	`, id, string(expected))
	if err != nil {
		return false, errors.Wrap(err, "SqliteUserRepository.ClearPushSubscription")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "SqliteUserRepository.ClearPushSubscription.RowsAffected")
	}
	return n > 0, nil
}

func (r *SqliteUserRepository) GetPushTargets(ctx context.Context, ids []string) ([]user.PushTarget, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, push_subscription FROM users WHERE push_subscription IS NOT NULL AND id IN (` + placeholders(len(ids)) + `)`
	rows, err := r.db.QueryContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return nil, errors.Wrap(err, "SqliteUserRepository.GetPushTargets")
	}
	defer rows.Close()

	var targets []user.PushTarget
	for rows.Next() {
		var (
			t   user.PushTarget
			sub string
		)
		if err := rows.Scan(&t.UserID, &sub); err != nil {
			return nil, errors.Wrap(err, "SqliteUserRepository.GetPushTargets.Scan")
		}
		t.Subscription = []byte(sub)
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "SqliteUserRepository.GetPushTargets.Rows")
	}
	return targets, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSqliteUser(row rowScanner) (*user.User, error) {
	var (
		u                   user.User
		lastSeen, createdAt int64
		sub                 sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsOnline, &lastSeen, &createdAt, &sub)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.LastSeen = time.UnixMicro(lastSeen).UTC()
	u.CreatedAt = time.UnixMicro(createdAt).UTC()
	if sub.Valid {
		u.PushSubscription = []byte(sub.String)
	}
	return &u, nil
}

func collectSqliteUsers(rows *sql.Rows, op string) ([]user.User, error) {
	defer rows.Close()
	var users []user.User
	for rows.Next() {
		u, err := scanSqliteUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, op+".Scan")
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, op+".Rows")
	}
	return users, nil
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op+".RowsAffected")
	}
	if n == 0 {
		return port.ErrUserNotFound
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
