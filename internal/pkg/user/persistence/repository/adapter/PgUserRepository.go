package adapter

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	user "go-pairchat/internal/pkg/user/application/domain"
	"go-pairchat/internal/pkg/user/persistence/repository/port"
)

const pgUniqueViolation = "23505"

const pgUserColumns = `id::text, username, email, password_hash, is_online, last_seen, created_at, push_subscription::text`

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ port.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, is_online, last_seen, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.IsOnline, u.LastSeen, u.CreatedAt)
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return port.ErrEmailTaken
		case "users_username_key":
			return port.ErrUsernameTaken
		}
	}
	return errors.Wrap(err, "PgUserRepository.CreateUser")
}

func (r *PgUserRepository) FindTaken(ctx context.Context, email string, username string) (bool, bool, error) {
	var emailTaken, usernameTaken bool
	err := r.pool.QueryRow(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM users WHERE email = $1),
			EXISTS (SELECT 1 FROM users WHERE username = $2)
	`, email, username).Scan(&emailTaken, &usernameTaken)
	if err != nil {
		return false, false, errors.Wrap(err, "PgUserRepository.FindTaken")
	}
	return emailTaken, usernameTaken, nil
}

func (r *PgUserRepository) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+pgUserColumns+` FROM users WHERE id = $1::uuid`, id)
	u, err := scanPgUser(row)
	if err != nil {
		return nil, errors.Wrap(err, "PgUserRepository.GetUserByID")
	}
	return u, nil
}

func (r *PgUserRepository) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+pgUserColumns+` FROM users WHERE email = $1`, email)
	u, err := scanPgUser(row)
	if err != nil {
		return nil, errors.Wrap(err, "PgUserRepository.GetUserByEmail")
	}
	return u, nil
}

func (r *PgUserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+pgUserColumns+` FROM users WHERE id = ANY($1::text[]::uuid[])`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "PgUserRepository.GetUsersByIDs")
	}
	return collectPgUsers(rows, "PgUserRepository.GetUsersByIDs")
}

func (r *PgUserRepository) ListUsersExcept(ctx context.Context, id string) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+pgUserColumns+` FROM users WHERE id <> $1::uuid ORDER BY username`, id)
	if err != nil {
		return nil, errors.Wrap(err, "PgUserRepository.ListUsersExcept")
	}
	return collectPgUsers(rows, "PgUserRepository.ListUsersExcept")
}

func (r *PgUserRepository) UpdateStatus(ctx context.Context, id string, online bool, lastSeen time.Time) error {
	ct, err := r.pool.Exec(ctx, `UPDATE users SET is_online = $2, last_seen = $3 WHERE id = $1::uuid`, id, online, lastSeen)
	if err != nil {
		return errors.Wrap(err, "PgUserRepository.UpdateStatus")
	}
	if ct.RowsAffected() == 0 {
		return port.ErrUserNotFound
	}
	return nil
}

func (r *PgUserRepository) SetPushSubscription(ctx context.Context, id string, subscription []byte) error {
	ct, err := r.pool.Exec(ctx, `UPDATE users SET push_subscription = $2::jsonb WHERE id = $1::uuid`, id, string(subscription))
	if err != nil {
		return errors.Wrap(err, "PgUserRepository.SetPushSubscription")
	}
	if ct.RowsAffected() == 0 {
		return port.ErrUserNotFound
	}
	return nil
}

func (r *PgUserRepository) ClearPushSubscription(ctx context.Context, id string, expected []byte) (bool, error) {
	ct, err := r.pool.Exec(ctx, `
		UPDATE users SET push_subscription = NULL
		WHERE id = $1::uuid AND push_subscription = $2::jsonb
	`, id, string(expected))
	if err != nil {
		return false, errors.Wrap(err, "PgUserRepository.ClearPushSubscription")
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgUserRepository) GetPushTargets(ctx context.Context, ids []string) ([]user.PushTarget, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, push_subscription::text
		FROM users
		WHERE id = ANY($1::text[]::uuid[]) AND push_subscription IS NOT NULL
	`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "PgUserRepository.GetPushTargets")
	}
	defer rows.Close()

	var targets []user.PushTarget
	for rows.Next() {
		var (
			t   user.PushTarget
			sub string
		)
		if err := rows.Scan(&t.UserID, &sub); err != nil {
			return nil, errors.Wrap(err, "PgUserRepository.GetPushTargets.Scan")
		}
		t.Subscription = []byte(sub)
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "PgUserRepository.GetPushTargets.Rows")
	}
	return targets, nil
}

func scanPgUser(row pgx.Row) (*user.User, error) {
	var (
		u   user.User
		sub *string
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsOnline, &u.LastSeen, &u.CreatedAt, &sub)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if sub != nil {
		u.PushSubscription = []byte(*sub)
	}
	u.LastSeen = u.LastSeen.UTC()
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func collectPgUsers(rows pgx.Rows, op string) ([]user.User, error) {
	defer rows.Close()
	var users []user.User
	for rows.Next() {
		u, err := scanPgUser(rows)
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
