package port

import (
	"context"
	"errors"
	"time"

	user "go-pairchat/internal/pkg/user/application/domain"
)

var (
	ErrUserNotFound  = errors.New("user repository: user not found")
	ErrEmailTaken    = errors.New("user repository: email taken")
	ErrUsernameTaken = errors.New("user repository: username taken")
)

type UserRepository interface {
	// CreateUser returns ErrEmailTaken or ErrUsernameTaken on a uniqueness violation.
	CreateUser(ctx context.Context, u user.User) error
	FindTaken(ctx context.Context, email string, username string) (emailTaken bool, usernameTaken bool, err error)
	GetUserByID(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]user.User, error)
	ListUsersExcept(ctx context.Context, id string) ([]user.User, error)
	UpdateStatus(ctx context.Context, id string, online bool, lastSeen time.Time) error
	SetPushSubscription(ctx context.Context, id string, subscription []byte) error
	// ClearPushSubscription removes the subscription only if it still equals expected.
	ClearPushSubscription(ctx context.Context, id string, expected []byte) (bool, error)
	GetPushTargets(ctx context.Context, ids []string) ([]user.PushTarget, error)
}
