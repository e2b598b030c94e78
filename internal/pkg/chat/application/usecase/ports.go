package usecase

import (
	"context"
	"time"

	chat "go-pairchat/internal/pkg/chat/application/domain"
	user "go-pairchat/internal/pkg/user/application/domain"
)

// UserDirectory resolves participant profiles.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*user.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]user.User, error)
}

// MessageNotifier is told about every stored message. It must not block the caller
// on delivery and has no way to fail the send.
type MessageNotifier interface {
	NotifyMessage(ctx context.Context, event chat.NewMessageEvent)
}

var now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
