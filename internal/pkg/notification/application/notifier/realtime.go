package notifier

import (
	"context"
	"encoding/json"

	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/chat/presentation/dto"
	"go-pairchat/pkg/logger"
)

// SessionRouter delivers a frame to a user's live session, if any.
type SessionRouter interface {
	NotifyUser(userID string, payload []byte) bool
	Online(userID string) bool
}

// RealtimeNotifier signals online recipients over their websocket. Best effort; offline
// users simply miss the signal.
type RealtimeNotifier struct {
	router SessionRouter
	logger logger.Logger
}

func NewRealtimeNotifier(router SessionRouter, log logger.Logger) *RealtimeNotifier {
	return &RealtimeNotifier{router: router, logger: log}
}

func (n *RealtimeNotifier) NotifyMessage(_ context.Context, event chat.NewMessageEvent) {
	recipients := event.Recipients()
	if len(recipients) == 0 {
		return
	}
	payload, err := json.Marshal(dto.NewMessageSignal(event.Message))
	if err != nil {
		n.logger.Error("encoding message signal failed", "err", err)
		return
	}
	for _, id := range recipients {
		if n.router.NotifyUser(id, payload) {
			n.logger.Debug("message signal sent", "user", id, "message", event.Message.ID)
			continue
		}
		if n.router.Online(id) {
			n.logger.Warn("message signal dropped for connected user", "user", id, "message", event.Message.ID)
		}
	}
}
