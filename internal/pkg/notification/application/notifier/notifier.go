package notifier

import (
	"context"

	chat "go-pairchat/internal/pkg/chat/application/domain"
	chatusecase "go-pairchat/internal/pkg/chat/application/usecase"
)

// Notifiers fans one event out to several notifiers in order.
type Notifiers []chatusecase.MessageNotifier

var _ chatusecase.MessageNotifier = Notifiers(nil)

func (n Notifiers) NotifyMessage(ctx context.Context, event chat.NewMessageEvent) {
	for _, next := range n {
		if next != nil {
			next.NotifyMessage(ctx, event)
		}
	}
}
