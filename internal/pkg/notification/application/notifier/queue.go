package notifier

import (
	"context"

	qport "go-pairchat/internal/infrastructure/queue/port"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/notification/application/task"
	"go-pairchat/pkg/logger"
)

// QueueNotifier hands events to the background queue. Enqueue failures are logged and dropped.
type QueueNotifier struct {
	client qport.Client
	logger logger.Logger
}

func NewQueueNotifier(client qport.Client, log logger.Logger) *QueueNotifier {
	return &QueueNotifier{client: client, logger: log}
}

func (n *QueueNotifier) NotifyMessage(ctx context.Context, event chat.NewMessageEvent) {
	if len(event.Recipients()) == 0 {
		return
	}
	t, err := task.NewNotifyMessageTask(event)
	if err != nil {
		n.logger.Error("encoding notification task failed", "message", event.Message.ID, "err", err)
		return
	}
	id, err := n.client.Enqueue(context.WithoutCancel(ctx), t, task.EnqueueOptions())
	if err != nil {
		n.logger.Error("enqueue notification failed", "message", event.Message.ID, "err", err)
		return
	}
	n.logger.Debug("notification enqueued", "message", event.Message.ID, "task", id)
}
