package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	qport "go-pairchat/internal/infrastructure/queue/port"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/notification/application/usecase"
	"go-pairchat/pkg/logger"
)

// NotifyMessageTaskType is the queue task name for pushing a new message to its recipients.
const NotifyMessageTaskType = "notify:new_message"

// NotificationQueue is the asynq queue notification tasks run on.
const NotificationQueue = "notifications"

// NotifyMessageTaskPayload is the JSON payload transported via the queue.
type NotifyMessageTaskPayload struct {
	MessageID      string    `json:"messageId"`
	ConversationID string    `json:"conversationId"`
	Participants   [2]string `json:"participants"`
	SenderID       string    `json:"senderId"`
	SenderUsername string    `json:"senderUsername"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewNotifyMessageTask(event chat.NewMessageEvent) (qport.Task, error) {
	m := event.Message
	payload, err := json.Marshal(NotifyMessageTaskPayload{
		MessageID:      m.ID,
		ConversationID: m.ConversationID,
		Participants:   event.Participants,
		SenderID:       m.SenderID,
		SenderUsername: m.SenderUsername,
		Text:           m.Text,
		CreatedAt:      m.CreatedAt,
	})
	if err != nil {
		return qport.Task{}, err
	}
	return qport.Task{Type: NotifyMessageTaskType, Payload: payload}, nil
}

// EnqueueOptions puts the task on the notification queue with retries disabled.
func EnqueueOptions() qport.EnqueueOption {
	return qport.EnqueueOption{Queue: NotificationQueue, NoRetry: true, Timeout: time.Minute}
}

func (p NotifyMessageTaskPayload) event() chat.NewMessageEvent {
	return chat.NewMessageEvent{
		Message: chat.Message{
			ID:             p.MessageID,
			ConversationID: p.ConversationID,
			SenderID:       p.SenderID,
			SenderUsername: p.SenderUsername,
			Text:           p.Text,
			CreatedAt:      p.CreatedAt,
		},
		Participants: p.Participants,
	}
}

// RegisterNotifyMessageTask binds the fan-out to the provided server. Delivery failures are
// logged by the fan-out and never fail the task.
func RegisterNotifyMessageTask(srv qport.Server, fanOut *usecase.FanOutUseCase, log logger.Logger) {
	srv.Register(NotifyMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p NotifyMessageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			log.Error("malformed notification task", "err", err)
			return fmt.Errorf("decode %s: %w", NotifyMessageTaskType, err)
		}
		fanOut.Execute(ctx, p.event())
		return nil
	})
}
