package task

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pushmocks "go-pairchat/internal/infrastructure/push/mocks"
	qport "go-pairchat/internal/infrastructure/queue/port"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/notification/application/usecase"
	user "go-pairchat/internal/pkg/user/application/domain"
	usermocks "go-pairchat/internal/pkg/user/mocks"
	"go-pairchat/pkg/logger"
)

type fakeServer struct {
	handlers map[string]qport.Handler
}

func (s *fakeServer) Register(taskType string, h qport.Handler) { s.handlers[taskType] = h }
func (s *fakeServer) Run(ctx context.Context) error            { <-ctx.Done(); return nil }

func TestNotifyMessageTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := usermocks.NewMockUserRepository(ctrl)
	sender := pushmocks.NewMockSender(ctrl)
	srv := &fakeServer{handlers: map[string]qport.Handler{}}
	RegisterNotifyMessageTask(srv, usecase.NewFanOutUseCase(store, sender, logger.Logger{}), logger.Logger{})

	handler, ok := srv.handlers[NotifyMessageTaskType]
	require.True(t, ok)

	t.Run("happy path - payload round trip reaches the fan-out", func(t *testing.T) {
		event := chat.NewMessageEvent{
			Message: chat.Message{
				ID: "m1", ConversationID: "c1", SenderID: "bob", SenderUsername: "bob", Text: "hello",
				CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
			},
			Participants: [2]string{"alice", "bob"},
		}
		task, err := NewNotifyMessageTask(event)
		require.NoError(t, err)

		sender.EXPECT().Configured().Return(true)
		store.EXPECT().GetPushTargets(gomock.Any(), []string{"alice"}).
			Return([]user.PushTarget{{UserID: "alice", Subscription: []byte(`{}`)}}, nil)
		sender.EXPECT().Send(gomock.Any(), []byte(`{}`), gomock.Any()).Return(nil)

		assert.NoError(t, handler(context.Background(), task))
	})

	t.Run("sad path - malformed payload", func(t *testing.T) {
		err := handler(context.Background(), qport.Task{Type: NotifyMessageTaskType, Payload: []byte("{")})
		assert.Error(t, err)
	})

	t.Run("happy path - enqueue options", func(t *testing.T) {
		opt := EnqueueOptions()
		assert.True(t, opt.NoRetry)
		assert.Equal(t, NotificationQueue, opt.Queue)
	})
}
