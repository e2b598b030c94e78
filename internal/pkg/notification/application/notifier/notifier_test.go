package notifier

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pushmocks "go-pairchat/internal/infrastructure/push/mocks"
	qport "go-pairchat/internal/infrastructure/queue/port"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	chatmocks "go-pairchat/internal/pkg/chat/mocks"
	"go-pairchat/internal/pkg/chat/presentation/dto"
	"go-pairchat/internal/pkg/notification/application/task"
	"go-pairchat/internal/pkg/notification/application/usecase"
	user "go-pairchat/internal/pkg/user/application/domain"
	usermocks "go-pairchat/internal/pkg/user/mocks"
	"go-pairchat/pkg/logger"
)

var event = chat.NewMessageEvent{
	Message:      chat.Message{ID: "m1", ConversationID: "c1", SenderID: "alice", SenderUsername: "alice", Text: "hi"},
	Participants: [2]string{"alice", "bob"},
}

type fakeClient struct {
	mu    sync.Mutex
	tasks []qport.Task
	opts  []qport.EnqueueOption
	err   error
}

func (f *fakeClient) Enqueue(_ context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.tasks = append(f.tasks, t)
	f.opts = append(f.opts, opts...)
	return "task-1", nil
}

func (f *fakeClient) Close() error { return nil }

type fakeRouter struct {
	online  map[string]bool
	full    map[string]bool
	frames  map[string][]byte
	checked []string
}

func (f *fakeRouter) NotifyUser(userID string, payload []byte) bool {
	if !f.online[userID] || f.full[userID] {
		return false
	}
	f.frames[userID] = payload
	return true
}

func (f *fakeRouter) Online(userID string) bool {
	f.checked = append(f.checked, userID)
	return f.online[userID]
}

func TestQueueNotifier(t *testing.T) {
	t.Run("happy path - enqueues without retries", func(t *testing.T) {
		client := &fakeClient{}
		n := NewQueueNotifier(client, logger.Logger{})

		n.NotifyMessage(context.Background(), event)

		require.Len(t, client.tasks, 1)
		assert.Equal(t, task.NotifyMessageTaskType, client.tasks[0].Type)
		require.Len(t, client.opts, 1)
		assert.True(t, client.opts[0].NoRetry)
		assert.Equal(t, task.NotificationQueue, client.opts[0].Queue)
	})

	t.Run("sad path - enqueue failure is swallowed", func(t *testing.T) {
		client := &fakeClient{err: stderrors.New("redis down")}
		n := NewQueueNotifier(client, logger.Logger{})

		assert.NotPanics(t, func() { n.NotifyMessage(context.Background(), event) })
	})

	t.Run("happy path - no recipients, nothing queued", func(t *testing.T) {
		client := &fakeClient{}
		n := NewQueueNotifier(client, logger.Logger{})

		self := event
		self.Participants = [2]string{"alice", "alice"}
		n.NotifyMessage(context.Background(), self)
		assert.Empty(t, client.tasks)
	})
}

func TestInlineNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := usermocks.NewMockUserRepository(ctrl)
	sender := pushmocks.NewMockSender(ctrl)
	n := NewInlineNotifier(usecase.NewFanOutUseCase(store, sender, logger.Logger{}), logger.Logger{})

	sender.EXPECT().Configured().Return(true)
	store.EXPECT().GetPushTargets(gomock.Any(), []string{"bob"}).
		Return([]user.PushTarget{{UserID: "bob", Subscription: []byte(`{}`)}}, nil)
	var sendErr error
	sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _, _ []byte) error {
		sendErr = ctx.Err()
		return nil
	})

	// the dispatch must survive the request context being canceled
	ctx, cancel := context.WithCancel(context.Background())
	n.NotifyMessage(ctx, event)
	cancel()
	n.Wait()
	assert.NoError(t, sendErr)
}

func TestRealtimeNotifier(t *testing.T) {
	router := &fakeRouter{online: map[string]bool{"bob": true, "alice": true}, frames: map[string][]byte{}}
	n := NewRealtimeNotifier(router, logger.Logger{})

	n.NotifyMessage(context.Background(), event)

	require.Contains(t, router.frames, "bob")
	assert.NotContains(t, router.frames, "alice")

	var signal dto.MessageSignal
	require.NoError(t, json.Unmarshal(router.frames["bob"], &signal))
	assert.Equal(t, "message", signal.Type)
	assert.Equal(t, "c1", signal.ConversationID)
	assert.Equal(t, "hi", signal.Message.Text)
	assert.False(t, signal.Message.Edited)
}

func TestRealtimeNotifier_Undelivered(t *testing.T) {
	t.Run("happy path - offline recipient is skipped", func(t *testing.T) {
		router := &fakeRouter{online: map[string]bool{}, frames: map[string][]byte{}}
		NewRealtimeNotifier(router, logger.Logger{}).NotifyMessage(context.Background(), event)

		assert.Empty(t, router.frames)
		assert.Equal(t, []string{"bob"}, router.checked)
	})

	t.Run("happy path - full session buffer is not retried", func(t *testing.T) {
		router := &fakeRouter{
			online: map[string]bool{"bob": true},
			full:   map[string]bool{"bob": true},
			frames: map[string][]byte{},
		}
		NewRealtimeNotifier(router, logger.Logger{}).NotifyMessage(context.Background(), event)

		assert.Empty(t, router.frames)
		assert.Equal(t, []string{"bob"}, router.checked)
	})
}

func TestNotifiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := chatmocks.NewMockMessageNotifier(ctrl)
	second := chatmocks.NewMockMessageNotifier(ctrl)

	gomock.InOrder(
		first.EXPECT().NotifyMessage(gomock.Any(), event),
		second.EXPECT().NotifyMessage(gomock.Any(), event),
	)

	Notifiers{first, nil, second}.NotifyMessage(context.Background(), event)
}
