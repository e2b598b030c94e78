package usecase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	pushmocks "go-pairchat/internal/infrastructure/push/mocks"
	pushport "go-pairchat/internal/infrastructure/push/port"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	notification "go-pairchat/internal/pkg/notification/application/domain"
	user "go-pairchat/internal/pkg/user/application/domain"
	usermocks "go-pairchat/internal/pkg/user/mocks"
	"go-pairchat/pkg/logger"
)

func aliceToBob() chat.NewMessageEvent {
	return chat.NewMessageEvent{
		Message:      chat.Message{ID: "m1", SenderID: "alice", SenderUsername: "alice", Text: "hi"},
		Participants: [2]string{"alice", "bob"},
	}
}

func subscription(endpoint string) []byte {
	return []byte(`{"endpoint":"` + endpoint + `","keys":{"p256dh":"k","auth":"a"}}`)
}

func TestFanOutUseCase(t *testing.T) {
	ctx := context.Background()
	log := logger.Logger{}

	t.Run("happy path - payload shape", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usermocks.NewMockUserRepository(ctrl)
		sender := pushmocks.NewMockSender(ctrl)
		uc := NewFanOutUseCase(store, sender, log)

		sender.EXPECT().Configured().Return(true)
		store.EXPECT().GetPushTargets(gomock.Any(), []string{"bob"}).
			Return([]user.PushTarget{{UserID: "bob", Subscription: subscription("https://push/bob")}}, nil)
		var sent []byte
		sender.EXPECT().Send(gomock.Any(), subscription("https://push/bob"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []byte, payload []byte) error {
				sent = payload
				return nil
			})

		res := uc.Execute(ctx, aliceToBob())
		assert.NoError(t, res.Err)
		assert.Equal(t, 1, res.Delivered)

		var got notification.Payload
		require.NoError(t, json.Unmarshal(sent, &got))
		assert.Equal(t, notification.NewMessagePayload("alice", "hi"), got)
		assert.Equal(t, "alice: hi", got.Body)
		assert.Equal(t, []int{100, 50, 100}, got.Vibrate)
	})

	t.Run("happy path - one failure does not stop the rest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usermocks.NewMockUserRepository(ctrl)
		sender := pushmocks.NewMockSender(ctrl)
		uc := NewFanOutUseCase(store, sender, log)

		sender.EXPECT().Configured().Return(true)
		store.EXPECT().GetPushTargets(gomock.Any(), gomock.Any()).Return([]user.PushTarget{
			{UserID: "bob", Subscription: subscription("https://push/bob")},
			{UserID: "carol", Subscription: subscription("https://push/carol")},
			{UserID: "dave", Subscription: subscription("https://push/dave")},
		}, nil)
		sender.EXPECT().Send(gomock.Any(), subscription("https://push/bob"), gomock.Any()).Return(nil)
		sender.EXPECT().Send(gomock.Any(), subscription("https://push/carol"), gomock.Any()).Return(stderrors.New("push: status 500"))
		sender.EXPECT().Send(gomock.Any(), subscription("https://push/dave"), gomock.Any()).Return(nil)

		res := uc.Execute(ctx, aliceToBob())
		assert.Equal(t, 3, res.Attempted)
		assert.Equal(t, 2, res.Delivered)
		assert.Len(t, multierr.Errors(res.Err), 1)
	})

	t.Run("happy path - panicking sender only fails its own target", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usermocks.NewMockUserRepository(ctrl)
		sender := pushmocks.NewMockSender(ctrl)
		uc := NewFanOutUseCase(store, sender, log)

		sender.EXPECT().Configured().Return(true)
		store.EXPECT().GetPushTargets(gomock.Any(), gomock.Any()).Return([]user.PushTarget{
			{UserID: "bob", Subscription: subscription("https://push/bob")},
			{UserID: "carol", Subscription: subscription("https://push/carol")},
		}, nil)
		sender.EXPECT().Send(gomock.Any(), subscription("https://push/bob"), gomock.Any()).
			DoAndReturn(func(context.Context, []byte, []byte) error { panic("transport blew up") })
		sender.EXPECT().Send(gomock.Any(), subscription("https://push/carol"), gomock.Any()).Return(nil)

		res := uc.Execute(ctx, aliceToBob())
		assert.Equal(t, 2, res.Attempted)
		assert.Equal(t, 1, res.Delivered)
		require.Len(t, multierr.Errors(res.Err), 1)
		assert.Contains(t, res.Err.Error(), "transport blew up")
	})

	t.Run("happy path - gone subscription is pruned conditionally", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usermocks.NewMockUserRepository(ctrl)
		sender := pushmocks.NewMockSender(ctrl)
		uc := NewFanOutUseCase(store, sender, log)

		sub := subscription("https://push/bob")
		sender.EXPECT().Configured().Return(true)
		store.EXPECT().GetPushTargets(gomock.Any(), gomock.Any()).Return([]user.PushTarget{{UserID: "bob", Subscription: sub}}, nil)
		sender.EXPECT().Send(gomock.Any(), sub, gomock.Any()).Return(pushport.ErrGone)
		store.EXPECT().ClearPushSubscription(gomock.Any(), "bob", sub).Return(true, nil)

		res := uc.Execute(ctx, aliceToBob())
		assert.NoError(t, res.Err)
		assert.Equal(t, 1, res.Pruned)
		assert.Zero(t, res.Delivered)
	})

	t.Run("happy path - not configured is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := pushmocks.NewMockSender(ctrl)
		uc := NewFanOutUseCase(usermocks.NewMockUserRepository(ctrl), sender, log)

		sender.EXPECT().Configured().Return(false)

		res := uc.Execute(ctx, aliceToBob())
		assert.Equal(t, FanOutResult{}, res)
	})

	t.Run("happy path - recipients without subscription", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usermocks.NewMockUserRepository(ctrl)
		sender := pushmocks.NewMockSender(ctrl)
		uc := NewFanOutUseCase(store, sender, log)

		sender.EXPECT().Configured().Return(true)
		store.EXPECT().GetPushTargets(gomock.Any(), []string{"bob"}).Return(nil, nil)

		res := uc.Execute(ctx, aliceToBob())
		assert.Zero(t, res.Attempted)
		assert.NoError(t, res.Err)
	})

	t.Run("sad path - store failure is reported, not raised", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := usermocks.NewMockUserRepository(ctrl)
		sender := pushmocks.NewMockSender(ctrl)
		uc := NewFanOutUseCase(store, sender, log)

		sender.EXPECT().Configured().Return(true)
		store.EXPECT().GetPushTargets(gomock.Any(), gomock.Any()).Return(nil, stderrors.New("db down"))

		res := uc.Execute(ctx, aliceToBob())
		assert.Error(t, res.Err)
	})
}
