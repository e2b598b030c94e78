package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	pushport "go-pairchat/internal/infrastructure/push/port"
	chat "go-pairchat/internal/pkg/chat/application/domain"
	notification "go-pairchat/internal/pkg/notification/application/domain"
	user "go-pairchat/internal/pkg/user/application/domain"
	"go-pairchat/pkg/logger"
)

// SubscriptionStore reads and prunes stored push subscriptions.
type SubscriptionStore interface {
	GetPushTargets(ctx context.Context, userIDs []string) ([]user.PushTarget, error)
	// ClearPushSubscription removes the subscription only if it still equals expected.
	ClearPushSubscription(ctx context.Context, userID string, expected []byte) (bool, error)
}

// FanOutResult summarizes one dispatch.
type FanOutResult struct {
	Attempted int
	Delivered int
	Pruned    int
	Err       error
}

// FanOutUseCase pushes a new message to every subscribed recipient. One recipient failing
// never affects the others, and nothing is retried.
type FanOutUseCase struct {
	Store  SubscriptionStore
	Sender pushport.Sender
	logger logger.Logger
}

func NewFanOutUseCase(store SubscriptionStore, sender pushport.Sender, log logger.Logger) *FanOutUseCase {
	return &FanOutUseCase{Store: store, Sender: sender, logger: log}
}

func (uc *FanOutUseCase) Execute(ctx context.Context, event chat.NewMessageEvent) FanOutResult {
	var res FanOutResult
	if uc.Sender == nil || !uc.Sender.Configured() {
		uc.logger.Debug("push not configured, skipping notification", "message", event.Message.ID)
		return res
	}
	recipients := event.Recipients()
	if len(recipients) == 0 {
		return res
	}

	targets, err := uc.Store.GetPushTargets(ctx, recipients)
	if err != nil {
		uc.logger.Error("loading push subscriptions failed", "message", event.Message.ID, "err", err)
		res.Err = err
		return res
	}
	if len(targets) == 0 {
		return res
	}

	payload, err := notification.NewMessagePayload(event.Message.SenderUsername, event.Message.Text).Encode()
	if err != nil {
		uc.logger.Error("encoding push payload failed", "err", err)
		res.Err = err
		return res
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	res.Attempted = len(targets)
	for _, target := range targets {
		wg.Add(1)
		go func(target user.PushTarget) {
			defer wg.Done()
			delivered, pruned, err := uc.deliver(ctx, target, payload)
			mu.Lock()
			defer mu.Unlock()
			if delivered {
				res.Delivered++
			}
			if pruned {
				res.Pruned++
			}
			res.Err = multierr.Append(res.Err, err)
		}(target)
	}
	wg.Wait()

	if res.Err != nil {
		uc.logger.Warn("push notification failures",
			"message", event.Message.ID,
			"attempted", res.Attempted,
			"delivered", res.Delivered,
			"failed", len(multierr.Errors(res.Err)),
			"err", res.Err)
	} else {
		uc.logger.Debug("push notifications sent", "message", event.Message.ID, "delivered", res.Delivered, "pruned", res.Pruned)
	}
	return res
}

// deliver turns a panic in the sender into this target's error.
func (uc *FanOutUseCase) deliver(ctx context.Context, target user.PushTarget, payload []byte) (delivered, pruned bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			delivered, pruned = false, false
			err = fmt.Errorf("push delivery to %s panicked: %v", target.UserID, r)
		}
	}()

	err = uc.Sender.Send(ctx, target.Subscription, payload)
	if err == nil {
		return true, false, nil
	}
	if !stderrors.Is(err, pushport.ErrGone) {
		return false, false, err
	}

	cleared, clearErr := uc.Store.ClearPushSubscription(ctx, target.UserID, target.Subscription)
	if clearErr != nil {
		return false, false, clearErr
	}
	if cleared {
		uc.logger.Info("removed expired push subscription", "user", target.UserID)
	}
	return false, cleared, nil
}
