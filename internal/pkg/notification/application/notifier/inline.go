package notifier

import (
	"context"
	"sync"
	"time"

	chat "go-pairchat/internal/pkg/chat/application/domain"
	"go-pairchat/internal/pkg/notification/application/usecase"
	"go-pairchat/pkg/logger"
)

const dispatchTimeout = 30 * time.Second

// InlineNotifier runs the fan-out on a goroutine of this process. The goroutine outlives the
// request that triggered it; Wait blocks until every started dispatch has finished.
type InlineNotifier struct {
	fanOut *usecase.FanOutUseCase
	logger logger.Logger
	wg     sync.WaitGroup
}

func NewInlineNotifier(fanOut *usecase.FanOutUseCase, log logger.Logger) *InlineNotifier {
	return &InlineNotifier{fanOut: fanOut, logger: log}
}

func (n *InlineNotifier) NotifyMessage(ctx context.Context, event chat.NewMessageEvent) {
	detached := context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.logger.Error("notification dispatch panicked", "message", event.Message.ID, "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(detached, dispatchTimeout)
		defer cancel()
		n.fanOut.Execute(ctx, event)
	}()
}

func (n *InlineNotifier) Wait() {
	n.wg.Wait()
}
