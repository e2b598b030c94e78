package port

import (
	"context"
	"errors"
)

// ErrGone reports that the push endpoint no longer exists and the subscription should be dropped.
var ErrGone = errors.New("push: subscription gone")

// Sender delivers one payload to one subscription. subscription is the raw JSON
// endpoint descriptor the browser produced.
type Sender interface {
	Send(ctx context.Context, subscription []byte, payload []byte) error
	Configured() bool
}
