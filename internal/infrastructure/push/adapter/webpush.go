package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"go-pairchat/internal/infrastructure/push/port"
)

// WebPushSender signs notifications with VAPID keys and posts them to the subscription endpoint.
type WebPushSender struct {
	publicKey  string
	privateKey string
	subscriber string
	ttl        int
	client     *http.Client
}

// NewWebPushSender builds a sender. subscriber is a contact address, with or without "mailto:".
func NewWebPushSender(publicKey, privateKey, subscriber string, ttl time.Duration) *WebPushSender {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &WebPushSender{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: strings.TrimPrefix(subscriber, "mailto:"),
		ttl:        int(ttl.Seconds()),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

var _ port.Sender = (*WebPushSender)(nil)

func (s *WebPushSender) Configured() bool {
	return s.publicKey != "" && s.privateKey != ""
}

func (s *WebPushSender) Send(ctx context.Context, subscription []byte, payload []byte) error {
	var sub webpush.Subscription
	if err := json.Unmarshal(subscription, &sub); err != nil {
		return fmt.Errorf("webpush: decode subscription: %w", err)
	}
	if sub.Endpoint == "" {
		return fmt.Errorf("webpush: subscription has no endpoint")
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &sub, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             s.ttl,
	})
	if err != nil {
		return fmt.Errorf("webpush: send: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusGone:
		return port.ErrGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("webpush: endpoint responded %d", resp.StatusCode)
	}
	return nil
}
