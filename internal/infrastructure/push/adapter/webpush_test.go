package adapter

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pairchat/internal/infrastructure/push/port"
)

func testSubscription(t *testing.T, endpoint string) []byte {
	t.Helper()
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	authSecret := make([]byte, 16)
	_, err = rand.Read(authSecret)
	require.NoError(t, err)

	raw, err := json.Marshal(webpush.Subscription{
		Endpoint: endpoint,
		Keys: webpush.Keys{
			P256dh: base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()),
			Auth:   base64.RawURLEncoding.EncodeToString(authSecret),
		},
	})
	require.NoError(t, err)
	return raw
}

func TestWebPushSender_Send(t *testing.T) {
	priv, pub, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)

	cases := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"happy path - created", http.StatusCreated, func(t *testing.T, err error) { assert.NoError(t, err) }},
		{"sad path - gone", http.StatusGone, func(t *testing.T, err error) { assert.True(t, errors.Is(err, port.ErrGone)) }},
		{"sad path - server error", http.StatusInternalServerError, func(t *testing.T, err error) {
			assert.Error(t, err)
			assert.False(t, errors.Is(err, port.ErrGone))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotTTL string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotTTL = r.Header.Get("TTL")
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			s := NewWebPushSender(pub, priv, "mailto:admin@example.com", 30*time.Second)
			require.True(t, s.Configured())

			err := s.Send(context.Background(), testSubscription(t, srv.URL), []byte(`{"title":"New Message"}`))
			tc.check(t, err)
			assert.Equal(t, "30", gotTTL)
		})
	}
}

func TestWebPushSender_BadSubscription(t *testing.T) {
	s := NewWebPushSender("pub", "priv", "mailto:admin@example.com", 0)

	assert.Error(t, s.Send(context.Background(), []byte(`not json`), []byte(`{}`)))
	assert.Error(t, s.Send(context.Background(), []byte(`{"keys":{}}`), []byte(`{}`)))
	assert.False(t, NewWebPushSender("", "", "", 0).Configured())
}
