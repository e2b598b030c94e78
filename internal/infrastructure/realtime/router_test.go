package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialPair returns a server-side Connection for userID and the client end of the socket.
func dialPair(t *testing.T, userID string) (*Connection, *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	serverSide := make(chan *Connection, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverSide <- NewConnection(userID, ws)
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case conn := <-serverSide:
		return conn, client
	case <-time.After(2 * time.Second):
		t.Fatal("server side connection not established")
		return nil, nil
	}
}

func TestRouter_NotifyUser(t *testing.T) {
	r := NewRouter()
	defer r.Close()

	conn, client := dialPair(t, "bob")
	r.Attach(conn)
	assert.True(t, r.Online("bob"))

	require.True(t, r.NotifyUser("bob", []byte(`{"type":"message"}`)))
	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"message"}`, string(data))

	assert.False(t, r.NotifyUser("carol", []byte(`{}`)))
}

func TestRouter_ReplaceAndDetach(t *testing.T) {
	r := NewRouter()
	defer r.Close()

	first, _ := dialPair(t, "alice")
	second, _ := dialPair(t, "alice")

	r.Attach(first)
	r.Attach(second)

	select {
	case <-first.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("replaced session was not closed")
	}

	// detaching a stale session keeps the current one
	r.Detach(first)
	assert.True(t, r.Online("alice"))

	r.Detach(second)
	assert.False(t, r.Online("alice"))
}

func TestConnection_SendAfterClose(t *testing.T) {
	conn, _ := dialPair(t, "dave")
	conn.Close(websocket.CloseNormalClosure, "bye")
	assert.ErrorIs(t, conn.Send([]byte("x")), ErrClosed)
}
