package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Router tracks the active websocket session of each user. A new session for a user replaces the old one.
type Router struct {
	mu    sync.RWMutex
	users map[string]*Connection
}

func NewRouter() *Router {
	return &Router{users: make(map[string]*Connection)}
}

// Attach registers conn and starts its writer.
func (r *Router) Attach(conn *Connection) {
	r.mu.Lock()
	previous := r.users[conn.UserID]
	r.users[conn.UserID] = conn
	r.mu.Unlock()

	go conn.run()

	if previous != nil && previous != conn {
		previous.Close(4001, "session replaced")
	}
}

// Detach forgets conn if it is still the user's current session.
func (r *Router) Detach(conn *Connection) {
	r.mu.Lock()
	if r.users[conn.UserID] == conn {
		delete(r.users, conn.UserID)
	}
	r.mu.Unlock()
}

// NotifyUser sends payload to the user's session, reporting whether it was queued.
func (r *Router) NotifyUser(userID string, payload []byte) bool {
	r.mu.RLock()
	conn := r.users[userID]
	r.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Online reports whether the user has a session attached.
func (r *Router) Online(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[userID]
	return ok
}

// Close disconnects every session.
func (r *Router) Close() {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.users))
	for _, c := range r.users {
		conns = append(conns, c)
	}
	r.users = make(map[string]*Connection)
	r.mu.Unlock()

	for _, c := range conns {
		c.Close(websocket.CloseGoingAway, "server shutdown")
	}
}
