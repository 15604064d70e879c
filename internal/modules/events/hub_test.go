package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConn dials a throwaway websocket server that drains incoming
// frames, and returns the client side of the connection.
func newTestConn(t *testing.T) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_RegisterReplacesExistingConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Register(1, newTestConn(t))
	hub.Register(1, newTestConn(t))

	assert.Equal(t, 1, hub.SubscriberCount())
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()

	hub.Register(1, newTestConn(t))
	hub.Unregister(1)

	assert.Equal(t, 0, hub.SubscriberCount())
	hub.Unregister(1) // idempotent
}

// Broadcasts from separate reservation operations can land at the same
// time; every write to one connection must serialize on its lock.
func TestHub_ConcurrentBroadcasts(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Register(1, newTestConn(t))
	hub.Register(2, newTestConn(t))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				hub.Broadcast(map[string]string{"type": "reservation.created"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, hub.SubscriberCount())
}

func TestHub_BroadcastDropsDeadConnections(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	dead := newTestConn(t)
	require.NoError(t, dead.Close())

	hub.Register(1, dead)
	hub.Register(2, newTestConn(t))

	hub.Broadcast(map[string]string{"type": "reservation.returned"})

	assert.Equal(t, 1, hub.SubscriberCount())
}
