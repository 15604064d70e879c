package events

import (
	"sync"

	"github.com/gorilla/websocket"
)

// subscriber wraps a connection with a write lock: gorilla/websocket
// allows at most one concurrent writer per connection, and broadcasts
// from separate reservation operations may land at the same time.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(message any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteJSON(message)
}

// Hub tracks live admin subscribers of the reservation event feed, keyed by
// user id. One connection per user; a reconnect replaces the old socket.
type Hub struct {
	subscribers map[int64]*subscriber
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]*subscriber),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.subscribers[userID]; exists {
		_ = old.conn.Close()
	}

	h.subscribers[userID] = &subscriber{conn: conn}
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if sub, exists := h.subscribers[userID]; exists {
		_ = sub.conn.Close()
		delete(h.subscribers, userID)
	}
}

// drop removes the subscriber only if it is still the one registered for
// the user, so a failed write on a stale socket never evicts a reconnect.
func (h *Hub) drop(userID int64, sub *subscriber) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cur, exists := h.subscribers[userID]; exists && cur == sub {
		_ = cur.conn.Close()
		delete(h.subscribers, userID)
	}
}

// Broadcast sends the message to every subscriber. Dead connections are
// dropped on write failure.
func (h *Hub) Broadcast(message any) {
	h.mutex.RLock()
	subs := make(map[int64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mutex.RUnlock()

	for userID, sub := range subs {
		if err := sub.send(message); err != nil {
			h.drop(userID, sub)
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subscribers)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, sub := range h.subscribers {
		_ = sub.conn.Close()
		delete(h.subscribers, userID)
	}
}
