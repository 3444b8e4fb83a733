// Package live pushes balance updates to connected dashboards over
// WebSocket, replacing the polling a client would otherwise do after
// every mutation.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"wallettally/internal/ledger"
	"wallettally/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 256
)

// client pairs a socket with its outbound queue. All writes to the
// socket happen on the writePump goroutine; publishers only enqueue.
type client struct {
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// writePump is the sole writer for the socket.
func (c *client) writePump() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.close()
				return
			}
		}
	}
}

// Hub tracks open sockets per user id.
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64]map[*client]struct{})}
}

// Register adds a socket for a user, starts its write pump and returns
// a deregister func.
func (h *Hub) Register(userID int64, ws *websocket.Conn) func() {
	c := &client{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*client]struct{})
	}
	h.conns[userID][c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()

	return func() { h.drop(userID, c) }
}

func (h *Hub) drop(userID int64, c *client) {
	h.mu.Lock()
	if set, ok := h.conns[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	h.mu.Unlock()
	c.close()
}

type balanceEvent struct {
	Event   string         `json:"event"`
	Summary ledger.Summary `json:"summary"`
	At      time.Time      `json:"at"`
}

// PublishBalance queues the fresh summary for every socket the user has
// open. A socket whose queue is full is dropped; the client reconnects.
func (h *Hub) PublishBalance(userID int64, summary ledger.Summary) {
	payload, err := json.Marshal(balanceEvent{
		Event:   "balance",
		Summary: summary,
		At:      time.Now().UTC(),
	})
	if err != nil {
		logger.Error("failed to marshal balance event", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.conns[userID]))
	for c := range h.conns[userID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- payload:
		case <-c.done:
		default:
			h.drop(userID, c)
		}
	}
}

// ConnCount reports open sockets for a user, used by tests.
func (h *Hub) ConnCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}
