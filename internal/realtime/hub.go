package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is the message shape written to connected clients, mirroring the
// web-push payload
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client wraps a connection with a write lock. gorilla/websocket allows only
// one concurrent writer per connection, and emits from concurrent requests
// land on the same connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(event)
}

// Hub tracks websocket connections grouped into per-account rooms. Emit is
// fire-and-forget: a failed write drops the connection, nothing is queued
// or retried.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*websocket.Conn]*client
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*websocket.Conn]*client)}
}

// Register adds a connection to the account's room
func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*websocket.Conn]*client)
	}
	h.rooms[userID][conn] = &client{conn: conn}
}

// Unregister removes a connection from the account's room
func (h *Hub) Unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, userID)
		}
	}
}

// ConnectionCount returns the number of live connections for an account
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

// Emit writes a notification event to every connection in the account's
// room. Write failures evict the connection and are otherwise swallowed.
func (h *Hub) Emit(userID uint, data interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[userID]))
	for _, c := range h.rooms[userID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(Event{Type: "notification", Data: data}); err != nil {
			log.Printf("realtime: dropping connection for user %d: %v", userID, err)
			c.conn.Close()
			h.Unregister(userID, c.conn)
		}
	}
}
