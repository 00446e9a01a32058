package realtime

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
)

const writeWait = 10 * time.Second

// Event is the message pushed to websocket clients
type Event struct {
	Type    string      `json:"type"`
	KidID   string      `json:"kidId,omitempty"`
	Payload interface{} `json:"payload"`
}

// Client is one websocket connection. KidID "" subscribes to every kid.
type Client struct {
	KidID string
	Conn  *websocket.Conn
	mu    sync.Mutex
}

func (c *Client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}

// Hub fans events out to the clients watching a kid
type Hub struct {
	mu        sync.RWMutex
	clients   map[string]map[*Client]struct{}
	origins   map[string]struct{}
	anyOrigin bool
	upgrader  websocket.Upgrader
}

// NewHub creates a hub that accepts websocket upgrades from allowedOrigins.
// "*" accepts every origin. Requests without an Origin header are always accepted.
func NewHub(allowedOrigins ...string) *Hub {
	h := &Hub{
		clients: make(map[string]map[*Client]struct{}),
		origins: make(map[string]struct{}, len(allowedOrigins)),
	}
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			h.anyOrigin = true
			continue
		}
		if o != "" {
			h.origins[strings.ToLower(o)] = struct{}{}
		}
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.anyOrigin {
		return true
	}
	_, ok := h.origins[strings.ToLower(origin)]
	return ok
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.KidID] == nil {
		h.clients[c.KidID] = make(map[*Client]struct{})
	}
	h.clients[c.KidID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.KidID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.KidID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Broadcast sends an event to the clients of kidID and to the clients watching all kids
func (h *Hub) Broadcast(eventType, kidID string, payload interface{}) {
	msg, err := json.Marshal(Event{Type: eventType, KidID: kidID, Payload: payload})
	if err != nil {
		logger.Error("Failed to encode realtime event", "type", eventType, "error", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[kidID])+len(h.clients[""]))
	for c := range h.clients[kidID] {
		targets = append(targets, c)
	}
	if kidID != "" {
		for c := range h.clients[""] {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			logger.Debug("Dropping websocket client", "kid_id", c.KidID, "error", err)
			h.Unregister(c)
		}
	}
}
