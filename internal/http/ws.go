package httpapi

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/example/dispatch-board/internal/observability"
)

var upgrader = websocket.Upgrader{
	// The dashboard is same-origin in production; keep local dev simple.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans map snapshots out to every connected dashboard. Writes are
// serialized per connection; a failed write drops the client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     *slog.Logger
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{clients: make(map[*client]struct{}), log: log}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[&client{conn: conn}] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	observability.WSClients.Set(float64(n))
}

func (h *Hub) Broadcast(v any) {
	h.mu.RLock()
	conns := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	var dead []*client
	for _, c := range conns {
		if err := c.send(v); err != nil {
			h.log.Debug("ws send failed, dropping client", "error", err)
			dead = append(dead, c)
		}
	}
	if len(dead) == 0 {
		return
	}
	h.mu.Lock()
	for _, c := range dead {
		if _, ok := h.clients[c]; ok {
			delete(h.clients, c)
			_ = c.conn.Close()
		}
	}
	n := len(h.clients)
	h.mu.Unlock()
	observability.WSClients.Set(float64(n))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", 400)
		return
	}
	s.hub.Add(conn)
}
