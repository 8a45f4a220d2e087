package scale

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub fans indicator readings out to every connected websocket client and
// keeps the most recent sample so plain HTTP callers can poll it.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*websocket.Conn
	latest  *Reading
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		log:     log,
	}
}

// Register adds a client connection under its id.
func (h *Hub) Register(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[id] = conn
	h.log.WithField("client", id).Info("scale client connected")
}

// Unregister drops a client. Closing the connection stays with the caller.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		delete(h.clients, id)
		h.log.WithField("client", id).Info("scale client disconnected")
	}
}

// Publish retains r as the latest sample and broadcasts it to every client.
// A client whose write fails is closed and dropped here; its read loop then
// ends on its own.
func (h *Hub) Publish(r Reading) {
	payload, err := json.Marshal(r)
	if err != nil {
		h.log.WithError(err).Error("encode scale reading")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = &r
	for id, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.log.WithField("client", id).WithError(err).Warn("dropping scale client")
			conn.Close()
			delete(h.clients, id)
		}
	}
}

// Latest returns the most recent published reading. The bool is false until
// the first sample arrives.
func (h *Hub) Latest() (Reading, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return Reading{}, false
	}
	return *h.latest, true
}

// Clients reports how many websocket clients are connected.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
