package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"truckore/config"
	"truckore/scale"
)

// Longest silence tolerated from a live-feed client before the read loop
// gives up.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type ScaleHandler struct {
	Hub *scale.Hub
}

// LiveFeed upgrades to a websocket and streams indicator readings until the
// client hangs up. Clients only listen; inbound frames are drained to keep
// the connection's control handling alive.
func (h *ScaleHandler) LiveFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		config.Logger().WithError(err).Warn("websocket upgrade failed")
		return
	}

	id := uuid.NewString()
	h.Hub.Register(id, conn)
	defer func() {
		h.Hub.Unregister(id)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// CurrentReading handler: the latest indicator sample for plain polling.
func (h *ScaleHandler) CurrentReading(w http.ResponseWriter, r *http.Request) {
	reading, ok := h.Hub.Latest()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "No reading available yet",
		})
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: reading})
}
