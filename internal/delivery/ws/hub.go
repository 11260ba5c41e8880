package ws

import (
	"net/http"
	"sync"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/gorilla/websocket"
)

// Hub fans messages out to websocket connections grouped by room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]bool
	log   *logger.ZapLogger
}

func NewHub(log *logger.ZapLogger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*websocket.Conn]bool),
		log:   log,
	}
}

func (h *Hub) Register(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomID][conn] = true

	h.log.Log(logger.LogEntry{
		Level:   "debug",
		Message: "ws register",
		Fields:  map[string]any{"room": roomID, "conns": len(h.rooms[roomID])},
	})
}

func (h *Hub) Unregister(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.rooms[roomID]
	if !ok {
		return
	}

	if _, ok := conns[conn]; ok {
		delete(conns, conn)
		conn.Close()
	}

	if len(conns) == 0 {
		delete(h.rooms, roomID)
	}

	h.log.Log(logger.LogEntry{
		Level:   "debug",
		Message: "ws unregister",
		Fields:  map[string]any{"room": roomID, "conns": len(conns)},
	})
}

// Count returns the number of connections in roomID.
func (h *Hub) Count(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// SendToRoom writes msg to every connection of roomID. It is called from a
// single broadcast goroutine, so writes to a connection never overlap.
func (h *Hub) SendToRoom(roomID string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := h.rooms[roomID]
	if len(conns) == 0 {
		h.log.Log(logger.LogEntry{
			Level:   "debug",
			Message: "ws send skipped, no connections",
			Fields:  map[string]any{"room": roomID},
		})
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Log(logger.LogEntry{
				Level:   "warn",
				Message: "ws send failed",
				Error:   err,
				Fields:  map[string]any{"room": roomID},
			})
		}
	}
}

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
