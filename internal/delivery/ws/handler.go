package ws

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
)

// Handler upgrades the request and keeps the connection registered in its
// room until the client goes away. The feed is server-to-client only;
// incoming messages are read and dropped.
func Handler(hub *Hub, defaultRoom string, log *logger.ZapLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Log(logger.LogEntry{
				Level:   "warn",
				Message: "ws upgrade failed",
				Error:   err,
			})
			return
		}

		roomID := r.URL.Query().Get("room")
		if roomID == "" {
			roomID = defaultRoom
		}

		hub.Register(roomID, conn)
		defer hub.Unregister(roomID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
