package ws

import (
	"context"
	"encoding/json"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/models"
	"github.com/Vovarama1992/visus/internal/ports"
)

// CallbackMessage is what feed subscribers receive for a new request.
type CallbackMessage struct {
	Type    string                 `json:"type"`
	Request models.CallbackRequest `json:"request"`
}

const TypeCallback = "callback"

// Broadcast forwards callback events to the hub until ctx is done or the
// channel is closed.
func Broadcast(ctx context.Context, hub *Hub, events <-chan ports.CallbackEvent, log *logger.ZapLogger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			msg, err := json.Marshal(CallbackMessage{Type: TypeCallback, Request: ev.Request})
			if err != nil {
				log.Log(logger.LogEntry{
					Level:   "error",
					Message: "callback event encode failed",
					Error:   err,
				})
				continue
			}
			hub.SendToRoom(ev.Room, msg)
		}
	}
}
