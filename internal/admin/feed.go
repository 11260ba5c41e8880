package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Vovarama1992/visus/internal/models"
	"github.com/gorilla/websocket"
)

type feedMessage struct {
	Type    string                 `json:"type"`
	Request models.CallbackRequest `json:"request"`
}

// feedURL turns the API base into the websocket URL of the callback feed.
func feedURL(apiBase string) string {
	u := strings.TrimRight(apiBase, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/admin/ws"
}

// WatchCallbacks streams new booking requests to fn until ctx is done.
func (c *Client) WatchCallbacks(ctx context.Context, auth string, fn func(models.CallbackRequest)) error {
	header := http.Header{}
	header.Set("Authorization", auth)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, feedURL(c.baseURL), header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return newAPIError(resp.StatusCode, readDetail(resp.Body))
		}
		return fmt.Errorf("%w: dial feed: %v", ErrNetwork, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("%w: read feed: %v", ErrNetwork, err)
		}
		var msg feedMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type == "callback" {
			fn(msg.Request)
		}
	}
}
