package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Vovarama1992/visus/internal/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/api/admin/ws", feedURL("http://localhost:8080/api/"))
	assert.Equal(t, "wss://visus.kz/api/admin/ws", feedURL("https://visus.kz/api"))
}

func TestWatchCallbacks(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/ws" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != BasicHeader("admin", "secret") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		noise, _ := json.Marshal(map[string]string{"type": "ping"})
		_ = conn.WriteMessage(websocket.TextMessage, noise)
		msg, _ := json.Marshal(feedMessage{
			Type:    "callback",
			Request: models.CallbackRequest{ID: 3, Name: "Асель", Phone: "+77010000000", Status: models.CallbackStatusNew},
		})
		_ = conn.WriteMessage(websocket.TextMessage, msg)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api", 0)

	t.Run("unauthorized", func(t *testing.T) {
		err := client.WatchCallbacks(context.Background(), BasicHeader("admin", "nope"), func(models.CallbackRequest) {})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("delivers callbacks", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		got := make(chan models.CallbackRequest, 1)
		done := make(chan error, 1)
		go func() {
			done <- client.WatchCallbacks(ctx, BasicHeader("admin", "secret"), func(r models.CallbackRequest) { got <- r })
		}()

		select {
		case r := <-got:
			assert.Equal(t, 3, r.ID)
			assert.Equal(t, "Асель", r.Name)
		case <-time.After(2 * time.Second):
			t.Fatal("no callback received")
		}

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watch did not stop")
		}
	})
}

func TestController_WatchWithoutAuth(t *testing.T) {
	c := newTestController(t, newBackend(t), false)
	err := c.Watch(context.Background(), func(models.CallbackRequest) {})
	require.ErrorIs(t, err, ErrUnauthorized)
}
