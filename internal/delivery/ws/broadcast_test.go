package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/models"
	"github.com/Vovarama1992/visus/internal/ports"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBroadcast_DeliversToRoom(t *testing.T) {
	log := logger.NewZapLogger(zap.NewNop().Sugar())
	hub := NewHub(log)
	srv := httptest.NewServer(Handler(hub, "callbacks", log))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count("callbacks") == 1 }, 2*time.Second, 10*time.Millisecond)

	events := make(chan ports.CallbackEvent, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Broadcast(ctx, hub, events, log) }()

	events <- ports.CallbackEvent{
		Room:    "callbacks",
		Request: models.CallbackRequest{ID: 7, Name: "Асель", Phone: "+7", Status: models.CallbackStatusNew},
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg CallbackMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, TypeCallback, msg.Type)
	assert.Equal(t, 7, msg.Request.ID)

	close(events)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast did not stop")
	}
}

func TestHub_UnregisterOnDisconnect(t *testing.T) {
	log := logger.NewZapLogger(zap.NewNop().Sugar())
	hub := NewHub(log)
	srv := httptest.NewServer(Handler(hub, "callbacks", log))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"?room=other", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Count("other") == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count("other") == 0 }, 2*time.Second, 10*time.Millisecond)

	// пустая комната не ломает отправку
	hub.SendToRoom("other", []byte("{}"))
}
