package websocket

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, 16),
		id:     "test-client",
		logger: slog.Default(),
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Start()
	defer hub.Stop()

	client := newTestClient(hub)
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.unregister <- client
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open, "send channel should be closed on unregister")
}

func TestHubBroadcastDataUpdate(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Start()
	defer hub.Stop()

	client := newTestClient(hub)
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastDataUpdate([]int{2023, 2024})

	select {
	case message := <-client.send:
		var envelope Envelope
		require.NoError(t, json.Unmarshal(message, &envelope))
		assert.Equal(t, TypeDataUpdate, envelope.Type)
		assert.False(t, envelope.Timestamp.IsZero())

		payload, ok := envelope.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Len(t, payload["years"], 2)
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestHubStopIdempotent(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Start()

	hub.Stop()
	assert.NotPanics(t, hub.Stop)
}

func TestHubStartIdempotent(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Start()
	defer hub.Stop()

	assert.NotPanics(t, hub.Start)
}
