package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekritpn/kawio/internal/othello"
)

func TestHub_Notify(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Fans a snapshot out to every subscriber of the match", func(t *testing.T) {
		// Given: two subscribers on one match and one on another
		hub := NewHub(logger)
		first := &client{send: make(chan []byte, 1), done: make(chan struct{})}
		second := &client{send: make(chan []byte, 1), done: make(chan struct{})}
		other := &client{send: make(chan []byte, 1), done: make(chan struct{})}
		hub.subscribe("m1", first)
		hub.subscribe("m1", second)
		hub.subscribe("m2", other)

		// When: a transition lands on the first match
		hub.Notify("m1", othello.NewGame().Snapshot())

		// Then: both subscribers of that match get the state envelope
		for _, subscriber := range []*client{first, second} {
			raw := <-subscriber.send

			var message Message
			require.NoError(t, json.Unmarshal(raw, &message))
			assert.Equal(t, actionState, message.Action)
		}

		assert.Empty(t, other.send)
	})

	t.Run("Drops a slow subscriber and removes it from the match", func(t *testing.T) {
		// Given: a subscriber with a full send queue next to a healthy one
		hub := NewHub(logger)
		slow := &client{send: make(chan []byte), done: make(chan struct{})}
		healthy := &client{send: make(chan []byte, 1), done: make(chan struct{})}
		hub.subscribe("m1", slow)
		hub.subscribe("m1", healthy)

		// When: a transition lands
		hub.Notify("m1", othello.NewGame().Snapshot())

		// Then: the slow subscriber is unsubscribed and torn down, the
		// healthy one still gets the snapshot
		hub.mu.RLock()
		_, stillSubscribed := hub.subscribers["m1"][slow]
		hub.mu.RUnlock()
		assert.False(t, stillSubscribed)

		select {
		case <-slow.done:
		default:
			t.Fatal("expected the dropped subscriber to be closed")
		}

		assert.Len(t, healthy.send, 1)
	})
}
