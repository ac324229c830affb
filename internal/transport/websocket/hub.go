package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/dekritpn/kawio/internal/othello"
)

// Hub fans transition snapshots out to every connection subscribed to a
// match. It implements the coordinator's Notifier, so the coordinator pushes
// through it without knowing about connections.
type Hub struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger,
		subscribers: make(map[string]map[*client]struct{}),
	}
}

// Notify serializes the snapshot once and queues it on every subscriber of
// the match. A subscriber whose send queue is full is dropped rather than
// allowed to stall the match.
func (that *Hub) Notify(matchID string, snapshot *othello.Snapshot) {
	log := that.logger.With("method", "Notify", "matchID", matchID)

	payload, err := json.Marshal(StatePayload{MatchID: matchID, State: snapshot})
	if err != nil {
		log.Error("failed to marshal snapshot", "error", err)
		return
	}

	raw, err := json.Marshal(Message{Action: actionState, Payload: payload})
	if err != nil {
		log.Error("failed to marshal message", "error", err)
		return
	}

	var slow []*client

	that.mu.RLock()
	for subscriber := range that.subscribers[matchID] {
		select {
		case subscriber.send <- raw:
		default:
			slow = append(slow, subscriber)
		}
	}
	that.mu.RUnlock()

	for _, subscriber := range slow {
		log.Warn("dropping slow subscriber")
		that.unsubscribe(matchID, subscriber)
		subscriber.close()
	}
}

func (that *Hub) subscribe(matchID string, subscriber *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.subscribers[matchID] == nil {
		that.subscribers[matchID] = make(map[*client]struct{})
	}

	that.subscribers[matchID][subscriber] = struct{}{}
}

func (that *Hub) unsubscribe(matchID string, subscriber *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.subscribers[matchID], subscriber)

	if len(that.subscribers[matchID]) == 0 {
		delete(that.subscribers, matchID)
	}
}
