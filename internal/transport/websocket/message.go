package websocket

import (
	"encoding/json"

	"github.com/dekritpn/kawio/internal/othello"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	actionMove  = "match:move"
	actionPass  = "match:pass"
	actionState = "match:state"
	actionError = "error"
)

// MovePayload carries a single board coordinate, e.g. "D3".
type MovePayload struct {
	Move string `json:"move"`
}

// StatePayload is pushed to every subscriber after each applied transition.
type StatePayload struct {
	MatchID string            `json:"match_id"`
	State   *othello.Snapshot `json:"state"`
}

// ErrorPayload is sent back to the client whose action was rejected.
type ErrorPayload struct {
	Error string `json:"error"`
}
