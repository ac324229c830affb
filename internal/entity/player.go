package entity

import "github.com/dekritpn/kawio/internal/othello"

// BotID is the reserved identity of the automated participant.
const BotID = "bot"

// Player links an authenticated identity to the match it participates in
// and the color it holds there.
type Player struct {
	ID      string         `json:"id"`
	Color   othello.Player `json:"color,omitempty"`
	MatchID string         `json:"match_id,omitempty"`
}

// IsBot reports whether this participant is the automated opponent.
func (that *Player) IsBot() bool {
	return that.ID == BotID
}
