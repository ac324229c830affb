package entity

import (
	"fmt"

	"github.com/dekritpn/kawio/internal/apperror"
	"github.com/dekritpn/kawio/internal/othello"
)

const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Match owns one Othello game and the two participants playing it. The
// match coordinator is the only component that mutates a match; everything
// else works on snapshots.
type Match struct {
	ID      string        `json:"id"`
	Status  string        `json:"status"`
	Game    *othello.Game `json:"game"`
	Players []*Player     `json:"players,omitempty"`
	Winner  string        `json:"winner,omitempty"`
}

// NewMatch returns a waiting match with a freshly opened board. The creator
// plays Black; the match activates once a second participant joins.
func NewMatch(id string, creator *Player) *Match {
	creator.Color = othello.Black
	creator.MatchID = id

	return &Match{
		ID:      id,
		Status:  StatusWaiting,
		Game:    othello.NewGame(),
		Players: []*Player{creator},
	}
}

// AddOpponent seats the second participant as White and activates the match.
func (that *Match) AddOpponent(player *Player) error {
	if len(that.Players) >= 2 {
		return fmt.Errorf("%w: match id %s", apperror.ErrMatchFull, that.ID)
	}

	player.Color = othello.White
	player.MatchID = that.ID

	that.Players = append(that.Players, player)
	that.Status = StatusActive

	return nil
}

func (that *Match) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Match) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

// ConfirmActiveState returns ErrInactiveMatch unless the match is accepting
// moves.
func (that *Match) ConfirmActiveState() error {
	if !that.IsActive() {
		return fmt.Errorf("%w: match %s is %s", apperror.ErrInactiveMatch, that.ID, that.Status)
	}

	return nil
}

// ColorOf resolves a participant identity to the color it plays.
func (that *Match) ColorOf(playerID string) (othello.Player, error) {
	for _, player := range that.Players {
		if player.ID == playerID {
			return player.Color, nil
		}
	}

	return "", fmt.Errorf("%w: player %s is not part of match %s", apperror.ErrPlayerNotFound, playerID, that.ID)
}

// PlayerByColor returns the participant holding the given color, or nil
// before that seat is taken.
func (that *Match) PlayerByColor(color othello.Player) *Player {
	for _, player := range that.Players {
		if player.Color == color {
			return player
		}
	}

	return nil
}

// HasBot reports whether the automated opponent participates in this match.
func (that *Match) HasBot() bool {
	for _, player := range that.Players {
		if player.IsBot() {
			return true
		}
	}

	return false
}

// Clone returns a detached copy of the match. Callers outside the
// coordinator's lock read clones, never the live record.
func (that *Match) Clone() *Match {
	clone := *that
	clone.Game = that.Game.Clone()

	clone.Players = make([]*Player, len(that.Players))
	for i, player := range that.Players {
		copied := *player
		clone.Players[i] = &copied
	}

	return &clone
}

// Finish marks the match finished and records the winner symbolically;
// an empty winner means a draw.
func (that *Match) Finish(winner *othello.Player) {
	that.Status = StatusFinished
	if winner != nil {
		that.Winner = string(*winner)
	}
}
