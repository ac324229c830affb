package service

import (
	"time"

	"github.com/dekritpn/kawio/internal/ai"
	"github.com/dekritpn/kawio/internal/othello"
)

// BotService chooses the automated participant's reply. pass is true when
// the bot has no legal move and must pass instead.
type BotService interface {
	ChooseMove(game *othello.Game) (pos int, pass bool)
}

type botService struct {
	engine *ai.Engine
}

// NewBotService returns a bot searching to the given ply depth within the
// given wall-clock budget per move.
func NewBotService(depth int, budget time.Duration) BotService {
	return &botService{
		engine: ai.NewEngine(depth, budget),
	}
}

func (that *botService) ChooseMove(game *othello.Game) (int, bool) {
	// the engine reads the game without mutating it, but search runs off
	// the coordinator lock, so work on a private copy
	return that.engine.BestMove(game.Clone())
}
