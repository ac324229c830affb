package ai

import (
	"math/bits"

	"github.com/dekritpn/kawio/internal/othello"
)

const (
	// terminalScore dwarfs any positional score so that proven wins and
	// losses dominate the search.
	terminalScore = 1_000_000

	mobilityWeight = 8
	discWeight     = 1
)

// squareWeights scores each square for the positional term. Corners anchor
// whole edges and are worth the most; the X and C squares next to an open
// corner hand that corner to the opponent and are penalized.
var squareWeights = [othello.Squares]int{
	120, -20, 20, 5, 5, 20, -20, 120,
	-20, -40, -5, -5, -5, -5, -40, -20,
	20, -5, 15, 3, 3, 15, -5, 20,
	5, -5, 3, 3, 3, 3, -5, 5,
	5, -5, 3, 3, 3, 3, -5, 5,
	20, -5, 15, 3, 3, 15, -5, 20,
	-20, -40, -5, -5, -5, -5, -40, -20,
	120, -20, 20, 5, 5, 20, -20, 120,
}

// evaluate scores a position from the point of view of the given player.
// The score combines positional square weights, disc differential and
// mobility. It is a pure function of the board, so identical positions
// always evaluate identically.
func evaluate(game *othello.Game, pov othello.Player) int {
	if game.IsGameOver() {
		black, white := game.DiscCount()
		diff := black - white
		if pov == othello.White {
			diff = -diff
		}

		switch {
		case diff > 0:
			return terminalScore + diff
		case diff < 0:
			return -terminalScore + diff
		default:
			return 0
		}
	}

	mine, theirs := game.Black, game.White
	if pov == othello.White {
		mine, theirs = theirs, mine
	}

	var positional int
	for pos := 0; pos < othello.Squares; pos++ {
		bit := uint64(1) << uint(pos)
		switch {
		case mine&bit != 0:
			positional += squareWeights[pos]
		case theirs&bit != 0:
			positional -= squareWeights[pos]
		}
	}

	discs := bits.OnesCount64(mine) - bits.OnesCount64(theirs)
	mobility := countMoves(game, pov) - countMoves(game, pov.Opponent())

	return positional + discWeight*discs + mobilityWeight*mobility
}

func countMoves(game *othello.Game, player othello.Player) int {
	probe := game.Clone()
	probe.Turn = player

	return len(probe.LegalMoves())
}
