package ai

import (
	"errors"
	"sort"
	"time"

	"github.com/dekritpn/kawio/internal/othello"
)

const (
	minScore = -1 << 30
	maxScore = 1 << 30
)

// errDeadline aborts an iteration whose time budget has elapsed; the result
// of the last completed iteration is kept instead.
var errDeadline = errors.New("search deadline exceeded")

// Engine picks moves for the automated participant with minimax and
// alpha-beta pruning. Searches deepen iteratively up to the configured ply
// depth or until the time budget runs out, whichever comes first. Given the
// same position, depth and budget headroom, the engine always returns the
// same move.
type Engine struct {
	depth  int
	budget time.Duration
}

// NewEngine returns an engine searching to the given ply depth within the
// given wall-clock budget. A non-positive budget disables the time limit.
func NewEngine(depth int, budget time.Duration) *Engine {
	if depth < 1 {
		depth = 1
	}

	return &Engine{
		depth:  depth,
		budget: budget,
	}
}

// BestMove returns the engine's move for the side to move, or pass=true when
// no legal move exists. The depth-1 iteration always runs to completion, so
// the engine never comes back empty-handed for a movable position.
func (that *Engine) BestMove(game *othello.Game) (pos int, pass bool) {
	moves := orderedMoves(game)
	if len(moves) == 0 {
		return 0, true
	}

	var deadline time.Time
	if that.budget > 0 {
		deadline = time.Now().Add(that.budget)
	}

	best := moves[0]

	for depth := 1; depth <= that.depth; depth++ {
		iterationDeadline := deadline
		if depth == 1 {
			iterationDeadline = time.Time{}
		}

		candidate, err := that.searchRoot(game, moves, depth, iterationDeadline)
		if err != nil {
			break
		}

		best = candidate
	}

	return best, false
}

// searchRoot evaluates every root move to the given depth and returns the
// best one. Equal scores keep the move encountered first, so the static
// move ordering makes the choice reproducible.
func (that *Engine) searchRoot(game *othello.Game, moves []int, depth int, deadline time.Time) (int, error) {
	pov := game.Turn
	bestPos := moves[0]
	bestScore := minScore
	alpha := minScore

	for _, pos := range moves {
		child := game.Clone()
		if err := child.MakeMove(pos); err != nil {
			// moves came from LegalMoves, a failure here is an engine bug
			panic("ai: legal move rejected by engine: " + err.Error())
		}

		score, err := that.alphaBeta(child, depth-1, alpha, maxScore, pov, deadline)
		if err != nil {
			return 0, err
		}

		if score > bestScore {
			bestScore = score
			bestPos = pos
		}

		if bestScore > alpha {
			alpha = bestScore
		}
	}

	return bestPos, nil
}

// alphaBeta scores the position from pov's point of view. The side to move
// maximizes when it is pov's turn and minimizes otherwise, which copes with
// the auto-pass turn skips the engine applies inside MakeMove.
func (that *Engine) alphaBeta(game *othello.Game, depth, alpha, beta int, pov othello.Player, deadline time.Time) (int, error) {
	if !deadline.IsZero() && time.Now().After(deadline) {
		return 0, errDeadline
	}

	if depth == 0 || game.IsGameOver() {
		return evaluate(game, pov), nil
	}

	moves := orderedMoves(game)
	if len(moves) == 0 {
		// reachable only for hand-built positions: MakeMove already skips
		// a move-less opponent
		child := game.Clone()
		child.Pass()

		return that.alphaBeta(child, depth, alpha, beta, pov, deadline)
	}

	maximizing := game.Turn == pov

	best := minScore
	if !maximizing {
		best = maxScore
	}

	for _, pos := range moves {
		child := game.Clone()
		if err := child.MakeMove(pos); err != nil {
			panic("ai: legal move rejected by engine: " + err.Error())
		}

		score, err := that.alphaBeta(child, depth-1, alpha, beta, pov, deadline)
		if err != nil {
			return 0, err
		}

		if maximizing {
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
		}

		if alpha >= beta {
			break
		}
	}

	return best, nil
}

// orderedMoves returns the legal moves sorted by static square weight, best
// first, with the lower position breaking ties. Trying strong squares first
// tightens the alpha-beta window early and fixes the tie-break order.
func orderedMoves(game *othello.Game) []int {
	moves := game.LegalMoves()

	sort.SliceStable(moves, func(i, j int) bool {
		if squareWeights[moves[i]] != squareWeights[moves[j]] {
			return squareWeights[moves[i]] > squareWeights[moves[j]]
		}
		return moves[i] < moves[j]
	})

	return moves
}
