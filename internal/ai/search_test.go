package ai

import (
	"testing"
	"time"

	"github.com/dekritpn/kawio/internal/othello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_BestMove(t *testing.T) {
	t.Run("Depth 1 picks a move from the legal set", func(t *testing.T) {
		// Given: the standard opening and a depth-1 engine
		game := othello.NewGame()
		engine := NewEngine(1, 0)

		// When: asking for the best move
		pos, pass := engine.BestMove(game)

		// Then: the result is one of the legal moves, not a pass
		require.False(t, pass)
		assert.Contains(t, game.LegalMoves(), pos)
	})

	t.Run("Identical inputs produce identical moves", func(t *testing.T) {
		// Given: two equal positions
		game := othello.NewGame()
		engine := NewEngine(4, 0)

		// When: searching each of them
		first, _ := engine.BestMove(game)
		second, _ := engine.BestMove(game.Clone())

		// Then: the chosen moves agree
		assert.Equal(t, first, second)
	})

	t.Run("Search never mutates the position", func(t *testing.T) {
		// Given: the standard opening
		game := othello.NewGame()
		before := *game

		// When: running a deep search over it
		engine := NewEngine(4, 0)
		_, pass := engine.BestMove(game)

		// Then: the position is byte-for-byte unchanged
		require.False(t, pass)
		assert.Equal(t, before, *game)
	})

	t.Run("Returns pass when no legal move exists", func(t *testing.T) {
		// Given: a position where White, to move, has nothing to play
		game := &othello.Game{
			Black: 1<<0 | 1<<1 | 1<<2,
			White: 1 << 8,
			Turn:  othello.White,
		}
		require.Empty(t, game.LegalMoves())

		// When: asking for the best move
		_, pass := NewEngine(3, 0).BestMove(game)

		// Then: the engine signals a pass
		assert.True(t, pass)
	})

	t.Run("Takes an offered corner", func(t *testing.T) {
		// Given: a position where Black can capture into the A8 corner
		// or play a clearly weaker edge square instead
		game := &othello.Game{
			Black: 1<<2 | 1<<17,
			White: 1<<1 | 1<<9,
			Turn:  othello.Black,
		}
		require.Equal(t, []int{0, 16}, game.LegalMoves())

		// When: searching at shallow depth
		pos, pass := NewEngine(2, 0).BestMove(game)

		// Then: the corner wins
		require.False(t, pass)
		assert.Equal(t, 0, pos)
	})

	t.Run("A tight budget still yields a legal depth-1 move", func(t *testing.T) {
		// Given: a budget far too small for the configured depth
		game := othello.NewGame()
		engine := NewEngine(12, time.Nanosecond)

		// When: searching
		pos, pass := engine.BestMove(game)

		// Then: a legal move still comes back
		require.False(t, pass)
		assert.Contains(t, game.LegalMoves(), pos)
	})
}

func TestEngine_DeeperSearchIsNoWorse(t *testing.T) {
	// Pit a deeper engine against a fixed depth-1 opponent over a handful of
	// deterministic games. The deeper side must at least hold the average
	// disc differential a depth-1 mirror achieves; this is a monotonicity
	// sanity check, not an exact bound.
	differential := func(depth int) int {
		engine := NewEngine(depth, 0)
		opponent := NewEngine(1, 0)

		game := othello.NewGame()
		for !game.IsGameOver() {
			side := engine
			if game.Turn == othello.White {
				side = opponent
			}

			pos, pass := side.BestMove(game)
			require.False(t, pass, "an active game must offer a move after auto-pass")
			require.NoError(t, game.MakeMove(pos))
		}

		black, white := game.DiscCount()
		return black - white
	}

	baseline := differential(1)
	deeper := differential(3)

	assert.GreaterOrEqual(t, deeper, baseline)
}

func TestEvaluate(t *testing.T) {
	t.Run("The opening is symmetric", func(t *testing.T) {
		// Given: the standard opening
		game := othello.NewGame()

		// Then: both sides evaluate it as the exact opposite of each other
		assert.Equal(t, evaluate(game, othello.Black), -evaluate(game, othello.White))
	})

	t.Run("A won terminal position scores above any heuristic value", func(t *testing.T) {
		// Given: a finished board Black dominates
		game := &othello.Game{
			Black: othello.AllSquares &^ 1,
			White: 1,
			Turn:  othello.Black,
		}
		require.True(t, game.IsGameOver())

		// Then: the winner's score clears the terminal threshold
		assert.Greater(t, evaluate(game, othello.Black), terminalScore/2)
		assert.Less(t, evaluate(game, othello.White), -terminalScore/2)
	})
}
