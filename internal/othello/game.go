package othello

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/dekritpn/kawio/internal/apperror"
)

// Player identifies a side in an Othello game.
type Player string

const (
	Black Player = "Black"
	White Player = "White"
)

// Opponent returns the other side.
func (that Player) Opponent() Player {
	if that == Black {
		return White
	}

	return Black
}

// Game is the complete state of an Othello game: one occupancy bitboard per
// color, the side to move and the count of consecutive passes. The two
// bitboards are always disjoint.
type Game struct {
	Black  uint64 `json:"black"`
	White  uint64 `json:"white"`
	Turn   Player `json:"turn"`
	Passes int    `json:"passes"`
}

// NewGame returns a game with the standard four-disc opening and Black to move.
func NewGame() *Game {
	return &Game{
		Black:  1<<28 | 1<<35,
		White:  1<<27 | 1<<36,
		Turn:   Black,
		Passes: 0,
	}
}

// Occupied returns the mask of all squares holding a disc of either color.
func (that *Game) Occupied() uint64 {
	return that.Black | that.White
}

// Empty returns the mask of all empty squares.
func (that *Game) Empty() uint64 {
	return ^that.Occupied() & AllSquares
}

// DiscCount returns the number of black and white discs on the board.
func (that *Game) DiscCount() (black, white int) {
	return bits.OnesCount64(that.Black), bits.OnesCount64(that.White)
}

// Clone returns an independent copy of the game.
func (that *Game) Clone() *Game {
	clone := *that
	return &clone
}

// MakeMove places a disc for the side to move at pos and flips the captured
// discs. The turn passes to the opponent; if the opponent then has no legal
// move the turn skips back (auto-pass) and the pass counter grows instead of
// resetting. Two consecutive passes end the game without another placement.
func (that *Game) MakeMove(pos int) error {
	if pos < 0 || pos >= Squares {
		return fmt.Errorf("%w: position %d out of range", apperror.ErrIllegalMove, pos)
	}

	posBit := uint64(1) << uint(pos)
	if that.Occupied()&posBit != 0 {
		return fmt.Errorf("%w: square %s is already occupied", apperror.ErrIllegalMove, PosToCoord(pos))
	}

	flips := that.Flips(pos)
	if flips == 0 {
		return fmt.Errorf("%w: %s flips no discs", apperror.ErrIllegalMove, PosToCoord(pos))
	}

	if that.Turn == Black {
		that.Black |= posBit | flips
		that.White &^= flips
	} else {
		that.White |= posBit | flips
		that.Black &^= flips
	}

	that.Turn = that.Turn.Opponent()
	that.Passes = 0

	if !that.HasLegalMove(that.Turn) {
		that.Passes++
		that.Turn = that.Turn.Opponent()

		if !that.HasLegalMove(that.Turn) {
			that.Passes++
		}
	}

	return nil
}

// Pass hands the turn to the opponent and increments the pass counter.
// Callers must check that the side to move really has no legal move.
func (that *Game) Pass() {
	that.Turn = that.Turn.Opponent()
	that.Passes++
}

// IsGameOver reports whether neither side has a legal move left. A full
// board is covered by the same check, since no placement is possible on it.
func (that *Game) IsGameOver() bool {
	return !that.HasLegalMove(Black) && !that.HasLegalMove(White)
}

// Winner returns the color holding strictly more discs once the game is
// over, or nil for a draw or an unfinished game.
func (that *Game) Winner() *Player {
	if !that.IsGameOver() {
		return nil
	}

	black, white := that.DiscCount()

	switch {
	case black > white:
		winner := Black
		return &winner
	case white > black:
		winner := White
		return &winner
	default:
		return nil
	}
}

// String renders the board with row and column headers, for logs and the CLI.
func (that *Game) String() string {
	var sb strings.Builder

	sb.WriteString("  A B C D E F G H\n")
	for row := 0; row < BoardSize; row++ {
		sb.WriteByte(byte('0' + BoardSize - row))
		sb.WriteByte(' ')
		for col := 0; col < BoardSize; col++ {
			bit := uint64(1) << uint(row*BoardSize+col)
			switch {
			case that.Black&bit != 0:
				sb.WriteString("B ")
			case that.White&bit != 0:
				sb.WriteString("W ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
