package othello

import (
	"fmt"
	"strings"

	"github.com/dekritpn/kawio/internal/apperror"
)

const (
	// BoardSize is the number of squares per side. Only 8x8 boards are supported.
	BoardSize = 8

	// Squares is the total number of board squares.
	Squares = BoardSize * BoardSize

	// AllSquares masks every valid square; the inverse of an occupancy mask
	// must always be intersected with it so that no sentinel bits leak in.
	AllSquares uint64 = 0xFFFFFFFFFFFFFFFF
)

// Square positions run 0..63 with bit 0 = A8 (top-left) and bit 63 = H1
// (bottom-right): pos = rowIndex*8 + col, where rowIndex counts down from
// the top of the board and col counts from column A.

// CoordToPos converts a two-character coordinate like "E3" (case-insensitive,
// column A-H, row 1-8) to a square position.
func CoordToPos(coord string) (int, error) {
	if len(coord) != 2 {
		return 0, fmt.Errorf("%w: %q must be exactly 2 characters", apperror.ErrInvalidCoordinate, coord)
	}

	upper := strings.ToUpper(coord)
	col := upper[0]
	row := upper[1]

	if col < 'A' || col > 'H' {
		return 0, fmt.Errorf("%w: column in %q must be A-H", apperror.ErrInvalidCoordinate, coord)
	}

	if row < '1' || row > '8' {
		return 0, fmt.Errorf("%w: row in %q must be 1-8", apperror.ErrInvalidCoordinate, coord)
	}

	colIndex := int(col - 'A')
	rowIndex := BoardSize - int(row-'0')

	return rowIndex*BoardSize + colIndex, nil
}

// PosToCoord converts a square position back to its coordinate string,
// e.g. 56 -> "A1". It is the exact inverse of CoordToPos.
func PosToCoord(pos int) string {
	rowIndex := pos / BoardSize
	colIndex := pos % BoardSize

	col := byte('A' + colIndex)
	row := byte('0' + BoardSize - rowIndex)

	return string([]byte{col, row})
}
