package othello

// directions holds the (row, col) deltas of the eight rays a placement can
// capture along.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Flips returns the mask of opponent discs that placing a disc of the side
// to move at pos would turn. Every qualifying direction contributes; a move
// that captures along several rays flips the union of all of them. The board
// itself is never modified. A zero result means the placement is illegal.
func (that *Game) Flips(pos int) uint64 {
	mover, opponent := that.sides()

	var flips uint64

	for _, dir := range directions {
		row := pos/BoardSize + dir[0]
		col := pos%BoardSize + dir[1]

		var captured uint64

		for row >= 0 && row < BoardSize && col >= 0 && col < BoardSize {
			bit := uint64(1) << uint(row*BoardSize+col)

			if opponent&bit != 0 {
				captured |= bit
			} else if mover&bit != 0 {
				// sandwich closed, this ray captures
				flips |= captured
				break
			} else {
				// empty square breaks the sandwich
				break
			}

			row += dir[0]
			col += dir[1]
		}
	}

	return flips
}

// IsValidMove reports whether the side to move may place a disc at pos.
// Occupied squares are never legal, and a placement must flip at least one
// opponent disc.
func (that *Game) IsValidMove(pos int) bool {
	if pos < 0 || pos >= Squares {
		return false
	}

	if that.Occupied()&(uint64(1)<<uint(pos)) != 0 {
		return false
	}

	return that.Flips(pos) != 0
}

// LegalMoves returns all positions where the side to move may place a disc,
// in ascending position order.
func (that *Game) LegalMoves() []int {
	var moves []int

	for pos := 0; pos < Squares; pos++ {
		if that.IsValidMove(pos) {
			moves = append(moves, pos)
		}
	}

	return moves
}

// LegalCoords returns the legal-move set as coordinate strings.
func (that *Game) LegalCoords() []string {
	moves := that.LegalMoves()

	coords := make([]string, 0, len(moves))
	for _, pos := range moves {
		coords = append(coords, PosToCoord(pos))
	}

	return coords
}

// HasLegalMove reports whether the given player could place a disc somewhere
// if it were their turn.
func (that *Game) HasLegalMove(player Player) bool {
	probe := *that
	probe.Turn = player

	for pos := 0; pos < Squares; pos++ {
		if probe.IsValidMove(pos) {
			return true
		}
	}

	return false
}

// sides returns the occupancy masks of the side to move and its opponent.
func (that *Game) sides() (mover, opponent uint64) {
	if that.Turn == Black {
		return that.Black, that.White
	}
	return that.White, that.Black
}
