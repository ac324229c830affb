package othello

// Snapshot is the transport-facing view of a game: an 8x8 grid of "."/"B"/"W"
// symbols in row-major order matching the coordinate mapping, the side to
// move, the legal-move set and the outcome. Winner is empty for a draw or an
// unfinished game.
type Snapshot struct {
	Board         [][]string `json:"board"`
	CurrentPlayer string     `json:"current_player"`
	LegalMoves    []string   `json:"legal_moves"`
	GameOver      bool       `json:"game_over"`
	Winner        string     `json:"winner,omitempty"`
}

// Snapshot renders the current state. The result is detached from the game
// and safe to hand to transports while the game keeps mutating.
func (that *Game) Snapshot() *Snapshot {
	board := make([][]string, BoardSize)

	for row := 0; row < BoardSize; row++ {
		board[row] = make([]string, BoardSize)
		for col := 0; col < BoardSize; col++ {
			bit := uint64(1) << uint(row*BoardSize+col)

			switch {
			case that.Black&bit != 0:
				board[row][col] = "B"
			case that.White&bit != 0:
				board[row][col] = "W"
			default:
				board[row][col] = "."
			}
		}
	}

	snapshot := &Snapshot{
		Board:         board,
		CurrentPlayer: string(that.Turn),
		LegalMoves:    that.LegalCoords(),
		GameOver:      that.IsGameOver(),
	}

	if winner := that.Winner(); winner != nil {
		snapshot.Winner = string(*winner)
	}

	return snapshot
}
