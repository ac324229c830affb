package apperror

import "errors"

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrIllegalMove       = errors.New("move is not legal")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrInactiveMatch     = errors.New("match is not active")
	ErrMoveRequired      = errors.New("a legal move is available, pass is not allowed")
	ErrUnknownMatch      = errors.New("match not found")
	ErrMatchFull         = errors.New("match already has two players")
	ErrPlayerNotFound    = errors.New("player not found")
)
