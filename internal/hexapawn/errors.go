package hexapawn

import "errors"

var (
	ErrOutOfBounds   = errors.New("location is out of bounds")
	ErrIllegalAction = errors.New("illegal action")
	ErrNotYourPiece  = errors.New("square does not hold a pawn of the active player")
	ErrUnknownAction = errors.New("unknown action kind")
	ErrUnknownPlayer = errors.New("unknown player")
)
