package hexapawn

import "fmt"

// Advance - moves the pawn at src one row forward. Legality is not checked:
// a source on the far row panics with an index out of range.
func (that GameState) Advance(src Location) GameState {
	return that.update(PlayerAction{Kind: Advance, Src: src}.Dst(that.Player), src)
}

// CaptureLeft - takes diagonally toward column 0. Legality is not checked.
func (that GameState) CaptureLeft(src Location) GameState {
	return that.update(PlayerAction{Kind: CaptureLeft, Src: src}.Dst(that.Player), src)
}

// CaptureRight - takes diagonally toward column 2. Legality is not checked.
func (that GameState) CaptureRight(src Location) GameState {
	return that.update(PlayerAction{Kind: CaptureRight, Src: src}.Dst(that.Player), src)
}

// Result - applies an action the caller has already checked.
func (that GameState) Result(action PlayerAction) GameState {
	switch action.Kind {
	case CaptureLeft:
		return that.CaptureLeft(action.Src)
	case CaptureRight:
		return that.CaptureRight(action.Src)
	case Advance:
		return that.Advance(action.Src)
	default:
		panic(fmt.Sprintf("unknown action kind %d", uint8(action.Kind)))
	}
}

// Validate - reports why action cannot be played in this state, or nil.
func (that GameState) Validate(action PlayerAction) error {
	if _, ok := actionKindNames[action.Kind]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action.Kind)
	}

	if !action.Src.IsInBounds() {
		return fmt.Errorf("%w: source %s", ErrOutOfBounds, action.Src)
	}

	if dst := action.Dst(that.Player); !dst.IsInBounds() {
		return fmt.Errorf("%w: destination %s", ErrOutOfBounds, dst)
	}

	if that.Board.at(action.Src) != that.Player.Value() {
		return fmt.Errorf("%w: %s", ErrNotYourPiece, action.Src)
	}

	if !action.Check(that) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalAction, action, that.Player)
	}

	return nil
}

// Apply - validates action and returns the resulting state.
func (that GameState) Apply(action PlayerAction) (GameState, error) {
	if err := that.Validate(action); err != nil {
		return that, err
	}

	return that.Result(action), nil
}

// update copies the board, moves the piece at src onto dst (removing whatever
// stood there) and hands the turn to the opponent.
func (that GameState) update(dst, src Location) GameState {
	board := that.Board

	board[dst.Row][dst.Col] = that.Board[src.Row][src.Col]
	board[src.Row][src.Col] = Empty

	return GameState{
		Player: that.Player.Next(),
		Board:  board,
	}
}
