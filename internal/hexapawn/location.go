package hexapawn

import "fmt"

// Location is a (row, column) index into the board. It is not validated on
// construction.
type Location struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Location) IsInBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// CheckAdvance - reports whether the active player's pawn at this location can
// step forward into an empty square.
func (that Location) CheckAdvance(state GameState) bool {
	dst := that.step(state.Player, 0)
	if !dst.IsInBounds() {
		return false
	}

	return state.Board.at(dst) == Empty
}

// CheckCaptureLeft - reports whether the active player's pawn at this location
// can take an opposing pawn one row forward and one column toward index 0.
func (that Location) CheckCaptureLeft(state GameState) bool {
	return that.checkCapture(state, -1)
}

// CheckCaptureRight - same as CheckCaptureLeft, toward the higher column.
func (that Location) CheckCaptureRight(state GameState) bool {
	return that.checkCapture(state, 1)
}

func (that Location) checkCapture(state GameState, colStep int) bool {
	dst := that.step(state.Player, colStep)
	if !dst.IsInBounds() {
		return false
	}

	return state.Board.at(dst) == state.Player.Next().Value()
}

// step moves one row forward for player; left and right are fixed columns for both sides.
func (that Location) step(player Player, colStep int) Location {
	return Location{Row: that.Row + player.forward(), Col: that.Col + colStep}
}

func (that Location) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}
