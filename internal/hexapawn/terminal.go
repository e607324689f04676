package hexapawn

// IsTerminal - a state is terminal when a pawn stands on the opponent's home
// row or the active player has no legal action.
func (that GameState) IsTerminal() bool {
	if that.reachedFarRow() != 0 {
		return true
	}

	return len(that.Actions()) == 0
}

// Winner - the side that won a terminal state. A pawn on the far row wins for
// its owner; otherwise the player left without a move loses.
func (that GameState) Winner() (Player, bool) {
	if p := that.reachedFarRow(); p != 0 {
		return p, true
	}

	if len(that.Actions()) == 0 {
		return that.Player.Next(), true
	}

	return 0, false
}

func (that GameState) reachedFarRow() Player {
	for n := range Size {
		if that.Board[0][n] == Min.Value() {
			return Min
		}

		if that.Board[Size-1][n] == Max.Value() {
			return Max
		}
	}

	return 0
}
