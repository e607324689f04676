package hexapawn

// Player is the side to move. Its value doubles as the board marker and the
// row direction of its pawns.
type Player int8

const (
	Max Player = 1
	Min Player = -1
)

// Next returns the opponent.
func (p Player) Next() Player {
	if p == Max {
		return Min
	}
	return Max
}

func (p Player) Value() int8 {
	return int8(p)
}

// forward is the row step of the player's pawns.
func (p Player) forward() int {
	if p == Max {
		return 1
	}
	return -1
}

func (p Player) String() string {
	switch p {
	case Max:
		return "Max"
	case Min:
		return "Min"
	default:
		return "Unknown"
	}
}

func ParsePlayer(name string) (Player, error) {
	switch name {
	case "Max":
		return Max, nil
	case "Min":
		return Min, nil
	default:
		return 0, ErrUnknownPlayer
	}
}
