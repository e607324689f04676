package hexapawn

import "fmt"

// ActionKind is one of the three pawn moves.
type ActionKind uint8

const (
	Advance ActionKind = iota
	CaptureLeft
	CaptureRight
)

// actionKinds is the order in which a pawn's moves are listed.
var actionKinds = [...]ActionKind{Advance, CaptureLeft, CaptureRight}

var actionKindNames = map[ActionKind]string{
	Advance:      "Advance",
	CaptureLeft:  "CaptureLeft",
	CaptureRight: "CaptureRight",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

func ParseActionKind(name string) (ActionKind, error) {
	for kind, kindName := range actionKindNames {
		if kindName == name {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

func (k ActionKind) MarshalText() ([]byte, error) {
	if _, ok := actionKindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, uint8(k))
	}

	return []byte(k.String()), nil
}

func (k *ActionKind) UnmarshalText(text []byte) error {
	kind, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}

	*k = kind

	return nil
}

// PlayerAction pairs a move with the square of the pawn making it. The
// destination is derived from the mover.
type PlayerAction struct {
	Kind ActionKind `json:"kind"`
	Src  Location   `json:"src"`
}

// Dst - destination of the action when played by player.
func (that PlayerAction) Dst(player Player) Location {
	switch that.Kind {
	case CaptureLeft:
		return that.Src.step(player, -1)
	case CaptureRight:
		return that.Src.step(player, 1)
	default:
		return that.Src.step(player, 0)
	}
}

// Check - runs the legality check matching the action's kind.
func (that PlayerAction) Check(state GameState) bool {
	switch that.Kind {
	case Advance:
		return that.Src.CheckAdvance(state)
	case CaptureLeft:
		return that.Src.CheckCaptureLeft(state)
	case CaptureRight:
		return that.Src.CheckCaptureRight(state)
	default:
		return false
	}
}

func (that PlayerAction) String() string {
	return fmt.Sprintf("Action: %s @ %s", that.Kind, that.Src)
}

// Actions - lists every legal action of the active player, scanning the board
// row-major and trying advance, capture-left, capture-right per pawn.
func (that GameState) Actions() []PlayerAction {
	var actions []PlayerAction

	for m, row := range that.Board {
		for n, cell := range row {
			if cell != that.Player.Value() {
				continue
			}

			src := Location{Row: m, Col: n}
			for _, kind := range actionKinds {
				if action := (PlayerAction{Kind: kind, Src: src}); action.Check(that) {
					actions = append(actions, action)
				}
			}
		}
	}

	return actions
}
