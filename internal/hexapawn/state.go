package hexapawn

import (
	"fmt"
	"strings"
)

// Size is the number of rows and columns of the board.
const Size = 3

// Empty marks a square without a pawn.
const Empty int8 = 0

// Board holds one marker per square: Max.Value(), Min.Value() or Empty.
// It is an array so that every copy owns its squares.
type Board [Size][Size]int8

func (that Board) at(loc Location) int8 {
	return that[loc.Row][loc.Col]
}

// Pieces - counts the occupied squares.
func (that Board) Pieces() int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}

	return count
}

// GameState is an immutable snapshot of the side to move and the board.
// Methods never modify the receiver.
type GameState struct {
	Player Player `json:"player"`
	Board  Board  `json:"board"`
}

// NewGame returns the starting position: Max pawns on row 0, Min pawns on
// row 2, Max to move.
func NewGame() GameState {
	return GameState{
		Player: Max,
		Board: Board{
			{1, 1, 1},
			{0, 0, 0},
			{-1, -1, -1},
		},
	}
}

// ToVector - flattens the state into the active player's marker followed by the
// squares in row-major order.
func (that GameState) ToVector() []int8 {
	vec := make([]int8, 0, 1+Size*Size)
	vec = append(vec, that.Player.Value())
	for _, row := range that.Board {
		vec = append(vec, row[:]...)
	}

	return vec
}

func (that GameState) String() string {
	var sb strings.Builder

	sb.WriteString("\nBoard:\n")
	for _, row := range that.Board {
		sb.WriteString(fmt.Sprintf("[%3d, %3d, %3d]\n", row[0], row[1], row[2]))
	}
	sb.WriteString(fmt.Sprintf("Next Player: %s\n", that.Player))

	return sb.String()
}
