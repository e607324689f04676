package hexapawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameState_ScriptedGame(t *testing.T) {
	// Given: the starting position
	g0 := NewGame()
	require.Equal(t, Board{{1, 1, 1}, {0, 0, 0}, {-1, -1, -1}}, g0.Board)

	// When: Max advances from (0,0)
	require.True(t, Location{0, 0}.CheckAdvance(g0))
	g1 := g0.Advance(Location{0, 0})

	// Then
	assert.Equal(t, Board{{0, 1, 1}, {1, 0, 0}, {-1, -1, -1}}, g1.Board)
	assert.Equal(t, Min, g1.Player)

	// When: Min advances from (2,2)
	require.True(t, Location{2, 2}.CheckAdvance(g1))
	g2 := g1.Advance(Location{2, 2})

	// Then
	assert.Equal(t, Board{{0, 1, 1}, {1, 0, -1}, {-1, -1, 0}}, g2.Board)
	assert.Equal(t, Max, g2.Player)

	// When: Max on (1,0) tries both captures
	assert.False(t, Location{1, 0}.CheckCaptureLeft(g2))
	require.True(t, Location{1, 0}.CheckCaptureRight(g2))
	g3 := g2.CaptureRight(Location{1, 0})

	// Then: the Min pawn on (2,1) is gone and the game is over
	assert.Equal(t, Board{{0, 1, 1}, {0, 0, -1}, {-1, 1, 0}}, g3.Board)
	assert.Equal(t, Min, g3.Player)
	assert.True(t, g3.IsTerminal())
}

func TestGameState_SecondScriptedGame(t *testing.T) {
	// Given: a sequence of moves from the starting position
	s1 := NewGame().Advance(Location{0, 0})
	s2 := s1.CaptureLeft(Location{2, 1})
	s3 := s2.Advance(Location{0, 1})
	s4 := s3.Advance(Location{2, 2})
	s5 := s4.Advance(Location{1, 1})

	// Then: each step matches the expected board
	assert.Equal(t, Board{{0, 1, 1}, {-1, 0, 0}, {-1, 0, -1}}, s2.Board)
	assert.Equal(t, Board{{0, 0, 1}, {-1, 1, 0}, {-1, 0, -1}}, s3.Board)
	assert.Equal(t, Board{{0, 0, 1}, {-1, 1, -1}, {-1, 0, 0}}, s4.Board)
	assert.Equal(t, Board{{0, 0, 1}, {-1, 0, -1}, {-1, 1, 0}}, s5.Board)

	// Then: Max reached row 2
	assert.True(t, s5.IsTerminal())
	assert.Equal(t, []int8{-1, 0, 0, 1, -1, 0, -1, -1, 1, 0}, s5.ToVector())
}

func TestGameState_Result(t *testing.T) {
	state := GameState{
		Player: Min,
		Board: Board{
			{0, 0, 1},
			{1, 0, 1},
			{-1, -1, 0},
		},
	}

	t.Run("Dispatches on the action kind", func(t *testing.T) {
		src := Location{2, 1}

		assert.Equal(t, state.Advance(src), state.Result(PlayerAction{Kind: Advance, Src: src}))
		assert.Equal(t, state.CaptureLeft(src), state.Result(PlayerAction{Kind: CaptureLeft, Src: src}))
		assert.Equal(t, state.CaptureRight(src), state.Result(PlayerAction{Kind: CaptureRight, Src: src}))
	})

	t.Run("Input state is left untouched", func(t *testing.T) {
		// Given: a copy taken before the transition
		before := state

		// When
		next := state.Result(PlayerAction{Kind: CaptureRight, Src: Location{2, 1}})

		// Then
		assert.Equal(t, before, state)
		assert.NotEqual(t, state.Board, next.Board)
	})

	t.Run("Unknown kind panics", func(t *testing.T) {
		assert.Panics(t, func() {
			state.Result(PlayerAction{Kind: ActionKind(7), Src: Location{2, 1}})
		})
	})
}

func TestGameState_UncheckedTransitions(t *testing.T) {
	t.Run("Advancing from the far row fails fast", func(t *testing.T) {
		// Given: a Max pawn already on row 2
		state := GameState{Player: Max, Board: Board{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}}}

		// Then: the transition panics instead of wrapping around
		assert.Panics(t, func() { state.Advance(Location{2, 0}) })
	})

	t.Run("Capturing off the edge fails fast", func(t *testing.T) {
		state := GameState{Player: Min, Board: Board{{0, 0, 0}, {-1, 0, -1}, {0, 0, 0}}}

		assert.Panics(t, func() { state.CaptureLeft(Location{1, 0}) })
		assert.Panics(t, func() { state.CaptureRight(Location{1, 2}) })
	})
}

func TestGameState_Apply(t *testing.T) {
	t.Run("Legal action", func(t *testing.T) {
		// When
		next, err := NewGame().Apply(PlayerAction{Kind: Advance, Src: Location{0, 2}})

		// Then
		require.NoError(t, err)
		assert.Equal(t, Board{{1, 1, 0}, {0, 0, 1}, {-1, -1, -1}}, next.Board)
		assert.Equal(t, Min, next.Player)
	})

	t.Run("Source out of bounds", func(t *testing.T) {
		_, err := NewGame().Apply(PlayerAction{Kind: Advance, Src: Location{-1, 0}})

		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("Destination out of bounds", func(t *testing.T) {
		// Given: Max on (1,0) asked to capture left
		state := GameState{Player: Max, Board: Board{{0, 0, 0}, {1, 0, 0}, {0, -1, 0}}}

		// When
		_, err := state.Apply(PlayerAction{Kind: CaptureLeft, Src: Location{1, 0}})

		// Then
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("Source on the far row", func(t *testing.T) {
		_, err := NewGame().Apply(PlayerAction{Kind: Advance, Src: Location{2, 0}})

		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("Source holds an opposing pawn", func(t *testing.T) {
		state := GameState{Player: Max, Board: Board{{1, 0, 0}, {0, -1, 0}, {0, 0, 0}}}

		_, err := state.Apply(PlayerAction{Kind: Advance, Src: Location{1, 1}})

		assert.ErrorIs(t, err, ErrNotYourPiece)
	})

	t.Run("Source is empty", func(t *testing.T) {
		_, err := NewGame().Apply(PlayerAction{Kind: Advance, Src: Location{1, 1}})

		assert.ErrorIs(t, err, ErrNotYourPiece)
	})

	t.Run("Destination in bounds but not allowed", func(t *testing.T) {
		// When: capturing into an empty square
		state := NewGame()
		next, err := state.Apply(PlayerAction{Kind: CaptureRight, Src: Location{0, 0}})

		// Then: the state is returned unchanged
		assert.ErrorIs(t, err, ErrIllegalAction)
		assert.Equal(t, state, next)
	})

	t.Run("Unknown action kind", func(t *testing.T) {
		_, err := NewGame().Apply(PlayerAction{Kind: ActionKind(9), Src: Location{0, 0}})

		assert.ErrorIs(t, err, ErrUnknownAction)
	})
}
