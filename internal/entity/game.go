package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a hexapawn session between two players.
type Game struct {
	ID      string                  `json:"id"`
	State   hexapawn.GameState      `json:"state"`
	Winner  string                  `json:"winner,omitempty"`
	Status  string                  `json:"status"`
	Players []*Player               `json:"players,omitempty"`
	History []hexapawn.PlayerAction `json:"history,omitempty"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		State:  hexapawn.NewGame(),
		Status: StatusWaiting,
	}
}

// Turn - name of the side to move, empty once the game is over.
func (that *Game) Turn() string {
	if that.IsFinished() {
		return ""
	}

	return that.State.Player.String()
}

// MakeTurn - plays action for side, which must be the side to move.
func (that *Game) MakeTurn(side string, action hexapawn.PlayerAction) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	player, err := hexapawn.ParsePlayer(side)
	if err != nil {
		return fmt.Errorf("invalid side %q: %w", side, err)
	}

	if that.State.Player != player {
		return apperror.ErrNotYourTurn
	}

	next, err := that.State.Apply(action)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.State = next
	that.History = append(that.History, action)

	that.UpdateGameState()

	return nil
}

// UpdateGameState - finishes the game and records the winner once the state is terminal.
func (that *Game) UpdateGameState() {
	if !that.State.IsTerminal() {
		that.Status = StatusOngoing
		return
	}

	that.Status = StatusFinished
	if winner, ok := that.State.Winner(); ok {
		that.Winner = winner.String()
	}
}

// Actions - legal actions of the side to move, none once the game is over.
func (that *Game) Actions() []hexapawn.PlayerAction {
	if that.IsFinished() {
		return nil
	}

	return that.State.Actions()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsFull() bool {
	return len(that.Players) == 2
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
