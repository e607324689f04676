// Command demo plays two scripted hexapawn sequences and prints every position.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	run(os.Stdout, logger)
}

func run(out io.Writer, logger *slog.Logger) {
	g0 := hexapawn.NewGame()
	fmt.Fprintln(out, g0)

	scriptedCaptures(out, g0)

	fmt.Fprintln(out, g0)
	listActions(out, logger, g0)

	states := []hexapawn.GameState{g0}
	moves := []hexapawn.PlayerAction{
		{Kind: hexapawn.Advance, Src: hexapawn.Location{Row: 0, Col: 0}},
		{Kind: hexapawn.CaptureLeft, Src: hexapawn.Location{Row: 2, Col: 1}},
		{Kind: hexapawn.Advance, Src: hexapawn.Location{Row: 0, Col: 1}},
		{Kind: hexapawn.Advance, Src: hexapawn.Location{Row: 2, Col: 2}},
		{Kind: hexapawn.Advance, Src: hexapawn.Location{Row: 1, Col: 1}},
	}

	for _, move := range moves {
		current := states[len(states)-1]

		next, err := current.Apply(move)
		if err != nil {
			logger.Error("scripted move rejected", "action", move.String(), "error", err)
			return
		}

		fmt.Fprintln(out, next)
		listActions(out, logger, next)
		states = append(states, next)
	}

	last := states[len(states)-1]
	fmt.Fprintln(out, last.IsTerminal())
	fmt.Fprintln(out, last.ToVector())
}

// scriptedCaptures gates each move behind its legality check.
func scriptedCaptures(out io.Writer, g0 hexapawn.GameState) {
	max0 := hexapawn.Location{Row: 0, Col: 0}
	if !max0.CheckAdvance(g0) {
		return
	}

	g1 := g0.Advance(max0)
	fmt.Fprintf(out, "Move 1:%s\n", g1)

	min0 := hexapawn.Location{Row: 2, Col: 2}
	if !min0.CheckAdvance(g1) {
		return
	}

	g2 := g1.Advance(min0)
	fmt.Fprintf(out, "Move 2:%s\n", g2)

	max1 := hexapawn.Location{Row: 1, Col: 0}
	if max1.CheckCaptureLeft(g2) {
		fmt.Fprintln(out, g2)
		return
	}

	fmt.Fprintln(out, "Capture Left Failed.")

	if max1.CheckCaptureRight(g2) {
		g3 := g2.CaptureRight(max1)
		fmt.Fprintf(out, "Move 3:%s\n", g3)
	}
}

func listActions(out io.Writer, logger *slog.Logger, state hexapawn.GameState) {
	actions := state.Actions()
	logger.Debug("actions listed", "player", state.Player.String(), "count", len(actions))

	for _, action := range actions {
		fmt.Fprintln(out, action)
	}
}
