// Package tui provides the Bubble Tea front end for the tile merging game.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilemerge/internal/core"
)

// TickMsg drives one game step and animation frame.
type TickMsg time.Time

// tickInterval converts a tick rate to a frame interval. Non-positive rates
// fall back to the default rate.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
