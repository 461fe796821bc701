// Package tui provides the Bubble Tea integration for soarscape.
// It handles the terminal UI loop, input mapping, and the menu/game flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
// Gen identifies the tick chain; ticks from a superseded chain are dropped.
type TickMsg struct {
	Gen  int64
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick message for chain gen.
func tickCmd(tickRate int, gen int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
