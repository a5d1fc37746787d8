// Package tui provides the Bubble Tea frontend for star-dodge.
// It handles the terminal UI loop, input mapping, and screen switching.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Run identifies the
// session that scheduled it so ticks left over from a previous game are
// dropped.
type TickMsg struct {
	Time time.Time
	Run  int
}

// tickCmd returns a Bubble Tea command that sends one tick message after
// one refresh interval.
func tickCmd(tickRate, run int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Run: run}
	})
}
