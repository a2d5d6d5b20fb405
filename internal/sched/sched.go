// Package sched schedules deferred messages for bubbletea models.
package sched

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler delivers msg after d. Cancellation is the receiver's job: stale
// messages carry a token the model no longer accepts.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// Tick schedules with tea.Tick.
type Tick struct{}

// After implements Scheduler.
func (Tick) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
