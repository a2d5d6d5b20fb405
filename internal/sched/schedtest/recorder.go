// Package schedtest provides a Scheduler that records instead of waiting.
package schedtest

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduled is one recorded After call.
type Scheduled struct {
	Delay time.Duration
	Msg   tea.Msg
}

// Recorder records scheduled messages so tests can deliver them by hand.
type Recorder struct {
	Calls []Scheduled
}

// After records the call and returns a command yielding msg immediately.
func (r *Recorder) After(d time.Duration, msg tea.Msg) tea.Cmd {
	r.Calls = append(r.Calls, Scheduled{Delay: d, Msg: msg})
	return func() tea.Msg { return msg }
}

// Last returns the most recent call.
func (r *Recorder) Last() Scheduled {
	if len(r.Calls) == 0 {
		return Scheduled{}
	}
	return r.Calls[len(r.Calls)-1]
}

// Take returns and forgets every recorded call.
func (r *Recorder) Take() []Scheduled {
	out := r.Calls
	r.Calls = nil
	return out
}

// Find returns the recorded calls whose message matches pred.
func (r *Recorder) Find(pred func(tea.Msg) bool) []Scheduled {
	var out []Scheduled
	for _, c := range r.Calls {
		if pred(c.Msg) {
			out = append(out, c)
		}
	}
	return out
}
