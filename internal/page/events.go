package page

import tea "github.com/charmbracelet/bubbletea"

// Listener handles a dispatched event.
type Listener func(e *Event)

// Event is dispatched synchronously to every listener of its type.
type Event struct {
	Type   string
	Target *Element
	Detail any

	prevented bool
	deferred  []tea.Cmd
}

// NewEvent builds an event for dispatch.
func NewEvent(typ string, target *Element, detail any) *Event {
	return &Event{Type: typ, Target: target, Detail: detail}
}

// PreventDefault cancels the action the event announces.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Defer queues a command to run after dispatch. Listeners use it for work
// that has to happen later, such as timers.
func (e *Event) Defer(cmd tea.Cmd) {
	if cmd != nil {
		e.deferred = append(e.deferred, cmd)
	}
}

// AddEventListener registers fn for events of type typ.
func (d *Document) AddEventListener(typ string, fn Listener) {
	d.listeners[typ] = append(d.listeners[typ], fn)
}

// Dispatch runs the listeners for e in registration order and returns the
// commands they deferred.
func (d *Document) Dispatch(e *Event) tea.Cmd {
	for _, fn := range d.listeners[e.Type] {
		fn(e)
	}
	switch len(e.deferred) {
	case 0:
		return nil
	case 1:
		return e.deferred[0]
	default:
		return tea.Batch(e.deferred...)
	}
}
