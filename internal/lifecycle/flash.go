package lifecycle

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/page"
)

// ClassCloseButton marks the manual close button of a flash message.
const ClassCloseButton = "close-btn"

const flashStartedKey = "flash-started"

// Flashes returns the flash messages currently on the page.
func (g *Glue) Flashes() []*page.Element {
	var out []*page.Element
	g.doc.Body.Walk(func(n *page.Element) bool {
		if n.Kind != page.KindElement {
			return false
		}
		for _, c := range page.FlashClasses {
			if n.HasClass(c) {
				out = append(out, n)
				return false
			}
		}
		return true
	})
	return out
}

// StartFlash gives every new flash message a close button and schedules
// its automatic dismissal. Messages already started are left alone.
func (g *Glue) StartFlash() tea.Cmd {
	var cmds []tea.Cmd
	for _, msg := range g.Flashes() {
		if _, started := msg.Data(flashStartedKey); started {
			continue
		}
		msg.SetData(flashStartedKey, "true")

		if msg.Query(ClassCloseButton) == nil {
			btn := g.doc.CreateElement("button")
			btn.SetClassName(ClassCloseButton)
			btn.SetText("×")
			msg.InsertBefore(btn, msg.FirstChild())
		}
		cmds = append(cmds, g.sched.After(g.opts.FlashDismiss, flashFadeMsg{id: g.id, el: msg}))
	}
	return tea.Batch(cmds...)
}

// DismissFlash fades msg out and removes it once the fade is over.
func (g *Glue) DismissFlash(msg *page.Element) tea.Cmd {
	if msg == nil || !msg.IsConnected() {
		return nil
	}
	return g.fade(msg)
}

func (g *Glue) fade(msg *page.Element) tea.Cmd {
	if !msg.IsConnected() {
		return nil
	}
	msg.SetStyle("opacity", "0")
	msg.SetStyle("transition", "opacity 0.5s ease")
	return g.sched.After(g.opts.FlashFade, flashRemoveMsg{id: g.id, el: msg})
}

func (g *Glue) closeFlash(e *page.Event) {
	if e.Target == nil || e.Target.Closest(ClassCloseButton) == nil {
		return
	}
	for _, c := range page.FlashClasses {
		if msg := e.Target.Closest(c); msg != nil {
			e.Defer(g.DismissFlash(msg))
			return
		}
	}
}
