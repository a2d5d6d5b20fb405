package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/lifecycle"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/overlay"
	"github.com/eureka-app/eureka-tui/internal/ui/sidebar"
)

// handleKey processes keyboard input when no overlay is open
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, m.overlays.Push(overlay.NewHelpOverlay(m.styles))

	case key.Matches(msg, m.keys.New):
		return m.openEntryForm()

	case key.Matches(msg, m.keys.Theme):
		m.theme.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Sidebar):
		return m, m.click(m.doc.GetElementByID(sidebar.ToggleID))

	case key.Matches(msg, m.keys.Reload):
		cmd := m.navigate(m.path)
		return m, cmd

	case key.Matches(msg, m.keys.Dismiss):
		return m, m.dismissFlash()

	case key.Matches(msg, m.keys.Focus):
		if m.mode == types.ModeNav {
			m.mode = types.ModeContent
		} else {
			m.mode = types.ModeNav
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.sidebar.Shown() {
			return m, m.click(m.doc.Query(sidebar.ClassOverlay))
		}
		return m, nil
	}

	if m.mode == types.ModeContent {
		return m.handleContentKey(msg)
	}
	return m.handleNavKey(msg)
}

func (m Model) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveCursor(1)
	case key.Matches(msg, m.keys.Open):
		link := m.sidebar.Selected()
		path, ok := m.sidebar.Activate()
		if !ok {
			return m, nil
		}
		m.mode = types.ModeContent
		cmd := tea.Batch(m.click(link), m.navigate(path))
		return m, cmd
	}
	return m, nil
}

func (m Model) handleContentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.scroll = max(m.scroll-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.scroll = min(m.scroll+1, max(len(m.contentLines())-1, 0))
	}
	return m, nil
}

// updateOverlay routes keys to the top overlay.
func (m Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	return m, m.overlays.Update(msg)
}

func (m Model) openEntryForm() (tea.Model, tea.Cmd) {
	form := m.doc.GetElementByID(EntryFormID)
	if form != nil {
		// Start from a clean page form as well.
		for _, field := range lifecycle.Fields(form) {
			field.RemoveClass(lifecycle.ClassInvalid)
			if next := field.NextSibling(); next != nil && next.HasClass(lifecycle.ClassErrorMessage) {
				next.Remove()
			}
		}
	}
	m.entry = overlay.NewEntryForm(m.styles)
	m.mode = types.ModeForm
	return m, m.overlays.Push(m.entry)
}

// click dispatches a click on el the way a pointer would.
func (m Model) click(el *page.Element) tea.Cmd {
	if el == nil {
		return nil
	}
	return m.doc.Dispatch(page.NewEvent(lifecycle.EventClick, el, nil))
}

// dismissFlash closes the oldest flash message through its close button.
func (m Model) dismissFlash() tea.Cmd {
	for _, msg := range m.glue.Flashes() {
		if msg.Style("opacity") == "0" {
			continue
		}
		if btn := msg.Query(lifecycle.ClassCloseButton); btn != nil {
			return m.click(btn)
		}
		return m.glue.DismissFlash(msg)
	}
	return nil
}
