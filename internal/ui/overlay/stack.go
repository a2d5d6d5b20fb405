package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

// Stack holds the open overlays; only the top one receives input.
type Stack struct {
	overlays []Overlay
}

// NewStack creates a new empty overlay stack
func NewStack() *Stack {
	return &Stack{}
}

// Push opens o on top of the stack and returns its init command.
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Pop removes and returns the top overlay, or nil when empty.
func (s *Stack) Pop() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}

	top := s.overlays[len(s.overlays)-1]
	s.overlays = s.overlays[:len(s.overlays)-1]
	return top
}

// Current returns the top overlay without removing it, or nil.
func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

// IsEmpty reports whether no overlay is open.
func (s *Stack) IsEmpty() bool {
	return len(s.overlays) == 0
}

// Len returns the number of open overlays.
func (s *Stack) Len() int {
	return len(s.overlays)
}

// Clear closes every overlay.
func (s *Stack) Clear() {
	s.overlays = nil
}

// Update pops the top overlay on CloseOverlayMsg and forwards anything else
// to it.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	if s.IsEmpty() {
		return nil
	}

	if _, ok := msg.(CloseOverlayMsg); ok {
		s.Pop()
		return nil
	}

	newModel, cmd := s.Current().Update(msg)
	if o, ok := newModel.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = o
	}
	return cmd
}

// View draws the top overlay in a bordered box centred on a width by height
// area. It returns "" when the stack is empty.
func (s *Stack) View(st *styles.Styles, width, height int) string {
	top := s.Current()
	if top == nil {
		return ""
	}

	w, _ := top.Size()
	w = min(w, max(width-4, 10))

	body := top.View()
	if title := top.Title(); title != "" {
		body = st.OverlayTitle.Render(title) + "\n" + body
	}
	box := st.Overlay.Width(w).Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
