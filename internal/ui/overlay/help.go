package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// Categories lists every shell keybinding.
var Categories = []KeyCategory{
	{
		Name: "Navigation",
		Bindings: []KeyBinding{
			{Key: "j/k", Description: "Move through the sidebar"},
			{Key: "Enter", Description: "Open the highlighted page"},
			{Key: "Ctrl+B", Description: "Collapse or show the sidebar"},
		},
	},
	{
		Name: "Entries",
		Bindings: []KeyBinding{
			{Key: "n", Description: "New entry"},
			{Key: "r", Description: "Reload the current page"},
		},
	},
	{
		Name: "Display",
		Bindings: []KeyBinding{
			{Key: "t", Description: "Switch light/dark theme"},
			{Key: "x", Description: "Dismiss the oldest message"},
		},
	},
	{
		Name: "Other",
		Bindings: []KeyBinding{
			{Key: "?", Description: "Help (this screen)"},
			{Key: "q", Description: "Quit"},
		},
	},
}

const helpViewHeight = 16

// HelpOverlay displays the keybinding reference.
type HelpOverlay struct {
	styles    *styles.Styles
	scroll    int
	maxScroll int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(s *styles.Styles) *HelpOverlay {
	return &HelpOverlay{styles: s}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch key.String() {
	case "esc", "q", "?":
		return h, Close
	case "j", "down":
		if h.scroll < h.maxScroll {
			h.scroll++
		}
	case "k", "up":
		if h.scroll > 0 {
			h.scroll--
		}
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll
	}
	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	var content strings.Builder
	for i, cat := range Categories {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(h.styles.MenuItemActive.Render(cat.Name + ":"))
		content.WriteString("\n")

		for _, binding := range cat.Bindings {
			key := h.styles.MenuKey.Width(8).Render(binding.Key)
			content.WriteString("  " + key + h.styles.MenuItem.Render(binding.Description) + "\n")
		}
	}

	lines := strings.Split(strings.TrimRight(content.String(), "\n"), "\n")
	h.maxScroll = max(0, len(lines)-helpViewHeight)
	h.scroll = min(h.scroll, h.maxScroll)

	end := min(h.scroll+helpViewHeight, len(lines))
	result := strings.Join(lines[h.scroll:end], "\n")

	if h.maxScroll > 0 {
		result += "\n" + h.styles.Footer.Render(lipgloss.JoinHorizontal(
			lipgloss.Left,
			"[", h.styles.MenuKey.Render("j/k"), " to scroll, ",
			h.styles.MenuKey.Render("g/G"), " to jump]",
		))
	}

	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 50, helpViewHeight + 6
}
