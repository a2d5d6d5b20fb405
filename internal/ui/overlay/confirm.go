package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

// ConfirmResult is emitted when a confirmation dialog is answered. Tag tells
// the caller which question was asked.
type ConfirmResult struct {
	Tag       string
	Confirmed bool
}

// ConfirmDialog is a confirmation dialog overlay with Yes/No options
type ConfirmDialog struct {
	tag      string
	title    string
	message  string
	styles   *styles.Styles
	selected bool // true = Yes, false = No
}

// NewConfirmDialog creates a dialog. No is selected initially.
func NewConfirmDialog(tag, title, message string, s *styles.Styles) *ConfirmDialog {
	return &ConfirmDialog{
		tag:     tag,
		title:   title,
		message: message,
		styles:  s,
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

func (c *ConfirmDialog) answer(yes bool) tea.Cmd {
	tag := c.tag
	return func() tea.Msg {
		return ConfirmResult{Tag: tag, Confirmed: yes}
	}
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "y", "Y":
		return c, c.answer(true)
	case "n", "N", "esc":
		return c, c.answer(false)
	case "enter":
		return c, c.answer(c.selected)
	case "left", "h":
		c.selected = false
	case "right", "l", "tab":
		c.selected = true
	}
	return c, nil
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle, noStyle := c.styles.MenuItem, c.styles.MenuItemActive
	if c.selected {
		yesStyle, noStyle = c.styles.MenuItemActive, c.styles.MenuItem
	}
	b.WriteString(yesStyle.Render("[Y] Yes") + "    " + noStyle.Render("[N] No"))
	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 50, messageLines + 7
}
