package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	width  int
	styles *styles.Styles

	online  bool
	checked bool
	theme   string
	user    string
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithOnline records the latest server check.
func (sb StatusBar) WithOnline(online bool) StatusBar {
	sb.online = online
	sb.checked = true
	return sb
}

// WithTheme shows the active theme name.
func (sb StatusBar) WithTheme(theme string) StatusBar {
	sb.theme = theme
	return sb
}

// WithUser shows who is signed in. Empty means signed out.
func (sb StatusBar) WithUser(user string) StatusBar {
	sb.user = user
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	hints := GetHints(sb.mode)

	var content string
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, sb.styles.StatusHint.Render(hints))
	} else {
		content = modeBadge
	}

	right := sb.info()
	if right != "" {
		gap := sb.width - lipgloss.Width(content) - lipgloss.Width(right) - 2
		if gap > 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Left, content, lipgloss.NewStyle().Width(gap).Render(""), right)
		}
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}

func (sb StatusBar) info() string {
	var parts []string
	if sb.user != "" {
		parts = append(parts, sb.styles.StatusInfo.Render(sb.user))
	}
	if sb.theme != "" {
		parts = append(parts, sb.styles.StatusInfo.Render(sb.theme))
	}
	if sb.checked {
		if sb.online {
			parts = append(parts, sb.styles.StatusOnline.Render("● online"))
		} else {
			parts = append(parts, sb.styles.StatusOffline.Render("○ offline"))
		}
	}
	return strings.Join(parts, sb.styles.StatusHint.Render("  "))
}
