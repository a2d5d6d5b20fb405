package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/eureka-app/eureka-tui/internal/lifecycle"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/sidebar"
	"github.com/eureka-app/eureka-tui/internal/ui/statusbar"
)

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	bar := statusbar.New(m.mode, m.width, m.styles).
		WithTheme(string(m.theme.Current())).
		WithUser(m.user)
	if m.checked {
		bar = bar.WithOnline(m.online)
	}
	statusView := bar.Render()

	bodyHeight := max(m.height-lipgloss.Height(statusView), 1)

	if !m.overlays.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.overlays.View(m.styles, m.width, bodyHeight),
			statusView,
		)
	}

	var toastView string
	if m.notifier.Visible() {
		toastView = m.toasts.Render(m.notifier.Element(), m.notifier.Offset(), m.width)
	}
	toastHeight := 0
	if toastView != "" {
		toastView = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toastView)
		toastHeight = lipgloss.Height(toastView)
	}

	mainHeight := max(bodyHeight-toastHeight, 1)
	body := m.renderBody(mainHeight)

	parts := []string{}
	if toastView != "" {
		parts = append(parts, toastView)
	}
	parts = append(parts, body, statusView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderBody draws the sidebar next to the content area.
func (m Model) renderBody(height int) string {
	contentWidth := m.width
	var side string
	if m.sidebar.Visible() {
		w := min(m.sidebar.Width(), m.width)
		side = m.renderSidebar(w, height)
		if m.sidebar.Narrow() {
			// Overlay layout: the rest of the screen is a dimmed backdrop.
			backdrop := m.styles.Backdrop.
				Width(max(m.width-w, 0)).
				Height(height).
				Render(m.renderContent(max(m.width-w, 1), height))
			return lipgloss.JoinHorizontal(lipgloss.Top, side, backdrop)
		}
		contentWidth = max(m.width-w, 1)
	}

	content := m.renderContent(contentWidth, height)
	if side == "" {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, side, content)
}

func (m Model) renderSidebar(width, height int) string {
	collapsed := m.sidebar.Collapsed()

	var b strings.Builder
	if !collapsed {
		b.WriteString(m.styles.SidebarTitle.Render("Eureka"))
		b.WriteString("\n")
	}

	cursor := m.sidebar.Cursor()
	for i, link := range m.sidebar.Links() {
		label := linkLabel(link, collapsed)
		style := m.styles.NavLink
		if link.HasClass(sidebar.ClassActiveLink) {
			style = m.styles.NavLinkActive
		}
		prefix := "  "
		if i == cursor && m.mode == types.ModeNav {
			prefix = "> "
		}
		b.WriteString(style.Render(prefix + label))
		b.WriteString("\n")
	}

	return m.styles.Sidebar.
		Width(width).
		Height(height).
		Render(strings.TrimRight(b.String(), "\n"))
}

// linkLabel is the link's icon and text, or just the icon on the rail.
func linkLabel(link *page.Element, collapsed bool) string {
	var icon, text string
	for _, c := range link.Children() {
		if c.Kind == page.KindElement && c.Tag == "i" {
			icon = strings.TrimSpace(c.TextContent())
			continue
		}
		text += c.TextContent()
	}
	text = strings.TrimSpace(text)
	if collapsed {
		if icon != "" {
			return icon
		}
		r := []rune(text)
		if len(r) > 0 {
			return string(r[0])
		}
		return ""
	}
	if icon != "" {
		return icon + " " + text
	}
	return text
}

func (m Model) renderContent(width, height int) string {
	var sections []string
	if flashes := m.renderFlashes(width); flashes != "" {
		sections = append(sections, flashes)
	}

	lines := m.contentLines()
	if m.loading && len(lines) == 0 {
		lines = []string{m.spinner.View() + " Loading..."}
	}
	scroll := min(m.scroll, max(len(lines)-1, 0))
	lines = lines[scroll:]

	style := m.styles.Content
	if main := m.doc.GetElementByID(page.MainContentID); main != nil && main.HasClass(lifecycle.ClassSwapping) {
		style = m.styles.Swapping
	}
	sections = append(sections, style.Width(width).Render(strings.Join(lines, "\n")))

	out := strings.Join(sections, "\n")
	rows := strings.Split(out, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(rows, "\n"))
}

func (m Model) contentLines() []string {
	main := m.doc.GetElementByID(page.MainContentID)
	if main == nil {
		return nil
	}
	text := main.InnerText()
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func (m Model) renderFlashes(width int) string {
	var out []string
	for _, msg := range m.glue.Flashes() {
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg.InnerText()), "×"))
		if text == "" {
			continue
		}
		style := m.styles.Flash.BorderForeground(m.styles.KindColor(flashKind(msg)))
		if msg.Style("opacity") == "0" {
			style = m.styles.FlashFaded
		}
		out = append(out, style.Width(max(width-2, 1)).Render(text+"  [x]"))
	}
	return strings.Join(out, "\n")
}
