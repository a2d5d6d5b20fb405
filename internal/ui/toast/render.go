package toast

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

// Renderer draws the toast element
type Renderer struct {
	styles *styles.Styles
}

// NewRenderer creates a Renderer with the given styles
func NewRenderer(styles *styles.Styles) *Renderer {
	return &Renderer{
		styles: styles,
	}
}

// Render draws el for a screen of the given width. offset is the slide-in
// progress from Notifier.Offset. Returns empty string unless el is shown.
func (r *Renderer) Render(el *page.Element, offset float64, width int) string {
	if el == nil || !el.HasClass(ClassShow) {
		return ""
	}

	toastWidth := width / 3
	if toastWidth > 40 {
		toastWidth = 40 // Cap maximum toast width
	}
	if toastWidth < 16 {
		toastWidth = min(16, width)
	}

	var body string
	message := ""
	if slot := el.Query(ClassMessage); slot != nil {
		message = strings.TrimSpace(slot.TextContent())
	}
	if slot := el.Query(ClassIcon); slot != nil {
		if icon := strings.TrimSpace(slot.TextContent()); icon != "" {
			body = icon + " "
		}
	}
	body += message

	box := r.styles.Toast(KindOf(el)).Width(toastWidth).Render(body)
	if shift := int(offset * float64(toastWidth)); shift > 0 {
		box = lipgloss.NewStyle().MarginRight(shift).Render(box)
	}
	return box
}
