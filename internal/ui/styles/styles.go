package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/eureka-app/eureka-tui/internal/types"
)

// Styles holds all the UI styles
type Styles struct {
	Theme   Theme
	Palette Palette

	// Layout
	App           lipgloss.Style
	Sidebar       lipgloss.Style
	SidebarTitle  lipgloss.Style
	NavLink       lipgloss.Style
	NavLinkActive lipgloss.Style
	Content       lipgloss.Style
	Swapping      lipgloss.Style
	Backdrop      lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusMode    lipgloss.Style
	StatusHint    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style

	// Overlays
	Overlay        lipgloss.Style
	OverlayTitle   lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	Separator      lipgloss.Style
	Footer         lipgloss.Style

	// Forms
	FieldLabel   lipgloss.Style
	FieldInvalid lipgloss.Style
	ErrorMessage lipgloss.Style
	Button       lipgloss.Style
	Spinner      lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	// Flash messages
	Flash      lipgloss.Style
	FlashFaded lipgloss.Style
}

// New creates a new Styles instance with the dark theme
func New() *Styles {
	return ForTheme(ThemeDark)
}

// ForTheme builds the styles for t.
func ForTheme(t Theme) *Styles {
	p := PaletteFor(t)

	toast := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1)
	}

	return &Styles{
		Theme:   t,
		Palette: p,

		App: lipgloss.NewStyle().
			Foreground(p.Text),

		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(p.Surface1).
			Padding(0, 1),

		SidebarTitle: lipgloss.NewStyle().
			Foreground(p.Mauve).
			Bold(true).
			MarginBottom(1),

		NavLink: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		NavLinkActive: lipgloss.NewStyle().
			Foreground(p.Blue).
			Bold(true),

		Content: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1),

		Swapping: lipgloss.NewStyle().
			Foreground(p.Overlay0).
			Padding(0, 1),

		Backdrop: lipgloss.NewStyle().
			Foreground(p.Overlay0),

		StatusBar: lipgloss.NewStyle().
			Background(p.Surface0).
			Foreground(p.Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(p.Blue).
			Foreground(p.Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(p.Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		StatusOnline: lipgloss.NewStyle().
			Foreground(p.Green),

		StatusOffline: lipgloss.NewStyle().
			Foreground(p.Red),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface2).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(p.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(p.Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(p.Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(p.Surface1),

		Footer: lipgloss.NewStyle().
			Foreground(p.Subtext0).
			MarginTop(1),

		FieldLabel: lipgloss.NewStyle().
			Foreground(p.Subtext0).
			Bold(true),

		FieldInvalid: lipgloss.NewStyle().
			Foreground(p.Red).
			Bold(true),

		ErrorMessage: lipgloss.NewStyle().
			Foreground(p.Red).
			Italic(true),

		Button: lipgloss.NewStyle().
			Foreground(p.Base).
			Background(p.Blue).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(p.Blue),

		ToastInfo:    toast(p.Blue),
		ToastSuccess: toast(p.Green),
		ToastWarning: toast(p.Yellow),
		ToastError:   toast(p.Red),

		Flash: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.Blue).
			Foreground(p.Text).
			PaddingLeft(1),

		FlashFaded: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.Surface1).
			Foreground(p.Overlay0).
			Faint(true).
			PaddingLeft(1),
	}
}

// Toast returns the style for a toast kind. Unknown kinds get the info style.
func (s *Styles) Toast(kind types.ToastKind) lipgloss.Style {
	switch kind {
	case types.ToastSuccess:
		return s.ToastSuccess
	case types.ToastWarning:
		return s.ToastWarning
	case types.ToastError:
		return s.ToastError
	default:
		return s.ToastInfo
	}
}

// KindColor returns the accent colour of a message kind.
func (s *Styles) KindColor(kind types.ToastKind) lipgloss.Color {
	switch kind {
	case types.ToastSuccess:
		return s.Palette.Green
	case types.ToastWarning:
		return s.Palette.Yellow
	case types.ToastError:
		return s.Palette.Red
	default:
		return s.Palette.Blue
	}
}
