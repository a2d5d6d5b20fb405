// Package theme switches the shell between the light and dark palettes and
// remembers the choice.
package theme

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/eureka-app/eureka-tui/internal/icons"
	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/prefs"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

// ToggleID is the id of the element whose activation flips the theme.
const ToggleID = "theme-toggle"

// DetectDark reports whether the terminal background is dark.
func DetectDark() bool {
	return lipgloss.HasDarkBackground()
}

// Controller applies the theme to the document body.
type Controller struct {
	doc    *page.Document
	store  prefs.Store
	icons  icons.Renderer
	detect func() bool
	logger *slog.Logger

	onChange []func(styles.Theme)
}

// New creates a Controller. detect reports the system preference and may be
// nil, meaning dark; the icon renderer may be nil.
func New(doc *page.Document, store prefs.Store, ic icons.Renderer, detect func() bool, logger *slog.Logger) *Controller {
	if detect == nil {
		detect = func() bool { return true }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		doc:    doc,
		store:  store,
		icons:  ic,
		detect: detect,
		logger: logger,
	}
}

// OnChange registers fn to run after every theme change.
func (c *Controller) OnChange(fn func(styles.Theme)) {
	c.onChange = append(c.onChange, fn)
}

// Setup applies the saved theme, or the system preference when nothing is
// saved yet, in which case the detected theme is saved. It also starts
// listening for clicks on the toggle element.
func (c *Controller) Setup() styles.Theme {
	c.doc.AddEventListener("click", func(e *page.Event) {
		if e.Target != nil && e.Target.ClosestID(ToggleID) != nil {
			c.Toggle()
		}
	})

	if saved, ok, err := c.store.Get(prefs.KeyTheme); err != nil {
		c.logger.Warn("reading theme preference", "error", err)
	} else if t, valid := styles.ParseTheme(saved); ok && valid {
		c.apply(t)
		return t
	}

	t := styles.ThemeLight
	if c.detect() {
		t = styles.ThemeDark
	}
	c.apply(t)
	c.persist(t)
	return t
}

// Current returns the theme the body carries.
func (c *Controller) Current() styles.Theme {
	if c.doc.Body.HasClass(styles.ThemeDark.BodyClass()) {
		return styles.ThemeDark
	}
	return styles.ThemeLight
}

// Toggle flips between light and dark and saves the result.
func (c *Controller) Toggle() styles.Theme {
	return c.Set(c.Current().Toggle())
}

// Set applies and saves t.
func (c *Controller) Set(t styles.Theme) styles.Theme {
	c.apply(t)
	c.persist(t)
	if c.icons != nil {
		c.icons.Replace(c.doc.Body)
	}
	for _, fn := range c.onChange {
		fn(t)
	}
	return t
}

func (c *Controller) apply(t styles.Theme) {
	c.doc.Body.SetClassName(t.BodyClass())
	if toggle := c.doc.GetElementByID(ToggleID); toggle != nil {
		if icon := toggle.QueryTag("i"); icon != nil {
			icon.SetAttr("data-icon", iconFor(t))
		}
	}
}

func (c *Controller) persist(t styles.Theme) {
	if err := c.store.Set(prefs.KeyTheme, string(t)); err != nil {
		c.logger.Warn("saving theme preference", "error", err)
	}
}

// iconFor names the icon of the theme the toggle switches to.
func iconFor(t styles.Theme) string {
	if t == styles.ThemeDark {
		return "sun"
	}
	return "moon"
}
