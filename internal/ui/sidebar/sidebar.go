// Package sidebar manages the collapsible navigation sidebar.
//
// On a wide terminal the sidebar collapses to a narrow rail and the choice is
// remembered. On a narrow one it slides over the content instead and closes
// again when a link is chosen or the backdrop is clicked.
package sidebar

import (
	"log/slog"
	"strconv"

	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/eureka-app/eureka-tui/internal/prefs"
)

const (
	ElementID       = "sidebar"
	ToggleID        = "sidebar-toggle"
	ClassContent    = "app-content"
	ClassOverlay    = "sidebar-overlay"
	ClassNavLink    = "sidebar-nav-link"
	ClassShow       = "show"
	ClassCollapsed  = "sidebar-collapsed"
	ClassActiveLink = "active"
)

// Options sizes the layout, in terminal columns.
type Options struct {
	Breakpoint     int
	Width          int
	CollapsedWidth int
}

// DefaultOptions returns the stock layout.
func DefaultOptions() Options {
	return Options{Breakpoint: 100, Width: 28, CollapsedWidth: 6}
}

// Controller drives the sidebar element of a document.
type Controller struct {
	doc    *page.Document
	store  prefs.Store
	opts   Options
	logger *slog.Logger

	width  int
	cursor int
}

func New(doc *page.Document, store prefs.Store, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{doc: doc, store: store, opts: opts, logger: logger}
}

// Setup creates the backdrop overlay if the document lacks one, hooks up
// click handling and applies the saved collapse state for the given
// terminal width.
func (c *Controller) Setup(width int) {
	c.width = width
	if c.doc.Query(ClassOverlay) == nil {
		overlay := c.doc.CreateElement("div")
		overlay.SetClassName(ClassOverlay)
		c.doc.Body.AppendChild(overlay)
	}

	c.doc.AddEventListener("click", func(e *page.Event) {
		if e.Target == nil {
			return
		}
		switch {
		case e.Target.ClosestID(ToggleID) != nil:
			c.Toggle()
		case e.Target.Closest(ClassOverlay) != nil:
			c.OverlayClicked()
		case e.Target.Closest(ClassNavLink) != nil:
			c.NavLinkActivated()
		}
	})

	c.Restore()
}

// Narrow reports whether the current width uses the overlay layout.
func (c *Controller) Narrow() bool {
	return c.width <= c.opts.Breakpoint
}

// Toggle shows or hides the sidebar on a narrow terminal and collapses or
// expands it on a wide one. Only the wide state is saved.
func (c *Controller) Toggle() {
	sb := c.element()
	if sb == nil {
		return
	}
	if c.Narrow() {
		sb.ToggleClass(ClassShow)
		return
	}

	collapsed := sb.ToggleClass(ClassCollapsed)
	c.setMargin(c.marginFor(collapsed))
	if err := prefs.SetBool(c.store, prefs.KeySidebarCollapsed, collapsed); err != nil {
		c.logger.Warn("saving sidebar state", "error", err)
	}
}

// Restore applies the saved collapse state. It does nothing on a narrow
// terminal.
func (c *Controller) Restore() {
	sb := c.element()
	if sb == nil || c.Narrow() {
		return
	}
	if c.savedCollapsed() {
		sb.AddClass(ClassCollapsed)
		c.setMargin(c.opts.CollapsedWidth)
	}
}

// Resize adapts the layout to a new terminal width.
func (c *Controller) Resize(width int) {
	c.width = width
	sb := c.element()
	if sb == nil {
		return
	}
	if c.Narrow() {
		sb.RemoveClass(ClassCollapsed)
		c.setMargin(0)
		return
	}

	collapsed := c.savedCollapsed()
	if collapsed {
		sb.AddClass(ClassCollapsed)
	}
	c.setMargin(c.marginFor(collapsed))
	sb.RemoveClass(ClassShow)
}

// NavLinkActivated closes the overlay sidebar after navigation.
func (c *Controller) NavLinkActivated() {
	if sb := c.element(); sb != nil && c.Narrow() {
		sb.RemoveClass(ClassShow)
	}
}

// OverlayClicked closes the overlay sidebar.
func (c *Controller) OverlayClicked() {
	if sb := c.element(); sb != nil {
		sb.RemoveClass(ClassShow)
	}
}

// Collapsed reports whether the sidebar is collapsed to a rail.
func (c *Controller) Collapsed() bool {
	sb := c.element()
	return sb != nil && sb.HasClass(ClassCollapsed)
}

// Shown reports whether the overlay sidebar is open.
func (c *Controller) Shown() bool {
	sb := c.element()
	return sb != nil && sb.HasClass(ClassShow)
}

// Visible reports whether the sidebar takes up screen space at all.
func (c *Controller) Visible() bool {
	if c.element() == nil {
		return false
	}
	return !c.Narrow() || c.Shown()
}

// Width returns the columns the sidebar occupies when visible.
func (c *Controller) Width() int {
	if c.Collapsed() {
		return c.opts.CollapsedWidth
	}
	return c.opts.Width
}

// ContentMargin returns the left margin of the content area.
func (c *Controller) ContentMargin() int {
	content := c.doc.Query(ClassContent)
	if content == nil {
		return 0
	}
	n, err := strconv.Atoi(content.Style("margin-left"))
	if err != nil {
		return 0
	}
	return n
}

// Links returns the navigation links in document order.
func (c *Controller) Links() []*page.Element {
	sb := c.element()
	if sb == nil {
		return nil
	}
	return sb.QueryAll(ClassNavLink)
}

// Cursor returns the index of the highlighted link.
func (c *Controller) Cursor() int {
	if n := len(c.Links()); c.cursor >= n {
		return max(n-1, 0)
	}
	return c.cursor
}

// MoveCursor moves the highlight by delta, clamped to the link list.
func (c *Controller) MoveCursor(delta int) {
	n := len(c.Links())
	if n == 0 {
		c.cursor = 0
		return
	}
	c.cursor = min(max(c.Cursor()+delta, 0), n-1)
}

// Selected returns the highlighted link or nil.
func (c *Controller) Selected() *page.Element {
	links := c.Links()
	if len(links) == 0 {
		return nil
	}
	return links[c.Cursor()]
}

// Activate marks the highlighted link active and returns its target path.
// The caller dispatches the click that closes the overlay.
func (c *Controller) Activate() (string, bool) {
	sel := c.Selected()
	if sel == nil {
		return "", false
	}
	for _, l := range c.Links() {
		l.RemoveClass(ClassActiveLink)
	}
	sel.AddClass(ClassActiveLink)
	if href, ok := sel.Attr("hx-get"); ok && href != "" {
		return href, true
	}
	href, ok := sel.Attr("href")
	return href, ok && href != ""
}

func (c *Controller) element() *page.Element {
	return c.doc.GetElementByID(ElementID)
}

func (c *Controller) savedCollapsed() bool {
	return prefs.GetBool(c.store, prefs.KeySidebarCollapsed)
}

func (c *Controller) marginFor(collapsed bool) int {
	if collapsed {
		return c.opts.CollapsedWidth
	}
	return c.opts.Width
}

func (c *Controller) setMargin(cols int) {
	if content := c.doc.Query(ClassContent); content != nil {
		content.SetStyle("margin-left", strconv.Itoa(cols))
	}
}
