package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/eureka-app/eureka-tui/internal/services/network"
	"github.com/stretchr/testify/assert"
)

func TestView_BeforeSize(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "Loading...", h.m.View())
}

func TestView_FitsTerminal(t *testing.T) {
	for _, size := range []struct{ w, h int }{{120, 40}, {80, 24}, {60, 12}} {
		h := newHarness(t)
		h.start(size.w, size.h)

		view := h.m.View()
		assert.LessOrEqual(t, lipgloss.Height(view), size.h, "%dx%d", size.w, size.h)
	}
}

func TestView_ShowsPageAndChrome(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)

	view := h.m.View()
	assert.Contains(t, view, "Eureka")
	assert.Contains(t, view, "My entries")
	assert.Contains(t, view, "Welcome back")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "> ", "nav cursor")
	assert.Contains(t, view, "ada@example.com")
	assert.Contains(t, view, "NAV")
}

func TestView_ConnectivityInStatusBar(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)
	assert.NotContains(t, h.m.View(), "offline")

	h.update(network.StatusMsg{Online: false})
	assert.Contains(t, h.m.View(), "offline")
}

func TestView_ToastShownAfterReveal(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)
	h.rec.Take()

	h.update(network.StatusMsg{Online: true})
	h.update(network.StatusMsg{Online: false})
	assert.NotContains(t, h.m.View(), "The server is unreachable.", "hidden until revealed")

	h.deliverTimers()
	assert.Contains(t, h.m.View(), "The server is unreachable.")
}

func TestView_OverlayReplacesBody(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)

	h.key("?")
	view := h.m.View()
	assert.Contains(t, view, "Help")
	assert.NotContains(t, view, "My entries")

	h.key("esc")
	assert.Contains(t, h.m.View(), "My entries")
}

func TestView_CollapsedSidebarShowsIconsOnly(t *testing.T) {
	h := newHarness(t)
	h.start(120, 40)

	h.key("ctrl+b")
	view := h.m.View()
	for _, line := range strings.Split(view, "\n") {
		assert.NotContains(t, line, "New entry")
	}
}
