package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/eureka-app/eureka-tui/internal/types"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

func TestStatusBar_RenderModes(t *testing.T) {
	tests := []struct {
		mode  types.Mode
		badge string
		hint  string
	}{
		{types.ModeNav, "NAV", "Enter: open"},
		{types.ModeContent, "CONTENT", "r: reload"},
		{types.ModeForm, "FORM", "Ctrl+S: save"},
	}

	for _, tt := range tests {
		t.Run(tt.badge, func(t *testing.T) {
			result := New(tt.mode, 100, styles.New()).Render()

			if !strings.Contains(result, tt.badge) {
				t.Errorf("Expected status bar to contain %q, got: %s", tt.badge, result)
			}
			if !strings.Contains(result, tt.hint) {
				t.Errorf("Expected status bar to contain %q, got: %s", tt.hint, result)
			}
		})
	}
}

func TestStatusBar_OnlineIndicator(t *testing.T) {
	style := styles.New()

	unchecked := New(types.ModeNav, 120, style).Render()
	if strings.Contains(unchecked, "online") || strings.Contains(unchecked, "offline") {
		t.Errorf("No indicator expected before the first check, got: %s", unchecked)
	}

	online := New(types.ModeNav, 120, style).WithOnline(true).Render()
	if !strings.Contains(online, "● online") {
		t.Errorf("Expected online indicator, got: %s", online)
	}

	offline := New(types.ModeNav, 120, style).WithOnline(false).Render()
	if !strings.Contains(offline, "○ offline") {
		t.Errorf("Expected offline indicator, got: %s", offline)
	}
}

func TestStatusBar_ThemeAndUser(t *testing.T) {
	result := New(types.ModeContent, 120, styles.New()).
		WithTheme("dark").
		WithUser("ada@example.com").
		Render()

	if !strings.Contains(result, "dark") {
		t.Errorf("Expected theme name, got: %s", result)
	}
	if !strings.Contains(result, "ada@example.com") {
		t.Errorf("Expected user, got: %s", result)
	}
}

func TestStatusBar_FillsWidth(t *testing.T) {
	width := 100
	result := New(types.ModeNav, width, styles.New()).WithOnline(true).Render()

	if got := lipgloss.Width(result); got != width {
		t.Errorf("Expected width %d, got %d", width, got)
	}
}

func TestGetHints_UnknownMode(t *testing.T) {
	if got := GetHints(types.Mode(99)); got != "" {
		t.Errorf("GetHints(unknown) = %q, want empty", got)
	}
}
