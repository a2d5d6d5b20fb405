package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eureka-app/eureka-tui/internal/ui/styles"
)

func TestNewHelpOverlay(t *testing.T) {
	help := NewHelpOverlay(styles.New())

	if help.styles == nil {
		t.Error("styles should be initialized")
	}
	if help.scroll != 0 {
		t.Errorf("initial scroll should be 0, got %d", help.scroll)
	}
	if help.Title() != "Help" {
		t.Errorf("expected title 'Help', got '%s'", help.Title())
	}
}

func TestHelpOverlay_ListsEveryBinding(t *testing.T) {
	help := NewHelpOverlay(styles.New())
	view := help.View()

	for _, want := range []string{"Navigation:", "Ctrl+B", "New entry", "Switch light/dark theme", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("help view missing %q", want)
		}
	}
}

func TestHelpOverlay_CloseKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyRunes, Runes: []rune("?")},
	} {
		help := NewHelpOverlay(styles.New())
		_, cmd := help.Update(key)
		if cmd == nil {
			t.Fatalf("%s should close", key.String())
		}
		if _, ok := cmd().(CloseOverlayMsg); !ok {
			t.Errorf("%s should produce CloseOverlayMsg", key.String())
		}
	}
}

func TestHelpOverlay_ScrollIsClamped(t *testing.T) {
	help := NewHelpOverlay(styles.New())
	help.View()

	help.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if help.scroll != 0 {
		t.Errorf("scroll should not go negative, got %d", help.scroll)
	}

	help.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	if help.scroll != help.maxScroll {
		t.Errorf("G should jump to %d, got %d", help.maxScroll, help.scroll)
	}

	help.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if help.scroll != 0 {
		t.Errorf("g should jump to top, got %d", help.scroll)
	}
}
