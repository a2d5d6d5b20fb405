package statusbar

import "github.com/eureka-app/eureka-tui/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNav:
		return "j/k: links  Enter: open  n: new  t: theme  ?: help  q: quit"
	case types.ModeContent:
		return "Tab: sidebar  r: reload  x: dismiss  ?: help  q: quit"
	case types.ModeForm:
		return "Tab: fields  Ctrl+S: save  Esc: cancel"
	default:
		return ""
	}
}
