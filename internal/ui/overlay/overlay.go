// Package overlay provides the modal dialogs drawn over the shell: the
// entry form, the keybinding help and yes/no confirmations.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the top overlay should be closed
type CloseOverlayMsg struct{}

// Close is a command that closes the top overlay.
func Close() tea.Msg {
	return CloseOverlayMsg{}
}
