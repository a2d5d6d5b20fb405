// Package types contains shared types used across the application.
package types

// Mode is the current input focus of the shell.
type Mode int

const (
	ModeNav Mode = iota
	ModeContent
	ModeForm
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNav:
		return "NAV"
	case ModeContent:
		return "CONTENT"
	case ModeForm:
		return "FORM"
	default:
		return "UNKNOWN"
	}
}
