// Package types contains shared types used across the application.
package types

// Mode represents the current interaction mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeGrab
	ModeSearch
	ModeGoto
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeGrab:
		return "GRAB"
	case ModeSearch:
		return "SEARCH"
	case ModeGoto:
		return "GOTO"
	default:
		return "UNKNOWN"
	}
}
