package statusbar

import "github.com/trellisboard/trellis/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: columns  j/k: rows  Space: grab  x: complete  d: delete  n: new  ?: help  q: quit"
	case types.ModeGrab:
		return "j/k: move  h/l: change column  Space/Enter: drop  Esc: cancel"
	case types.ModeGoto:
		return "g: top  e: end  h: first col  l: last col  Esc: cancel"
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: cancel"
	default:
		return ""
	}
}
