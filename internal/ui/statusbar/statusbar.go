package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/trellisboard/trellis/internal/types"
	"github.com/trellisboard/trellis/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode      types.Mode
	workspace int64
	online    bool
	width     int
	styles    *styles.Styles
}

// New creates a new StatusBar
func New(mode types.Mode, workspace int64, online bool, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:      mode,
		workspace: workspace,
		online:    online,
		width:     width,
		styles:    styles,
	}
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	hints := GetHints(sb.mode)
	hintsRendered := sb.styles.StatusHint.Render(hints)

	info := sb.renderInfo()

	var content string
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, hintsRendered, separator, info)
	} else {
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, " ", info)
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}

// renderInfo shows workspace context and connectivity
func (sb StatusBar) renderInfo() string {
	dot := "●"
	if !sb.online {
		dot = "○ offline"
	}
	if sb.workspace == 0 {
		return sb.styles.StatusInfo.Render("no workspace " + dot)
	}
	return sb.styles.StatusInfo.Render(fmt.Sprintf("ws %d %s", sb.workspace, dot))
}
