package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/trellisboard/trellis/internal/ui/styles"
)

// Render renders the board: one column per category, in category position
// order
func Render(
	columns []Column,
	cursor Cursor,
	grabbedID int64,
	expanded map[int64]bool,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	columnWidth := width / len(columns)

	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorRow := -1
		if isActive {
			cursorRow = cursor.Row
		}

		columnStr := renderColumn(
			col,
			cursorRow,
			isActive,
			grabbedID,
			expanded,
			columnWidth,
			height,
			s,
		)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
