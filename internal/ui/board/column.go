package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/trellisboard/trellis/internal/services/position"
	"github.com/trellisboard/trellis/internal/ui/styles"
)

// renderColumn renders a category column with header, cards, and the
// subtask rows of expanded parents
func renderColumn(
	col Column,
	cursorRow int,
	isActive bool,
	grabbedID int64,
	expanded map[int64]bool,
	width int,
	height int,
	s *styles.Styles,
) string {
	headerStyle := s.ColumnHeader
	if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	// Header with title and parent-task count (e.g., "─ To Do (4) ────")
	headerText := fmt.Sprintf("─ %s (%d) ", col.Category.Name, countParents(col.Rows))
	remainingWidth := width - len([]rune(headerText)) - 2
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	var rowStrings []string
	rowWidth := width - 4
	for i, row := range col.Rows {
		isCursor := isActive && i == cursorRow
		isGrabbed := grabbedID != 0 && row.Task.ID == grabbedID

		if row.IsSubtask {
			rowStrings = append(rowStrings, renderSubtaskRow(row.Task, isCursor, isGrabbed, rowWidth, s))
		} else {
			rowStrings = append(rowStrings, renderCard(row.Task, isCursor, isGrabbed, expanded[row.Task.ID], rowWidth, s))
		}
	}

	content := ""
	if len(rowStrings) > 0 {
		content = strings.Join(rowStrings, "\n")
	}

	columnStyle := s.Column.Width(width).Height(height)
	columnContent := columnStyle.Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}

func countParents(rows []position.Row) int {
	n := 0
	for _, r := range rows {
		if !r.IsSubtask {
			n++
		}
	}
	return n
}
