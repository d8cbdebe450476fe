package compact

import (
	"fmt"
	"strings"

	"github.com/trellisboard/trellis/internal/domain"
)

// ListView renders tasks as a flat table, an alternative to the board
type ListView struct {
	tasks      []domain.Task
	categories map[int64]string
	cursor     int
	styles     *Styles
	width      int
	height     int
}

// NewListView creates a new ListView with the given tasks and dimensions
func NewListView(tasks []domain.Task, categories []domain.Category, width, height int) *ListView {
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return &ListView{
		tasks:      tasks,
		categories: names,
		styles:     NewStyles(),
		width:      width,
		height:     height,
	}
}

// SetCursor sets the cursor position, clamped to the task list
func (lv *ListView) SetCursor(index int) {
	if index < 0 {
		lv.cursor = 0
	} else if index >= len(lv.tasks) {
		lv.cursor = max(0, len(lv.tasks)-1)
	} else {
		lv.cursor = index
	}
}

// Render renders the full table
func (lv *ListView) Render() string {
	if len(lv.tasks) == 0 {
		return lv.styles.Row.Render("No tasks to display")
	}

	var b strings.Builder
	b.WriteString(lv.renderHeader())
	b.WriteString("\n")
	b.WriteString(lv.renderSeparator())
	b.WriteString("\n")

	// Window the rows around the cursor so the table fits the screen
	visible := lv.height - 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if lv.cursor >= visible {
		start = lv.cursor - visible + 1
	}
	end := min(start+visible, len(lv.tasks))

	for i := start; i < end; i++ {
		b.WriteString(lv.renderRow(i))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (lv *ListView) renderHeader() string {
	return lv.styles.HeaderCell.Render(fmt.Sprintf(
		"  %-6s %-*s %-14s %-10s %-8s %s",
		"ID", lv.titleWidth(), "TITLE", "CATEGORY", "STATUS", "PRI", "DUE"))
}

func (lv *ListView) renderSeparator() string {
	return lv.styles.Separator.Render(strings.Repeat("─", max(lv.width-2, 10)))
}

func (lv *ListView) renderRow(i int) string {
	t := lv.tasks[i]

	cursor := "  "
	if i == lv.cursor {
		cursor = "▶ "
	}

	title := t.Title
	if t.IsSubtask() {
		title = "· " + title
	}
	w := lv.titleWidth()
	if len(title) > w {
		title = title[:w-1] + "…"
	}

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("Jan 2")
	}

	line := fmt.Sprintf("%s%-6d %-*s %-14s %-10s %-8s %s",
		cursor, t.ID, w, title,
		truncate(lv.categories[t.CategoryID], 14),
		lv.statusStyle(t.Status).Render(abbreviate(t.Status)),
		lv.priorityStyle(t.Priority).Render(truncate(string(t.Priority), 8)),
		lv.styles.ColDue.Render(due))

	switch {
	case i == lv.cursor:
		return lv.styles.RowActive.Render(line)
	case t.Status == domain.StatusCompleted:
		return lv.styles.RowDone.Render(line)
	default:
		return lv.styles.Row.Render(line)
	}
}

func (lv *ListView) titleWidth() int {
	w := lv.width - 52
	if w < 16 {
		w = 16
	}
	return w
}

func (lv *ListView) statusStyle(s domain.Status) interface{ Render(...string) string } {
	switch s {
	case domain.StatusInProgress:
		return lv.styles.StatusInProgress
	case domain.StatusCompleted:
		return lv.styles.StatusCompleted
	default:
		return lv.styles.StatusTodo
	}
}

func (lv *ListView) priorityStyle(p domain.Priority) interface{ Render(...string) string } {
	switch p {
	case domain.PriorityUrgent:
		return lv.styles.PriorityUrgent
	case domain.PriorityHigh:
		return lv.styles.PriorityHigh
	case domain.PriorityLow:
		return lv.styles.PriorityLow
	default:
		return lv.styles.PriorityMedium
	}
}

// abbreviate shortens a status for the narrow column
func abbreviate(s domain.Status) string {
	switch s {
	case domain.StatusInProgress:
		return "doing"
	case domain.StatusCompleted:
		return "done"
	default:
		return "todo"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
