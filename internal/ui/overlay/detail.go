package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/trellisboard/trellis/internal/domain"
)

// DetailPanel shows a read-only view of one task
type DetailPanel struct {
	task     domain.Task
	category string
	styles   *Styles
}

// NewDetailPanel creates a detail panel for the given task
func NewDetailPanel(task domain.Task, categoryName string) *DetailPanel {
	return &DetailPanel{
		task:     task,
		category: categoryName,
		styles:   New(),
	}
}

// Init initializes the panel
func (d *DetailPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *DetailPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "enter":
			return d, func() tea.Msg { return CloseOverlayMsg{} }
		}
	}
	return d, nil
}

// View renders the panel
func (d *DetailPanel) View() string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(d.styles.Label.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(d.styles.Value.Render(value))
		b.WriteString("\n")
	}

	row("Title", d.task.Title)
	if d.task.Description != "" {
		row("Details", d.task.Description)
	}
	row("Category", d.category)
	row("Status", d.task.Status.String())
	row("Priority", d.task.Priority.String())
	row("Position", fmt.Sprintf("%d", d.task.Position))
	if d.task.DueDate != nil {
		row("Due", d.task.DueDate.Format("2006-01-02"))
	}
	if d.task.CompletedAt != nil {
		row("Done at", d.task.CompletedAt.Format("2006-01-02 15:04"))
	}
	if d.task.SubtaskCount > 0 {
		row("Subtasks", fmt.Sprintf("%d/%d completed", d.task.CompletedSubtaskCount, d.task.SubtaskCount))
	}
	if len(d.task.Assignees) > 0 {
		names := make([]string, len(d.task.Assignees))
		for i, a := range d.task.Assignees {
			names[i] = a.Name
		}
		row("Assignees", strings.Join(names, ", "))
	}

	b.WriteString(d.styles.Footer.Render("Esc: Close"))
	return b.String()
}

// Title returns the panel title
func (d *DetailPanel) Title() string {
	return fmt.Sprintf("Task #%d", d.task.ID)
}

// Size returns the panel dimensions
func (d *DetailPanel) Size() (width, height int) {
	return 64, 16
}
