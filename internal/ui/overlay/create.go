package overlay

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/trellisboard/trellis/internal/domain"
)

// TaskDraftMsg is emitted when the create form is submitted
type TaskDraftMsg struct {
	Draft domain.TaskDraft
}

// CreateTaskOverlay provides a form to create a new task or subtask
type CreateTaskOverlay struct {
	title       textinput.Model
	description textarea.Model
	dueDate     textinput.Model
	priority    domain.Priority
	categoryID  int64
	parentID    *int64
	focusIndex  int
	errText     string
	styles      *Styles
}

const (
	focusTitle = iota
	focusDescription
	focusDueDate
	focusPriority
	focusSubmit
	focusCount
)

// NewCreateTaskOverlay creates a creation form targeting the given category;
// a non-nil parentID creates a subtask of that parent
func NewCreateTaskOverlay(categoryID int64, parentID *int64) *CreateTaskOverlay {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Description (optional)..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(4)

	dd := textinput.New()
	dd.Placeholder = "Due date YYYY-MM-DD (optional)"
	dd.CharLimit = 10
	dd.Width = 30

	return &CreateTaskOverlay{
		title:       ti,
		description: ta,
		dueDate:     dd,
		priority:    domain.PriorityMedium,
		categoryID:  categoryID,
		parentID:    parentID,
		focusIndex:  focusTitle,
		styles:      New(),
	}
}

// Init initializes the overlay
func (c *CreateTaskOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (c *CreateTaskOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return c, func() tea.Msg { return CloseOverlayMsg{} }

		case "ctrl+s":
			return c.submit()

		case "tab", "shift+tab":
			if msg.String() == "tab" {
				c.focusIndex = (c.focusIndex + 1) % focusCount
			} else {
				c.focusIndex = (c.focusIndex - 1 + focusCount) % focusCount
			}
			c.refocus()
			return c, nil

		case "enter":
			if c.focusIndex == focusSubmit {
				return c.submit()
			}
			if c.focusIndex != focusDescription {
				c.focusIndex = (c.focusIndex + 1) % focusCount
				c.refocus()
				return c, nil
			}
		}

		// Priority cycling when focused
		if c.focusIndex == focusPriority {
			switch msg.String() {
			case "left", "h":
				c.priority = cyclePriority(c.priority, -1)
				return c, nil
			case "right", "l", " ":
				c.priority = cyclePriority(c.priority, 1)
				return c, nil
			}
		}
	}

	var cmd tea.Cmd
	switch c.focusIndex {
	case focusTitle:
		c.title, cmd = c.title.Update(msg)
	case focusDescription:
		c.description, cmd = c.description.Update(msg)
	case focusDueDate:
		c.dueDate, cmd = c.dueDate.Update(msg)
	}
	return c, cmd
}

// submit validates and emits the draft
func (c *CreateTaskOverlay) submit() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(c.title.Value())
	if title == "" {
		c.errText = "Title is required"
		return c, nil
	}

	draft := domain.TaskDraft{
		Title:        title,
		Description:  strings.TrimSpace(c.description.Value()),
		CategoryID:   c.categoryID,
		ParentTaskID: c.parentID,
		Priority:     c.priority,
	}

	if raw := strings.TrimSpace(c.dueDate.Value()); raw != "" {
		due, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.errText = "Due date must be YYYY-MM-DD"
			return c, nil
		}
		draft.DueDate = &due
	}

	return c, func() tea.Msg { return TaskDraftMsg{Draft: draft} }
}

func (c *CreateTaskOverlay) refocus() {
	c.title.Blur()
	c.description.Blur()
	c.dueDate.Blur()
	switch c.focusIndex {
	case focusTitle:
		c.title.Focus()
	case focusDescription:
		c.description.Focus()
	case focusDueDate:
		c.dueDate.Focus()
	}
}

func cyclePriority(p domain.Priority, dir int) domain.Priority {
	order := []domain.Priority{
		domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent,
	}
	idx := 0
	for i, v := range order {
		if v == p {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(order)) % len(order)
	return order[idx]
}

// View renders the form
func (c *CreateTaskOverlay) View() string {
	var b strings.Builder

	b.WriteString(c.styles.Label.Render("Title"))
	b.WriteString("\n")
	b.WriteString(c.title.View())
	b.WriteString("\n\n")

	b.WriteString(c.styles.Label.Render("Description"))
	b.WriteString("\n")
	b.WriteString(c.description.View())
	b.WriteString("\n\n")

	b.WriteString(c.styles.Label.Render("Due date"))
	b.WriteString("\n")
	b.WriteString(c.dueDate.View())
	b.WriteString("\n\n")

	prioStyle := c.styles.MenuItem
	if c.focusIndex == focusPriority {
		prioStyle = c.styles.MenuItemActive
	}
	b.WriteString(c.styles.Label.Render("Priority  "))
	b.WriteString(prioStyle.Render("◂ " + string(c.priority) + " ▸"))
	b.WriteString("\n\n")

	submitStyle := c.styles.MenuItem
	if c.focusIndex == focusSubmit {
		submitStyle = c.styles.MenuItemActive
	}
	b.WriteString(submitStyle.Render("[ Create ]"))

	if c.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(c.styles.MenuKey.Render(c.errText))
	}

	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render("Tab: Next field • Ctrl+S: Create • Esc: Cancel"))

	return b.String()
}

// Title returns the overlay title
func (c *CreateTaskOverlay) Title() string {
	if c.parentID != nil {
		return "New Subtask"
	}
	return "New Task"
}

// Size returns the overlay dimensions
func (c *CreateTaskOverlay) Size() (width, height int) {
	return 66, 22
}
