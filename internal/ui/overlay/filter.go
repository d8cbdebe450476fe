package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/trellisboard/trellis/internal/domain"
)

// FilterChangedMsg is emitted whenever the filter state changes
type FilterChangedMsg struct{}

// FilterMenu toggles client-side view filters
type FilterMenu struct {
	filter *domain.Filter
	styles *Styles
}

// NewFilterMenu creates a filter menu bound to the live filter state
func NewFilterMenu(filter *domain.Filter) *FilterMenu {
	return &FilterMenu{
		filter: filter,
		styles: New(),
	}
}

// Init initializes the menu
func (f *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (f *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	changed := func() (tea.Model, tea.Cmd) {
		return f, func() tea.Msg { return FilterChangedMsg{} }
	}

	switch key.String() {
	case "esc", "q":
		return f, func() tea.Msg { return CloseOverlayMsg{} }

	case "1":
		f.filter.TogglePriority(domain.PriorityUrgent)
		return changed()
	case "2":
		f.filter.TogglePriority(domain.PriorityHigh)
		return changed()
	case "3":
		f.filter.TogglePriority(domain.PriorityMedium)
		return changed()
	case "4":
		f.filter.TogglePriority(domain.PriorityLow)
		return changed()

	case "t":
		f.filter.ToggleStatus(domain.StatusTodo)
		return changed()
	case "i":
		f.filter.ToggleStatus(domain.StatusInProgress)
		return changed()
	case "c":
		f.filter.ToggleStatus(domain.StatusCompleted)
		return changed()

	case "h":
		f.filter.HideCompleted = !f.filter.HideCompleted
		return changed()

	case "x":
		f.filter.Clear()
		return changed()
	}

	return f, nil
}

// View renders the menu
func (f *FilterMenu) View() string {
	var b strings.Builder

	item := func(key, label string, active bool) {
		style := f.styles.MenuItem
		mark := " "
		if active {
			style = f.styles.MenuItemActive
			mark = "✓"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			f.styles.MenuKey.Render("["+key+"]"),
			style.Render(label),
			style.Render(mark)))
	}

	b.WriteString(f.styles.Label.Render("Priority"))
	b.WriteString("\n")
	item("1", "urgent", f.filter.Priority[domain.PriorityUrgent])
	item("2", "high", f.filter.Priority[domain.PriorityHigh])
	item("3", "medium", f.filter.Priority[domain.PriorityMedium])
	item("4", "low", f.filter.Priority[domain.PriorityLow])

	b.WriteString("\n")
	b.WriteString(f.styles.Label.Render("Status"))
	b.WriteString("\n")
	item("t", "todo", f.filter.Status[domain.StatusTodo])
	item("i", "in progress", f.filter.Status[domain.StatusInProgress])
	item("c", "completed", f.filter.Status[domain.StatusCompleted])

	b.WriteString("\n")
	item("h", "hide completed", f.filter.HideCompleted)

	b.WriteString("\n")
	b.WriteString(f.styles.Footer.Render("x: Clear all • Esc: Close"))
	return b.String()
}

// Title returns the menu title
func (f *FilterMenu) Title() string {
	return "Filter"
}

// Size returns the menu dimensions
func (f *FilterMenu) Size() (width, height int) {
	return 40, 18
}
