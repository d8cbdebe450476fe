package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// HelpOverlay lists all keybindings
type HelpOverlay struct {
	styles *Styles
}

// NewHelpOverlay creates the help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{styles: New()}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "?":
			return h, func() tea.Msg { return CloseOverlayMsg{} }
		}
	}
	return h, nil
}

var helpSections = []struct {
	title string
	keys  [][2]string
}{
	{"Navigation", [][2]string{
		{"h/l", "move between columns"},
		{"j/k", "move between rows"},
		{"g", "goto mode"},
		{"tab", "expand/collapse subtasks"},
	}},
	{"Reordering", [][2]string{
		{"space", "grab task under cursor"},
		{"j/k (grab)", "move within column"},
		{"h/l (grab)", "move to another column"},
		{"space/enter (grab)", "drop"},
		{"esc (grab)", "cancel grab"},
	}},
	{"Tasks", [][2]string{
		{"n", "new task in current column"},
		{"N", "new subtask of current task"},
		{"x", "toggle complete"},
		{"d", "delete (confirm)"},
		{"enter", "task details"},
		{"f", "filter"},
		{"/", "search"},
	}},
	{"General", [][2]string{
		{"v", "toggle board/list view"},
		{"r", "refresh"},
		{"m", "load more"},
		{"q", "quit"},
	}},
}

// View renders the overlay
func (h *HelpOverlay) View() string {
	var b strings.Builder
	for i, section := range helpSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(h.styles.Label.Render(section.title))
		b.WriteString("\n")
		for _, k := range section.keys {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				h.styles.MenuKey.Render(fmt.Sprintf("%-20s", k[0])),
				h.styles.MenuItem.Render(k[1])))
		}
	}
	b.WriteString("\n")
	b.WriteString(h.styles.Footer.Render("Esc: Close"))
	return b.String()
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 56, 28
}
