package compact

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/trellisboard/trellis/internal/ui/styles"
)

// Styles holds the styling for the compact list view
type Styles struct {
	// Table structure
	HeaderCell lipgloss.Style
	Separator  lipgloss.Style

	// Row styles
	Row       lipgloss.Style
	RowActive lipgloss.Style
	RowDone   lipgloss.Style

	// Column styles
	ColID       lipgloss.Style
	ColTitle    lipgloss.Style
	ColCategory lipgloss.Style
	ColDue      lipgloss.Style

	// Status colors
	StatusTodo       lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusCompleted  lipgloss.Style

	// Priority colors
	PriorityUrgent lipgloss.Style
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style
}

// NewStyles creates the compact view styles
func NewStyles() *Styles {
	return &Styles{
		HeaderCell: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(styles.Surface1),

		Row: lipgloss.NewStyle().
			Foreground(styles.Text),

		RowActive: lipgloss.NewStyle().
			Foreground(styles.Lavender).
			Bold(true),

		RowDone: lipgloss.NewStyle().
			Foreground(styles.Overlay0).
			Strikethrough(true),

		ColID: lipgloss.NewStyle().
			Foreground(styles.Overlay1),

		ColTitle: lipgloss.NewStyle().
			Foreground(styles.Text),

		ColCategory: lipgloss.NewStyle().
			Foreground(styles.Subtext0),

		ColDue: lipgloss.NewStyle().
			Foreground(styles.Subtext0),

		StatusTodo: lipgloss.NewStyle().
			Foreground(styles.Blue),

		StatusInProgress: lipgloss.NewStyle().
			Foreground(styles.Yellow),

		StatusCompleted: lipgloss.NewStyle().
			Foreground(styles.Green),

		PriorityUrgent: lipgloss.NewStyle().
			Foreground(styles.Red).
			Bold(true),

		PriorityHigh: lipgloss.NewStyle().
			Foreground(styles.Peach),

		PriorityMedium: lipgloss.NewStyle().
			Foreground(styles.Yellow),

		PriorityLow: lipgloss.NewStyle().
			Foreground(styles.Overlay0),
	}
}
