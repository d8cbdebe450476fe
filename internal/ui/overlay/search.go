package overlay

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchMsg carries the live search query
type SearchMsg struct {
	Query string
}

// SearchOverlay is a full-width search bar at the bottom of the screen
type SearchOverlay struct {
	input  textinput.Model
	styles *Styles
}

// NewSearchOverlay creates the search bar
func NewSearchOverlay() *SearchOverlay {
	ti := textinput.New()
	ti.Placeholder = "Search tasks..."
	ti.Prompt = "/ "
	ti.Focus()
	return &SearchOverlay{input: ti, styles: New()}
}

// Init initializes the overlay
func (s *SearchOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages; the query is applied live on every keystroke
func (s *SearchOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return s, func() tea.Msg { return CloseOverlayMsg{} }
		case "esc":
			return s, tea.Batch(
				func() tea.Msg { return SearchMsg{Query: ""} },
				func() tea.Msg { return CloseOverlayMsg{} },
			)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	query := s.input.Value()
	return s, tea.Batch(cmd, func() tea.Msg { return SearchMsg{Query: query} })
}

// View renders the search bar
func (s *SearchOverlay) View() string {
	return s.input.View()
}

// Title returns an empty title; the search bar renders without a frame
func (s *SearchOverlay) Title() string {
	return ""
}

// Size returns 0 width, which the app treats as a full-width bottom bar
func (s *SearchOverlay) Size() (width, height int) {
	return 0, 1
}
