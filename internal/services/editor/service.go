// Package editor provides interaction mode and view state management
package editor

import (
	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/types"
)

// Re-export Mode type for convenience
type Mode = types.Mode

// Mode constants
const (
	ModeNormal = types.ModeNormal
	ModeGrab   = types.ModeGrab
	ModeSearch = types.ModeSearch
	ModeGoto   = types.ModeGoto
)

// Service manages view state (mode, filter, sort, expanded parents)
type Service struct {
	mode     Mode
	filter   *domain.Filter
	sort     *domain.Sort
	expanded map[int64]bool
}

// NewService creates a new editor service with defaults
func NewService() *Service {
	return &Service{
		mode:   ModeNormal,
		filter: domain.NewFilter(),
		sort: &domain.Sort{
			Field: domain.SortByPosition,
			Order: domain.SortAsc,
		},
		expanded: make(map[int64]bool),
	}
}

// GetMode returns the current mode
func (s *Service) GetMode() Mode {
	return s.mode
}

// EnterNormal switches to normal mode
func (s *Service) EnterNormal() {
	s.mode = ModeNormal
}

// EnterGrab switches to grab mode
func (s *Service) EnterGrab() {
	s.mode = ModeGrab
}

// EnterSearch switches to search mode
func (s *Service) EnterSearch() {
	s.mode = ModeSearch
}

// EnterGoto switches to goto mode
func (s *Service) EnterGoto() {
	s.mode = ModeGoto
}

// IsNormal returns true if in normal mode
func (s *Service) IsNormal() bool {
	return s.mode == ModeNormal
}

// IsGrab returns true if in grab mode
func (s *Service) IsGrab() bool {
	return s.mode == ModeGrab
}

// GetFilter returns the active filter
func (s *Service) GetFilter() *domain.Filter {
	return s.filter
}

// GetSort returns the active sort
func (s *Service) GetSort() *domain.Sort {
	return s.sort
}

// SetSearchQuery updates the live search query
func (s *Service) SetSearchQuery(query string) {
	s.filter.SearchQuery = query
}

// ApplyFilter filters tasks through the active filter
func (s *Service) ApplyFilter(tasks []domain.Task) []domain.Task {
	return s.filter.Apply(tasks)
}

// Expanded returns the set of parent task IDs with visible subtasks
func (s *Service) Expanded() map[int64]bool {
	return s.expanded
}

// IsExpanded reports whether a parent's subtasks are visible
func (s *Service) IsExpanded(parentID int64) bool {
	return s.expanded[parentID]
}

// ToggleExpanded flips subtask visibility for a parent task
func (s *Service) ToggleExpanded(parentID int64) {
	if s.expanded[parentID] {
		delete(s.expanded, parentID)
	} else {
		s.expanded[parentID] = true
	}
}

// ExpandAll marks every given parent as expanded
func (s *Service) ExpandAll(tasks []domain.Task) {
	for _, t := range tasks {
		if !t.IsSubtask() && t.SubtaskCount > 0 {
			s.expanded[t.ID] = true
		}
	}
}

// CollapseAll hides all subtasks
func (s *Service) CollapseAll() {
	s.expanded = make(map[int64]bool)
}
