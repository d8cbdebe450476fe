package domain

import "sort"

// SortField represents a field to sort the compact list view by
type SortField string

const (
	SortByPosition SortField = "position"
	SortByPriority SortField = "priority"
	SortByDueDate  SortField = "due"
	SortByUpdated  SortField = "updated"
)

// SortOrder represents sort direction
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Sort represents sorting state
type Sort struct {
	Field SortField
	Order SortOrder
}

// Toggle toggles the sort field or direction.
// A new field resets to ascending; the same field flips the direction.
func (s *Sort) Toggle(field SortField) {
	if s.Field == field {
		if s.Order == SortAsc {
			s.Order = SortDesc
		} else {
			s.Order = SortAsc
		}
	} else {
		s.Field = field
		s.Order = SortAsc
	}
}

// Apply sorts a list of tasks for the compact view. Board columns always
// render in position order regardless of this setting.
func (s *Sort) Apply(tasks []Task) []Task {
	if len(tasks) == 0 {
		return tasks
	}

	// Make a copy to avoid modifying the input slice
	result := make([]Task, len(tasks))
	copy(result, tasks)

	switch s.Field {
	case SortByPriority:
		sort.SliceStable(result, func(i, j int) bool {
			if s.Order == SortAsc {
				return result[i].Priority.Rank() < result[j].Priority.Rank()
			}
			return result[i].Priority.Rank() > result[j].Priority.Rank()
		})

	case SortByDueDate:
		sort.SliceStable(result, func(i, j int) bool {
			di, dj := result[i].DueDate, result[j].DueDate
			// Tasks without a due date sort last in either direction
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			if s.Order == SortAsc {
				return di.Before(*dj)
			}
			return di.After(*dj)
		})

	case SortByUpdated:
		sort.SliceStable(result, func(i, j int) bool {
			if s.Order == SortAsc {
				return result[i].UpdatedAt.Before(result[j].UpdatedAt)
			}
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		})

	default:
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i], result[j]
			if a.Scope() != b.Scope() {
				if a.CategoryID != b.CategoryID {
					return a.CategoryID < b.CategoryID
				}
				return a.Scope().ParentID < b.Scope().ParentID
			}
			if s.Order == SortAsc {
				return a.Position < b.Position
			}
			return a.Position > b.Position
		})
	}

	return result
}
