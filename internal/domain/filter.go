package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// TaskFilters are the server-side query parameters of a fetch. Pagination
// state (cursor) is owned by the store, not the filters.
type TaskFilters struct {
	CategoryID *int64
	AssigneeID *int64
	Status     *Status
	Search     string
	PageSize   int
}

// Query encodes the filters as URL query parameters
func (f TaskFilters) Query(workspaceID int64) url.Values {
	q := url.Values{}
	q.Set("workspaceId", strconv.FormatInt(workspaceID, 10))
	if f.CategoryID != nil {
		q.Set("categoryId", strconv.FormatInt(*f.CategoryID, 10))
	}
	if f.AssigneeID != nil {
		q.Set("assigneeId", strconv.FormatInt(*f.AssigneeID, 10))
	}
	if f.Status != nil {
		q.Set("status", string(*f.Status))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	return q
}

// Filter represents client-side task filtering state for the views
type Filter struct {
	Priority      map[Priority]bool
	Status        map[Status]bool
	AssigneeID    *int64
	HideCompleted bool
	SearchQuery   string
}

// NewFilter creates a new empty filter
func NewFilter() *Filter {
	return &Filter{
		Priority: make(map[Priority]bool),
		Status:   make(map[Status]bool),
	}
}

// IsActive returns true if any filter is active
func (f *Filter) IsActive() bool {
	return len(f.Priority) > 0 ||
		len(f.Status) > 0 ||
		f.AssigneeID != nil ||
		f.HideCompleted ||
		f.SearchQuery != ""
}

// Apply filters a list of tasks. Subtasks of a matching parent are kept so
// the board never renders an orphaned subtask row.
func (f *Filter) Apply(tasks []Task) []Task {
	if !f.IsActive() {
		return tasks
	}

	matching := make(map[int64]bool, len(tasks))
	for _, task := range tasks {
		if !task.IsSubtask() && f.Matches(task) {
			matching[task.ID] = true
		}
	}

	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.IsSubtask() {
			if matching[*task.ParentTaskID] {
				result = append(result, task)
			}
			continue
		}
		if matching[task.ID] {
			result = append(result, task)
		}
	}
	return result
}

// Matches returns true if the task passes all active filters.
// Uses AND logic between filter types, OR logic within filter types.
func (f *Filter) Matches(t Task) bool {
	if len(f.Priority) > 0 && !f.Priority[t.Priority] {
		return false
	}

	if len(f.Status) > 0 && !f.Status[t.Status] {
		return false
	}

	if f.AssigneeID != nil {
		found := false
		for _, a := range t.Assignees {
			if a.ID == *f.AssigneeID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.HideCompleted && t.Status == StatusCompleted {
		return false
	}

	// Search query (case-insensitive, matches title or description)
	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		title := strings.ToLower(t.Title)
		desc := strings.ToLower(t.Description)

		if !strings.Contains(title, query) && !strings.Contains(desc, query) {
			return false
		}
	}

	return true
}

// Clear resets all filters
func (f *Filter) Clear() {
	f.Priority = make(map[Priority]bool)
	f.Status = make(map[Status]bool)
	f.AssigneeID = nil
	f.HideCompleted = false
	f.SearchQuery = ""
}

// TogglePriority toggles a priority filter
func (f *Filter) TogglePriority(p Priority) {
	if f.Priority[p] {
		delete(f.Priority, p)
	} else {
		f.Priority[p] = true
	}
}

// ToggleStatus toggles a status filter
func (f *Filter) ToggleStatus(s Status) {
	if f.Status[s] {
		delete(f.Status, s)
	} else {
		f.Status[s] = true
	}
}
