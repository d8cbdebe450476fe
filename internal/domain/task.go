package domain

import (
	"strings"
	"time"
)

// Task represents a single board item. Top-level tasks live in a category
// column; subtasks hang off a parent task and always share its category.
type Task struct {
	ID                    int64      `json:"id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description,omitempty"`
	CategoryID            int64      `json:"categoryId"`
	ParentTaskID          *int64     `json:"parentTaskId,omitempty"`
	Priority              Priority   `json:"priority"`
	Status                Status     `json:"status"`
	DueDate               *time.Time `json:"dueDate,omitempty"`
	CompletedAt           *time.Time `json:"completedAt,omitempty"`
	Position              int        `json:"position"`
	Assignees             []UserRef  `json:"assignees,omitempty"`
	SubtaskCount          int        `json:"subtaskCount"`
	CompletedSubtaskCount int        `json:"completedSubtaskCount"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// IsSubtask reports whether the task belongs to a parent task
func (t Task) IsSubtask() bool {
	return t.ParentTaskID != nil
}

// Scope identifies the sibling set within which Position is a dense,
// zero-based ordering. ParentID is 0 for top-level tasks.
type Scope struct {
	CategoryID int64
	ParentID   int64
}

// Scope returns the sibling scope this task is positioned in
func (t Task) Scope() Scope {
	if t.ParentTaskID != nil {
		return Scope{CategoryID: t.CategoryID, ParentID: *t.ParentTaskID}
	}
	return Scope{CategoryID: t.CategoryID}
}

// Status represents task status
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// String returns the display string
func (s Status) String() string {
	return string(s)
}

// Priority represents task priority
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank returns the urgency rank (0 = most urgent), used for badge colors
// and compact-view sorting
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// String returns the display string
func (p Priority) String() string {
	return string(p)
}

// UserRef is a display-ready reference to a workspace member
type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Initials returns up to two initials for compact card rendering
func (u UserRef) Initials() string {
	fields := strings.Fields(u.Name)
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		r := []rune(fields[0])
		return strings.ToUpper(string(r[0]))
	default:
		first := []rune(fields[0])
		last := []rune(fields[len(fields)-1])
		return strings.ToUpper(string(first[0]) + string(last[0]))
	}
}
