package domain

import (
	"encoding/json"
	"time"
)

// TaskPatch is a partial task update with named optional fields. A nil field
// is left untouched by the server; the Clear flags send an explicit null.
type TaskPatch struct {
	Title            *string
	Description      *string
	Priority         *Priority
	Status           *Status
	CategoryID       *int64
	Position         *int
	DueDate          *time.Time
	ClearDueDate     bool
	CompletedAt      *time.Time
	ClearCompletedAt bool
	AssigneeIDs      *[]int64
}

// IsZero reports whether the patch carries no changes
func (p TaskPatch) IsZero() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.Status == nil &&
		p.CategoryID == nil &&
		p.Position == nil &&
		p.DueDate == nil && !p.ClearDueDate &&
		p.CompletedAt == nil && !p.ClearCompletedAt &&
		p.AssigneeIDs == nil
}

// MarshalJSON emits only the fields the patch actually sets, so the wire
// body is a true partial update
func (p TaskPatch) MarshalJSON() ([]byte, error) {
	body := make(map[string]any)
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Priority != nil {
		body["priority"] = *p.Priority
	}
	if p.Status != nil {
		body["status"] = *p.Status
	}
	if p.CategoryID != nil {
		body["categoryId"] = *p.CategoryID
	}
	if p.Position != nil {
		body["position"] = *p.Position
	}
	if p.ClearDueDate {
		body["dueDate"] = nil
	} else if p.DueDate != nil {
		body["dueDate"] = p.DueDate.Format(time.RFC3339)
	}
	if p.ClearCompletedAt {
		body["completedAt"] = nil
	} else if p.CompletedAt != nil {
		body["completedAt"] = p.CompletedAt.Format(time.RFC3339)
	}
	if p.AssigneeIDs != nil {
		body["assigneeIds"] = *p.AssigneeIDs
	}
	return json.Marshal(body)
}

// TaskDraft carries the fields needed to create a task. The server assigns
// the id and the initial position (appended at the end of the scope).
type TaskDraft struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	CategoryID   int64      `json:"categoryId"`
	ParentTaskID *int64     `json:"parentTaskId,omitempty"`
	Priority     Priority   `json:"priority,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	AssigneeIDs  []int64    `json:"assigneeIds,omitempty"`
}

// PositionUpdate is the payload of a reposition call. The server renumbers
// siblings on receipt; the client refetches to observe final positions.
type PositionUpdate struct {
	CategoryID   int64  `json:"categoryId"`
	ParentTaskID *int64 `json:"parentTaskId,omitempty"`
	Position     int    `json:"position"`
}
