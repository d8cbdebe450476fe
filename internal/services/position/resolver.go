// Package position computes persistable task positions from drag gestures.
// Everything here is pure: inputs are the rendered row lists and visual
// indices, the output is the (category, parent, position) triple to store.
package position

import "github.com/trellisboard/trellis/internal/domain"

// Kind distinguishes what is being dragged
type Kind string

const (
	KindTask    Kind = "task"
	KindSubtask Kind = "subtask"
)

// Row is one rendered line of a category column: a parent task, or a
// subtask of a currently expanded parent
type Row struct {
	Task      domain.Task
	IsSubtask bool
	ParentID  int64 // set when IsSubtask
}

// Entity identifies the dragged item
type Entity struct {
	Kind Kind
	ID   int64
}

// Location pins a visual row index inside a category's rendered row list
type Location struct {
	CategoryID int64
	Index      int
	Rows       []Row
}

// Drop is a fully described drag gesture. Dest is nil when the drag ended
// outside any droppable region.
type Drop struct {
	Entity Entity
	Source Location
	Dest   *Location
}

// Target is the persistable outcome of a resolved drop
type Target struct {
	CategoryID int64
	ParentID   *int64
	Position   int
}

// Resolve maps a drop onto a concrete target position. The second return is
// false for every no-op: missing destination, unchanged position, or a
// kind-incompatible drop. Callers must skip the network call entirely when
// it is false.
func Resolve(d Drop) (Target, bool) {
	if d.Dest == nil {
		return Target{}, false
	}
	if d.Source.CategoryID == d.Dest.CategoryID && d.Source.Index == d.Dest.Index {
		return Target{}, false
	}

	switch d.Entity.Kind {
	case KindSubtask:
		return resolveSubtask(d)
	case KindTask:
		if d.Source.CategoryID == d.Dest.CategoryID {
			return resolveSameCategory(d)
		}
		return resolveCrossCategory(d)
	default:
		return Target{}, false
	}
}

// resolveSameCategory reorders a parent task among the parent rows of its
// own category. Dropping onto a subtask row is rejected.
func resolveSameCategory(d Drop) (Target, bool) {
	rows := d.Source.Rows

	srcOrd, ok := parentOrdinalOf(rows, d.Entity.ID)
	if !ok {
		return Target{}, false
	}

	var destOrd int
	if d.Dest.Index >= len(rows) {
		destOrd = parentCount(rows) - 1
	} else {
		row := rows[d.Dest.Index]
		if row.IsSubtask {
			return Target{}, false
		}
		destOrd = parentsBefore(rows, d.Dest.Index)
	}

	if destOrd == srcOrd {
		return Target{}, false
	}

	// Removing the task at srcOrd and reinserting at destOrd leaves the
	// moved task at ordinal destOrd; only that position is persisted, the
	// server renumbers the remaining siblings.
	return Target{CategoryID: d.Source.CategoryID, Position: destOrd}, true
}

// resolveCrossCategory inserts a parent task into another category. The
// destination visual index is mapped to a parent-task ordinal: a subtask row
// maps to immediately after its parent, past-the-end appends.
func resolveCrossCategory(d Drop) (Target, bool) {
	if _, ok := parentOrdinalOf(d.Source.Rows, d.Entity.ID); !ok {
		return Target{}, false
	}

	rows := d.Dest.Rows
	var pos int
	switch {
	case d.Dest.Index >= len(rows):
		pos = parentCount(rows)
	case rows[d.Dest.Index].IsSubtask:
		parentOrd, ok := parentOrdinalOf(rows, rows[d.Dest.Index].ParentID)
		if !ok {
			return Target{}, false
		}
		pos = parentOrd + 1
	default:
		pos = parentsBefore(rows, d.Dest.Index)
	}

	return Target{CategoryID: d.Dest.CategoryID, Position: pos}, true
}

// resolveSubtask reorders a subtask within its parent's flattened block.
// Cross-parent and cross-category subtask moves are rejected.
func resolveSubtask(d Drop) (Target, bool) {
	if d.Dest.CategoryID != d.Source.CategoryID {
		return Target{}, false
	}

	rows := d.Source.Rows
	srcIdx := -1
	for i, r := range rows {
		if r.IsSubtask && r.Task.ID == d.Entity.ID {
			srcIdx = i
			break
		}
	}
	if srcIdx == -1 {
		return Target{}, false
	}
	parentID := rows[srcIdx].ParentID

	start, end := subtaskBlock(rows, parentID)
	if d.Dest.Index < start || d.Dest.Index >= end {
		return Target{}, false
	}

	srcOrd := srcIdx - start
	destOrd := d.Dest.Index - start
	if srcOrd == destOrd {
		return Target{}, false
	}

	return Target{
		CategoryID: d.Source.CategoryID,
		ParentID:   &parentID,
		Position:   destOrd,
	}, true
}

// parentOrdinalOf returns the ordinal of the given task id among the
// non-subtask rows
func parentOrdinalOf(rows []Row, taskID int64) (int, bool) {
	ord := 0
	for _, r := range rows {
		if r.IsSubtask {
			continue
		}
		if r.Task.ID == taskID {
			return ord, true
		}
		ord++
	}
	return 0, false
}

// parentsBefore counts the parent rows strictly before the visual index
func parentsBefore(rows []Row, idx int) int {
	n := 0
	for i := 0; i < idx && i < len(rows); i++ {
		if !rows[i].IsSubtask {
			n++
		}
	}
	return n
}

// parentCount counts the parent rows in the list
func parentCount(rows []Row) int {
	return parentsBefore(rows, len(rows))
}

// subtaskBlock returns the half-open row range [start, end) holding the
// given parent's subtask rows. Subtasks of one parent always render as a
// contiguous block directly under it.
func subtaskBlock(rows []Row, parentID int64) (int, int) {
	start, end := -1, -1
	for i, r := range rows {
		if r.IsSubtask && r.ParentID == parentID {
			if start == -1 {
				start = i
			}
			end = i + 1
		}
	}
	if start == -1 {
		return 0, 0
	}
	return start, end
}
