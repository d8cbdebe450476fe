// Package dnd translates raw drag-and-drop events into position resolver
// vocabulary. It owns no state: it parses the opaque draggable/droppable
// identifiers, reconstructs the exact row lists the UI rendered, and hands
// the resolved target to the task store.
package dnd

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/services/position"
	"github.com/trellisboard/trellis/internal/services/store"
)

// DragEvent is the raw gesture payload: visual row indices plus opaque
// identifiers encoding kind and numeric id
type DragEvent struct {
	DraggableID     string // "task-42" or "subtask-17"
	SourceDroppable string // "category-3"
	SourceIndex     int
	DestDroppable   string // empty when dropped outside any region
	DestIndex       int
}

// Result is a mapped drop ready to go over the wire
type Result struct {
	Intent  store.Intent
	Payload domain.PositionUpdate
}

// Mapper adapts drag gestures into store repositions
type Mapper struct {
	store  *store.Store
	logger *slog.Logger
}

// NewMapper creates a mapper bound to the task store
func NewMapper(s *store.Store, logger *slog.Logger) *Mapper {
	return &Mapper{store: s, logger: logger}
}

// Map resolves a drag event against the current collection. The second
// return is false for every no-op drop; no state was touched and no network
// call may be made.
func (m *Mapper) Map(ev DragEvent, expanded map[int64]bool) (Result, bool) {
	entity, err := ParseDraggableID(ev.DraggableID)
	if err != nil {
		m.logger.Debug("unparseable draggable id", "id", ev.DraggableID)
		return Result{}, false
	}

	sourceCat, err := ParseDroppableID(ev.SourceDroppable)
	if err != nil {
		return Result{}, false
	}

	tasks := m.store.Tasks()
	drop := position.Drop{
		Entity: entity,
		Source: position.Location{
			CategoryID: sourceCat,
			Index:      ev.SourceIndex,
			Rows:       BuildRows(tasks, sourceCat, expanded),
		},
	}

	if ev.DestDroppable != "" {
		destCat, err := ParseDroppableID(ev.DestDroppable)
		if err != nil {
			return Result{}, false
		}
		dest := position.Location{
			CategoryID: destCat,
			Index:      ev.DestIndex,
		}
		if destCat == sourceCat {
			dest.Rows = drop.Source.Rows
		} else {
			dest.Rows = BuildRows(tasks, destCat, expanded)
		}
		drop.Dest = &dest
	}

	target, ok := position.Resolve(drop)
	if !ok {
		return Result{}, false
	}

	intent, payload, ok := m.store.BeginReposition(entity.ID, target)
	if !ok {
		return Result{}, false
	}

	m.logger.Debug("drop mapped",
		"entity", ev.DraggableID,
		"category", payload.CategoryID,
		"position", payload.Position)
	return Result{Intent: intent, Payload: payload}, true
}

// BuildRows reconstructs the flat row list a category column renders:
// parents in position order, each expanded parent followed by its subtasks
// in position order. The board renderer uses this same function, so the
// mapper's view of visual indices cannot drift from what was drawn.
func BuildRows(tasks []domain.Task, categoryID int64, expanded map[int64]bool) []position.Row {
	var parents []domain.Task
	subtasks := make(map[int64][]domain.Task)

	for _, t := range tasks {
		if t.CategoryID != categoryID {
			continue
		}
		if t.ParentTaskID != nil {
			subtasks[*t.ParentTaskID] = append(subtasks[*t.ParentTaskID], t)
			continue
		}
		parents = append(parents, t)
	}

	sort.SliceStable(parents, func(i, j int) bool {
		return parents[i].Position < parents[j].Position
	})

	var rows []position.Row
	for _, p := range parents {
		rows = append(rows, position.Row{Task: p})
		if !expanded[p.ID] {
			continue
		}
		subs := subtasks[p.ID]
		sort.SliceStable(subs, func(i, j int) bool {
			return subs[i].Position < subs[j].Position
		})
		for _, sub := range subs {
			rows = append(rows, position.Row{Task: sub, IsSubtask: true, ParentID: p.ID})
		}
	}
	return rows
}

// DraggableID encodes the dragged entity kind and id ("task-42")
func DraggableID(t domain.Task) string {
	if t.IsSubtask() {
		return fmt.Sprintf("subtask-%d", t.ID)
	}
	return fmt.Sprintf("task-%d", t.ID)
}

// DroppableID encodes a category drop region ("category-3")
func DroppableID(categoryID int64) string {
	return fmt.Sprintf("category-%d", categoryID)
}

// ParseDraggableID decodes a draggable identifier
func ParseDraggableID(id string) (position.Entity, error) {
	kind, raw, ok := strings.Cut(id, "-")
	if !ok {
		return position.Entity{}, fmt.Errorf("malformed draggable id %q", id)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return position.Entity{}, fmt.Errorf("malformed draggable id %q", id)
	}
	switch kind {
	case "task":
		return position.Entity{Kind: position.KindTask, ID: n}, nil
	case "subtask":
		return position.Entity{Kind: position.KindSubtask, ID: n}, nil
	default:
		return position.Entity{}, fmt.Errorf("unknown draggable kind %q", kind)
	}
}

// ParseDroppableID decodes a droppable region identifier
func ParseDroppableID(id string) (int64, error) {
	raw, ok := strings.CutPrefix(id, "category-")
	if !ok {
		return 0, fmt.Errorf("malformed droppable id %q", id)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("malformed droppable id %q", id)
	}
	return n, nil
}
