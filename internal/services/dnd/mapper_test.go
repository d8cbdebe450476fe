package dnd

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/services/position"
	"github.com/trellisboard/trellis/internal/services/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore() *store.Store {
	parent := int64(10)
	s := store.New(testLogger())
	s.SetWorkspace(1)
	s.CompleteFetch(domain.TaskPage{Tasks: []domain.Task{
		{ID: 10, Title: "Parent", CategoryID: 1, Position: 0, SubtaskCount: 2},
		{ID: 11, Title: "Sub A", CategoryID: 1, Position: 0, ParentTaskID: &parent},
		{ID: 12, Title: "Sub B", CategoryID: 1, Position: 1, ParentTaskID: &parent},
		{ID: 20, Title: "Second", CategoryID: 1, Position: 1},
		{ID: 40, Title: "Elsewhere", CategoryID: 2, Position: 0},
	}})
	return s
}

func TestDraggableID_RoundTrip(t *testing.T) {
	parent := int64(10)

	tests := []struct {
		name     string
		task     domain.Task
		wantID   string
		wantKind position.Kind
	}{
		{
			name:     "parent task",
			task:     domain.Task{ID: 42},
			wantID:   "task-42",
			wantKind: position.KindTask,
		},
		{
			name:     "subtask",
			task:     domain.Task{ID: 17, ParentTaskID: &parent},
			wantID:   "subtask-17",
			wantKind: position.KindSubtask,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := DraggableID(tt.task)
			assert.Equal(t, tt.wantID, id)

			entity, err := ParseDraggableID(id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, entity.Kind)
			assert.Equal(t, tt.task.ID, entity.ID)
		})
	}
}

func TestParseDraggableID_Malformed(t *testing.T) {
	for _, id := range []string{"", "task", "task-", "task-x", "task-0", "epic-3"} {
		_, err := ParseDraggableID(id)
		assert.Error(t, err, "id %q", id)
	}
}

func TestParseDroppableID(t *testing.T) {
	cat, err := ParseDroppableID(DroppableID(3))
	require.NoError(t, err)
	assert.Equal(t, int64(3), cat)

	for _, id := range []string{"", "column-3", "category-", "category-abc", "category-0"} {
		_, err := ParseDroppableID(id)
		assert.Error(t, err, "id %q", id)
	}
}

func TestBuildRows(t *testing.T) {
	tasks := testStore().Tasks()

	t.Run("collapsed parents hide subtasks", func(t *testing.T) {
		rows := BuildRows(tasks, 1, nil)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(10), rows[0].Task.ID)
		assert.Equal(t, int64(20), rows[1].Task.ID)
	})

	t.Run("expanded parent interleaves its subtasks", func(t *testing.T) {
		rows := BuildRows(tasks, 1, map[int64]bool{10: true})
		require.Len(t, rows, 4)
		assert.Equal(t, int64(10), rows[0].Task.ID)
		assert.Equal(t, int64(11), rows[1].Task.ID)
		assert.True(t, rows[1].IsSubtask)
		assert.Equal(t, int64(10), rows[1].ParentID)
		assert.Equal(t, int64(12), rows[2].Task.ID)
		assert.Equal(t, int64(20), rows[3].Task.ID)
	})

	t.Run("other categories are excluded", func(t *testing.T) {
		rows := BuildRows(tasks, 2, nil)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(40), rows[0].Task.ID)
	})
}

func TestMapper_Map(t *testing.T) {
	s := testStore()
	m := NewMapper(s, testLogger())
	expanded := map[int64]bool{10: true}

	result, ok := m.Map(DragEvent{
		DraggableID:     "task-20",
		SourceDroppable: "category-1",
		SourceIndex:     3,
		DestDroppable:   "category-2",
		DestIndex:       0,
	}, expanded)
	require.True(t, ok)

	assert.Equal(t, domain.PositionUpdate{CategoryID: 2, Position: 0}, result.Payload)

	moved, _ := s.TaskByID(20)
	assert.Equal(t, int64(2), moved.CategoryID)
	assert.Equal(t, 0, moved.Position)
}

func TestMapper_Map_NoOpLeavesStoreUntouched(t *testing.T) {
	s := testStore()
	m := NewMapper(s, testLogger())
	before := append([]domain.Task(nil), s.Tasks()...)

	events := []DragEvent{
		// Dropped outside any region
		{DraggableID: "task-20", SourceDroppable: "category-1", SourceIndex: 3},
		// Dropped back onto its own row
		{DraggableID: "task-20", SourceDroppable: "category-1", SourceIndex: 3, DestDroppable: "category-1", DestIndex: 3},
		// Parent dropped onto a subtask row in its own category
		{DraggableID: "task-20", SourceDroppable: "category-1", SourceIndex: 3, DestDroppable: "category-1", DestIndex: 1},
		// Subtask dragged across categories
		{DraggableID: "subtask-11", SourceDroppable: "category-1", SourceIndex: 1, DestDroppable: "category-2", DestIndex: 0},
		// Unparseable ids
		{DraggableID: "nonsense", SourceDroppable: "category-1", SourceIndex: 0, DestDroppable: "category-2", DestIndex: 0},
		{DraggableID: "task-20", SourceDroppable: "board", SourceIndex: 0, DestDroppable: "category-2", DestIndex: 0},
	}

	for _, ev := range events {
		_, ok := m.Map(ev, map[int64]bool{10: true})
		assert.False(t, ok, "event %+v", ev)
	}

	assert.Equal(t, before, s.Tasks())
}
