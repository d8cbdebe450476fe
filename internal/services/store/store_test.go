package store

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/services/position"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCategories() []domain.Category {
	return []domain.Category{
		{ID: 1, Name: "To Do", Position: 0},
		{ID: 2, Name: "Doing", Position: 1},
		{ID: 3, Name: "Completed", Position: 2},
	}
}

// Fixture: two parents in category 1 (the first with two subtasks), one
// parent in category 2, one completed parent in category 3
func testTasks() []domain.Task {
	parent := int64(10)
	completedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []domain.Task{
		{ID: 10, Title: "Parent", CategoryID: 1, Position: 0, Status: domain.StatusTodo, SubtaskCount: 2},
		{ID: 11, Title: "Sub A", CategoryID: 1, Position: 0, Status: domain.StatusTodo, ParentTaskID: &parent},
		{ID: 12, Title: "Sub B", CategoryID: 1, Position: 1, Status: domain.StatusTodo, ParentTaskID: &parent},
		{ID: 20, Title: "Second", CategoryID: 1, Position: 1, Status: domain.StatusTodo},
		{ID: 40, Title: "Doing it", CategoryID: 2, Position: 0, Status: domain.StatusInProgress},
		{ID: 60, Title: "Done already", CategoryID: 3, Position: 0, Status: domain.StatusCompleted, CompletedAt: &completedAt},
	}
}

func newTestStore() *Store {
	s := New(testLogger())
	s.SetWorkspace(1)
	s.CompleteFetch(domain.TaskPage{Tasks: testTasks()})
	return s
}

func TestStore_CanFetch(t *testing.T) {
	s := New(testLogger())
	assert.False(t, s.CanFetch(), "no workspace selected")

	s.SetWorkspace(1)
	assert.True(t, s.CanFetch())
}

func TestStore_CompleteFetch_Replaces(t *testing.T) {
	s := newTestStore()

	s.CompleteFetch(domain.TaskPage{
		Tasks:      []domain.Task{{ID: 99, CategoryID: 1}},
		NextCursor: "c2",
		HasMore:    true,
	})

	require.Len(t, s.Tasks(), 1)
	assert.Equal(t, int64(99), s.Tasks()[0].ID)
	assert.True(t, s.HasMore())
}

func TestStore_LoadMore(t *testing.T) {
	s := New(testLogger())
	s.SetWorkspace(1)
	s.CompleteFetch(domain.TaskPage{
		Tasks:      testTasks(),
		NextCursor: "c1",
		HasMore:    true,
	})

	cursor, ok := s.BeginLoadMore()
	require.True(t, ok)
	assert.Equal(t, "c1", cursor)

	_, ok = s.BeginLoadMore()
	assert.False(t, ok, "a load is already in flight")

	s.CompleteLoadMore(domain.TaskPage{
		Tasks: []domain.Task{{ID: 99, CategoryID: 2, Position: 1}},
	}, nil)
	assert.Len(t, s.Tasks(), 7)
	assert.False(t, s.HasMore())

	_, ok = s.BeginLoadMore()
	assert.False(t, ok, "no page remains")
}

func TestStore_LoadMore_Error(t *testing.T) {
	s := New(testLogger())
	s.SetWorkspace(1)
	s.CompleteFetch(domain.TaskPage{Tasks: testTasks(), NextCursor: "c1", HasMore: true})

	_, ok := s.BeginLoadMore()
	require.True(t, ok)

	s.CompleteLoadMore(domain.TaskPage{}, errors.New("boom"))
	assert.Len(t, s.Tasks(), 6, "a failed page changes nothing")
	assert.True(t, s.HasMore())

	_, ok = s.BeginLoadMore()
	assert.True(t, ok, "in-flight flag cleared after failure")
}

func TestStore_CompleteCreate(t *testing.T) {
	s := newTestStore()
	parent := int64(10)

	s.CompleteCreate(domain.Task{ID: 13, CategoryID: 1, Position: 2, ParentTaskID: &parent})

	got, ok := s.TaskByID(10)
	require.True(t, ok)
	assert.Equal(t, 3, got.SubtaskCount)
}

func TestStore_Update_Rollback(t *testing.T) {
	s := newTestStore()
	before := append([]domain.Task(nil), s.Tasks()...)

	title := "Renamed"
	intent, ok := s.BeginUpdate(20, domain.TaskPatch{Title: &title})
	require.True(t, ok)

	got, _ := s.TaskByID(20)
	assert.Equal(t, "Renamed", got.Title, "projection applied before the call")

	outcome := s.CompleteUpdate(intent, nil, errors.New("500"))
	assert.Equal(t, OutcomeRolledBack, outcome)
	assert.Equal(t, before, s.Tasks(), "collection restored wholesale")
}

func TestStore_Update_ServerWins(t *testing.T) {
	s := newTestStore()

	title := "Renamed"
	intent, ok := s.BeginUpdate(20, domain.TaskPatch{Title: &title})
	require.True(t, ok)

	server := domain.Task{ID: 20, Title: "Renamed (server)", CategoryID: 1, Position: 1, Status: domain.StatusTodo}
	outcome := s.CompleteUpdate(intent, &server, nil)
	assert.Equal(t, OutcomeApplied, outcome)

	got, _ := s.TaskByID(20)
	assert.Equal(t, "Renamed (server)", got.Title)
}

func TestStore_Update_EmptyPatch(t *testing.T) {
	s := newTestStore()
	_, ok := s.BeginUpdate(20, domain.TaskPatch{})
	assert.False(t, ok)
}

func TestStore_Update_GenerationRace(t *testing.T) {
	s := newTestStore()

	titleA := "A"
	intentA, ok := s.BeginUpdate(20, domain.TaskPatch{Title: &titleA})
	require.True(t, ok)

	titleB := "B"
	intentB, ok := s.BeginUpdate(20, domain.TaskPatch{Title: &titleB})
	require.True(t, ok)

	// The older mutation fails after the newer one started: its rollback
	// must not clobber B's projection
	outcome := s.CompleteUpdate(intentA, nil, errors.New("timeout"))
	assert.Equal(t, OutcomeStale, outcome)

	got, _ := s.TaskByID(20)
	assert.Equal(t, "B", got.Title)

	server := domain.Task{ID: 20, Title: "B", CategoryID: 1, Position: 1, Status: domain.StatusTodo}
	outcome = s.CompleteUpdate(intentB, &server, nil)
	assert.Equal(t, OutcomeApplied, outcome)
}

func TestStore_Reposition_CrossCategory(t *testing.T) {
	s := newTestStore()

	intent, payload, ok := s.BeginReposition(20, position.Target{CategoryID: 2, Position: 0})
	require.True(t, ok)
	assert.Equal(t, domain.PositionUpdate{CategoryID: 2, Position: 0}, payload)

	moved, _ := s.TaskByID(20)
	assert.Equal(t, int64(2), moved.CategoryID)
	assert.Equal(t, 0, moved.Position)

	displaced, _ := s.TaskByID(40)
	assert.Equal(t, 1, displaced.Position, "destination siblings renumbered")

	remaining, _ := s.TaskByID(10)
	assert.Equal(t, 0, remaining.Position, "source siblings renumbered")

	outcome := s.CompleteReposition(intent, nil)
	assert.Equal(t, OutcomeResync, outcome, "success still requires a silent refetch")
}

func TestStore_Reposition_Rollback(t *testing.T) {
	s := newTestStore()
	before := append([]domain.Task(nil), s.Tasks()...)

	intent, _, ok := s.BeginReposition(20, position.Target{CategoryID: 2, Position: 0})
	require.True(t, ok)

	outcome := s.CompleteReposition(intent, errors.New("409"))
	assert.Equal(t, OutcomeRolledBack, outcome)
	assert.Equal(t, before, s.Tasks())
}

func TestStore_Reposition_SubtasksFollowParent(t *testing.T) {
	s := newTestStore()

	_, _, ok := s.BeginReposition(10, position.Target{CategoryID: 2, Position: 1})
	require.True(t, ok)

	subA, _ := s.TaskByID(11)
	subB, _ := s.TaskByID(12)
	assert.Equal(t, int64(2), subA.CategoryID)
	assert.Equal(t, int64(2), subB.CategoryID)
}

func TestStore_Reposition_Subtask(t *testing.T) {
	s := newTestStore()
	parent := int64(10)

	_, payload, ok := s.BeginReposition(11, position.Target{CategoryID: 1, ParentID: &parent, Position: 1})
	require.True(t, ok)
	require.NotNil(t, payload.ParentTaskID)
	assert.Equal(t, int64(10), *payload.ParentTaskID)
	assert.Equal(t, 1, payload.Position)

	subA, _ := s.TaskByID(11)
	subB, _ := s.TaskByID(12)
	assert.Equal(t, 1, subA.Position)
	assert.Equal(t, 0, subB.Position)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore()

	intent, ok := s.BeginDelete(10)
	require.True(t, ok)

	_, found := s.TaskByID(10)
	assert.False(t, found)
	_, found = s.TaskByID(11)
	assert.False(t, found, "subtasks removed with the parent")
	_, found = s.TaskByID(12)
	assert.False(t, found)

	second, _ := s.TaskByID(20)
	assert.Equal(t, 0, second.Position, "scope renumbered after removal")

	outcome := s.CompleteDelete(intent, nil)
	assert.Equal(t, OutcomeApplied, outcome)
}

func TestStore_Delete_Rollback(t *testing.T) {
	s := newTestStore()
	before := append([]domain.Task(nil), s.Tasks()...)

	intent, ok := s.BeginDelete(10)
	require.True(t, ok)

	outcome := s.CompleteDelete(intent, errors.New("403"))
	assert.Equal(t, OutcomeRolledBack, outcome)
	assert.Equal(t, before, s.Tasks(), "task reappears at its original index")
}

func TestStore_Delete_SubtaskAdjustsCounters(t *testing.T) {
	s := newTestStore()

	_, ok := s.BeginDelete(11)
	require.True(t, ok)

	parent, _ := s.TaskByID(10)
	assert.Equal(t, 1, parent.SubtaskCount)

	remaining, _ := s.TaskByID(12)
	assert.Equal(t, 0, remaining.Position)
}

func TestStore_ToggleComplete(t *testing.T) {
	s := newTestStore()
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	intent, patch, ok := s.BeginToggleComplete(20, testCategories())
	require.True(t, ok)

	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.StatusCompleted, *patch.Status)
	require.NotNil(t, patch.CompletedAt)
	assert.Equal(t, now, *patch.CompletedAt)
	require.NotNil(t, patch.CategoryID)
	assert.Equal(t, int64(3), *patch.CategoryID, "reassigned to the Completed category")

	got, _ := s.TaskByID(20)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, int64(3), got.CategoryID)
	assert.Equal(t, 1, got.Position, "appended at the end of the new scope")
	require.NotNil(t, got.CompletedAt)

	server := got
	outcome := s.CompleteUpdate(intent, &server, nil)
	assert.Equal(t, OutcomeApplied, outcome)
}

func TestStore_ToggleComplete_Uncomplete(t *testing.T) {
	s := newTestStore()

	_, patch, ok := s.BeginToggleComplete(60, testCategories())
	require.True(t, ok)

	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.StatusTodo, *patch.Status)
	assert.True(t, patch.ClearCompletedAt)
	require.NotNil(t, patch.CategoryID)
	assert.Equal(t, int64(1), *patch.CategoryID, "reassigned back to To Do")

	got, _ := s.TaskByID(60)
	assert.Equal(t, domain.StatusTodo, got.Status)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, int64(1), got.CategoryID)
	assert.Equal(t, 2, got.Position, "appended after the existing To Do parents")
}

func TestStore_ToggleComplete_Subtask(t *testing.T) {
	s := newTestStore()

	_, patch, ok := s.BeginToggleComplete(11, testCategories())
	require.True(t, ok)

	assert.Nil(t, patch.CategoryID, "subtasks never change category")

	parent, _ := s.TaskByID(10)
	assert.Equal(t, 1, parent.CompletedSubtaskCount)

	// Toggling back decrements again
	_, _, ok = s.BeginToggleComplete(11, testCategories())
	require.True(t, ok)
	parent, _ = s.TaskByID(10)
	assert.Equal(t, 0, parent.CompletedSubtaskCount)
}

func TestStore_ResolveAssignees(t *testing.T) {
	s := newTestStore()
	s.SetUsers([]domain.UserRef{{ID: 5, Name: "Ada Lovelace"}})

	ids := []int64{5, 9}
	_, ok := s.BeginUpdate(20, domain.TaskPatch{AssigneeIDs: &ids})
	require.True(t, ok)

	got, _ := s.TaskByID(20)
	require.Len(t, got.Assignees, 2)
	assert.Equal(t, "Ada Lovelace", got.Assignees[0].Name)
	assert.Equal(t, int64(9), got.Assignees[1].ID, "unknown ids kept for the server to fill in")
	assert.Empty(t, got.Assignees[1].Name)
}
