package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture() []Task {
	parent := int64(1)
	return []Task{
		{ID: 1, Title: "Ship the release", Priority: PriorityHigh, Status: StatusInProgress, CategoryID: 1},
		{ID: 2, Title: "Write changelog", Status: StatusTodo, CategoryID: 1, ParentTaskID: &parent},
		{ID: 3, Title: "Water plants", Priority: PriorityLow, Status: StatusTodo, CategoryID: 1},
		{ID: 4, Title: "Old chore", Status: StatusCompleted, CategoryID: 2},
	}
}

func TestFilter_Inactive(t *testing.T) {
	f := NewFilter()
	tasks := filterFixture()
	assert.Equal(t, tasks, f.Apply(tasks), "inactive filter passes everything through")
}

func TestFilter_Priority(t *testing.T) {
	f := NewFilter()
	f.TogglePriority(PriorityHigh)

	result := f.Apply(filterFixture())
	require.Len(t, result, 2)
	assert.Equal(t, int64(1), result[0].ID)
	assert.Equal(t, int64(2), result[1].ID, "subtasks of a matching parent are kept")
}

func TestFilter_HideCompleted(t *testing.T) {
	f := NewFilter()
	f.HideCompleted = true

	result := f.Apply(filterFixture())
	for _, task := range result {
		assert.NotEqual(t, StatusCompleted, task.Status)
	}
	assert.Len(t, result, 3)
}

func TestFilter_Search(t *testing.T) {
	f := NewFilter()
	f.SearchQuery = "SHIP"

	result := f.Apply(filterFixture())
	require.Len(t, result, 2, "match is case-insensitive; subtask rides along")
	assert.Equal(t, int64(1), result[0].ID)
}

func TestFilter_Toggle(t *testing.T) {
	f := NewFilter()

	f.ToggleStatus(StatusTodo)
	assert.True(t, f.Status[StatusTodo])
	f.ToggleStatus(StatusTodo)
	assert.False(t, f.Status[StatusTodo])

	f.TogglePriority(PriorityUrgent)
	assert.True(t, f.IsActive())
	f.Clear()
	assert.False(t, f.IsActive())
}
