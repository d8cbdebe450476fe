package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellisboard/trellis/internal/config"
	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/services/position"
	"github.com/trellisboard/trellis/internal/ui/overlay"
)

func repositionTarget(categoryID int64, pos int) position.Target {
	return position.Target{CategoryID: categoryID, Position: pos}
}

func overlayConfirm(confirmed bool) overlay.SelectionMsg {
	key := "no"
	if confirmed {
		key = "yes"
	}
	return overlay.SelectionMsg{Key: key, Value: overlay.ConfirmResult{Confirmed: confirmed}}
}

// Helper to create a test model with a seeded store
func newTestModel() Model {
	cfg := config.DefaultConfig()
	cfg.API.WorkspaceID = 1

	m := New(cfg)
	m.categories = []domain.Category{
		{ID: 1, Name: "To Do", Position: 0},
		{ID: 2, Name: "Doing", Position: 1},
		{ID: 3, Name: "Completed", Position: 2},
	}

	parent := int64(10)
	m.store.CompleteFetch(domain.TaskPage{Tasks: []domain.Task{
		{ID: 10, Title: "Parent", CategoryID: 1, Position: 0, Status: domain.StatusTodo, SubtaskCount: 2},
		{ID: 11, Title: "Sub A", CategoryID: 1, Position: 0, Status: domain.StatusTodo, ParentTaskID: &parent},
		{ID: 12, Title: "Sub B", CategoryID: 1, Position: 1, Status: domain.StatusTodo, ParentTaskID: &parent},
		{ID: 20, Title: "Second", CategoryID: 1, Position: 1, Status: domain.StatusTodo},
		{ID: 40, Title: "Doing it", CategoryID: 2, Position: 0, Status: domain.StatusInProgress},
	}})

	m.loading = false
	m.width = 100
	m.height = 30
	return m
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestBuildColumns(t *testing.T) {
	m := newTestModel()

	columns := m.buildColumns()
	if len(columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(columns))
	}
	if len(columns[0].Rows) != 2 {
		t.Errorf("Expected 2 rows with subtasks collapsed, got %d", len(columns[0].Rows))
	}

	m.editor.ToggleExpanded(10)
	columns = m.buildColumns()
	if len(columns[0].Rows) != 4 {
		t.Errorf("Expected 4 rows with parent expanded, got %d", len(columns[0].Rows))
	}
	if len(columns[1].Rows) != 1 {
		t.Errorf("Expected 1 row in Doing, got %d", len(columns[1].Rows))
	}
	if len(columns[2].Rows) != 0 {
		t.Errorf("Expected empty Completed column, got %d rows", len(columns[2].Rows))
	}
}

func TestNormalModeNavigation(t *testing.T) {
	m := newTestModel()

	t.Run("down moves to next row", func(t *testing.T) {
		m.nav.GetCursor().SetTask(10, 0)
		result, _ := m.handleNormalMode(keyRunes('j'))
		newModel := result.(Model)

		pos := newModel.nav.GetPosition(newModel.buildColumns())
		if pos.Row != 1 {
			t.Errorf("Expected row 1, got %d", pos.Row)
		}
	})

	t.Run("up at boundary stays", func(t *testing.T) {
		m.nav.GetCursor().SetTask(10, 0)
		result, _ := m.handleNormalMode(keyRunes('k'))
		newModel := result.(Model)

		pos := newModel.nav.GetPosition(newModel.buildColumns())
		if pos.Row != 0 {
			t.Errorf("Expected row 0, got %d", pos.Row)
		}
	})

	t.Run("right clamps to shorter column", func(t *testing.T) {
		m.nav.GetCursor().SetTask(20, 0)
		result, _ := m.handleNormalMode(keyRunes('l'))
		newModel := result.(Model)

		pos := newModel.nav.GetPosition(newModel.buildColumns())
		if pos.Column != 1 || pos.Row != 0 {
			t.Errorf("Expected column 1 row 0, got %d/%d", pos.Column, pos.Row)
		}
	})
}

func TestGrabAndDrop(t *testing.T) {
	m := newTestModel()
	m.nav.GetCursor().SetTask(20, 0)

	// Pick up
	result, _ := m.handleNormalMode(tea.KeyMsg{Type: tea.KeySpace})
	m = result.(Model)
	if !m.editor.IsGrab() {
		t.Fatal("Expected grab mode after space")
	}
	if m.grab == nil || m.grab.draggableID != "task-20" {
		t.Fatalf("Expected task-20 grabbed, got %+v", m.grab)
	}

	// Move one column right, then drop
	result, _ = m.handleGrabMode(keyRunes('l'))
	m = result.(Model)
	if m.grab.destCol != 1 {
		t.Fatalf("Expected destination column 1, got %d", m.grab.destCol)
	}

	result, cmd := m.handleGrabMode(tea.KeyMsg{Type: tea.KeySpace})
	m = result.(Model)

	if m.grab != nil || !m.editor.IsNormal() {
		t.Error("Expected grab cleared after drop")
	}
	if cmd == nil {
		t.Error("Expected a reposition command after a real move")
	}

	moved, _ := m.store.TaskByID(20)
	if moved.CategoryID != 2 {
		t.Errorf("Expected optimistic move to category 2, got %d", moved.CategoryID)
	}
}

func TestGrabDropInPlaceIsNoOp(t *testing.T) {
	m := newTestModel()
	m.nav.GetCursor().SetTask(20, 0)

	result, _ := m.handleNormalMode(tea.KeyMsg{Type: tea.KeySpace})
	m = result.(Model)

	result, cmd := m.handleGrabMode(tea.KeyMsg{Type: tea.KeyEnter})
	m = result.(Model)

	if cmd != nil {
		t.Error("Expected no command for an in-place drop")
	}
	task, _ := m.store.TaskByID(20)
	if task.CategoryID != 1 || task.Position != 1 {
		t.Errorf("Expected task untouched, got category %d position %d", task.CategoryID, task.Position)
	}
}

func TestGrabBlockedWhileFiltered(t *testing.T) {
	m := newTestModel()
	m.editor.SetSearchQuery("second")
	m.nav.GetCursor().SetTask(20, 0)

	result, _ := m.handleNormalMode(tea.KeyMsg{Type: tea.KeySpace})
	m = result.(Model)

	if m.editor.IsGrab() || m.grab != nil {
		t.Error("Expected grab refused while a filter hides rows")
	}
	if len(m.toasts) == 0 {
		t.Error("Expected a warning toast")
	}
}

func TestToggleCompleteKey(t *testing.T) {
	m := newTestModel()
	m.nav.GetCursor().SetTask(20, 0)

	result, cmd := m.handleNormalMode(keyRunes('x'))
	m = result.(Model)

	if cmd == nil {
		t.Fatal("Expected an update command")
	}
	task, _ := m.store.TaskByID(20)
	if task.Status != domain.StatusCompleted {
		t.Errorf("Expected optimistic completion, got %s", task.Status)
	}
	if task.CategoryID != 3 {
		t.Errorf("Expected reassignment to Completed category, got %d", task.CategoryID)
	}
}

func TestTabTogglesExpansion(t *testing.T) {
	m := newTestModel()
	m.nav.GetCursor().SetTask(10, 0)

	result, _ := m.handleNormalMode(tea.KeyMsg{Type: tea.KeyTab})
	m = result.(Model)
	if !m.editor.IsExpanded(10) {
		t.Error("Expected parent expanded")
	}

	result, _ = m.handleNormalMode(tea.KeyMsg{Type: tea.KeyTab})
	m = result.(Model)
	if m.editor.IsExpanded(10) {
		t.Error("Expected parent collapsed again")
	}
}

func TestRepositionDone(t *testing.T) {
	t.Run("success triggers a silent refetch", func(t *testing.T) {
		m := newTestModel()
		intent, _, ok := m.store.BeginReposition(20, repositionTarget(2, 0))
		if !ok {
			t.Fatal("BeginReposition failed")
		}

		_, cmd := m.Update(repositionDoneMsg{intent: intent})
		if cmd == nil {
			t.Error("Expected a refetch command after a successful reposition")
		}
	})

	t.Run("failure rolls back and toasts", func(t *testing.T) {
		m := newTestModel()
		intent, _, _ := m.store.BeginReposition(20, repositionTarget(2, 0))

		result, _ := m.Update(repositionDoneMsg{intent: intent, err: errors.New("409")})
		newModel := result.(Model)

		task, _ := newModel.store.TaskByID(20)
		if task.CategoryID != 1 {
			t.Errorf("Expected rollback to category 1, got %d", task.CategoryID)
		}
		if len(newModel.toasts) == 0 {
			t.Error("Expected an error toast")
		}
	})
}

func TestUpdateDoneStaleIsSilent(t *testing.T) {
	m := newTestModel()

	titleA := "A"
	intentA, _ := m.store.BeginUpdate(20, domain.TaskPatch{Title: &titleA})
	titleB := "B"
	_, _ = m.store.BeginUpdate(20, domain.TaskPatch{Title: &titleB})

	result, _ := m.Update(updateDoneMsg{intent: intentA, err: errors.New("timeout")})
	newModel := result.(Model)

	if len(newModel.toasts) != 0 {
		t.Error("Expected no toast for a superseded mutation")
	}
	task, _ := newModel.store.TaskByID(20)
	if task.Title != "B" {
		t.Errorf("Expected the newer projection to survive, got %q", task.Title)
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	m := newTestModel()
	m.nav.GetCursor().SetTask(20, 0)

	result, _ := m.handleNormalMode(keyRunes('d'))
	m = result.(Model)
	if m.overlayStack.IsEmpty() {
		t.Fatal("Expected a confirmation dialog")
	}
	if m.pendingDelete != 20 {
		t.Fatalf("Expected pending delete for task 20, got %d", m.pendingDelete)
	}

	// Confirming begins the optimistic delete and issues the network command
	result, cmd := m.Update(overlayConfirm(true))
	m = result.(Model)
	if cmd == nil {
		t.Error("Expected a delete command")
	}
	if _, found := m.store.TaskByID(20); found {
		t.Error("Expected task removed optimistically")
	}
}

func TestDeleteDeclined(t *testing.T) {
	m := newTestModel()
	m.nav.GetCursor().SetTask(20, 0)

	result, _ := m.handleNormalMode(keyRunes('d'))
	m = result.(Model)

	result, cmd := m.Update(overlayConfirm(false))
	m = result.(Model)
	if cmd != nil {
		t.Error("Expected no command when declined")
	}
	if _, found := m.store.TaskByID(20); !found {
		t.Error("Expected task untouched")
	}
}

func TestLoadMoreKey(t *testing.T) {
	m := newTestModel()

	// No further page: the key is a no-op with an info toast
	result, cmd := m.handleNormalMode(keyRunes('m'))
	m = result.(Model)
	if cmd != nil {
		t.Error("Expected no command without a next page")
	}
	if len(m.toasts) == 0 {
		t.Error("Expected an info toast")
	}
}

func TestStoreOutcomeConstants(t *testing.T) {
	// A rolled-back delete must restore the store wholesale
	m := newTestModel()
	before := len(m.store.Tasks())

	intent, _ := m.store.BeginDelete(10)
	result, _ := m.Update(deleteDoneMsg{intent: intent, err: errors.New("403")})
	newModel := result.(Model)

	if got := len(newModel.store.Tasks()); got != before {
		t.Errorf("Expected %d tasks after rollback, got %d", before, got)
	}
}
