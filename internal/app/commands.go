package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/services/store"
)

// Message types for async operations

type tasksLoadedMsg struct {
	page   domain.TaskPage
	silent bool
	err    error
}

type moreTasksMsg struct {
	page domain.TaskPage
	err  error
}

type categoriesLoadedMsg struct {
	categories []domain.Category
	err        error
}

type usersLoadedMsg struct {
	users []domain.UserRef
	err   error
}

type taskCreatedMsg struct {
	task domain.Task
	err  error
}

type updateDoneMsg struct {
	intent store.Intent
	task   *domain.Task
	err    error
}

type repositionDoneMsg struct {
	intent store.Intent
	err    error
}

type deleteDoneMsg struct {
	intent store.Intent
	err    error
}

type tickMsg time.Time

// callTimeout derives the per-request timeout from config
func (m Model) callTimeout() time.Duration {
	ms := m.config.API.TimeoutMs
	if ms <= 0 {
		ms = 10000
	}
	return time.Duration(ms) * time.Millisecond
}

// fetchTasksCmd loads the first page of tasks. Silent fetches reconcile
// server-side renumbering without surfacing loading state or error toasts.
func (m Model) fetchTasksCmd(silent bool) tea.Cmd {
	workspaceID := m.store.Workspace()
	filters := domain.TaskFilters{PageSize: m.config.API.PageSize}
	timeout := m.callTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := m.apiClient.FetchTasks(ctx, workspaceID, filters, "")
		return tasksLoadedMsg{page: page, silent: silent, err: err}
	}
}

// loadMoreCmd fetches the page after the given cursor
func (m Model) loadMoreCmd(cursor string) tea.Cmd {
	workspaceID := m.store.Workspace()
	filters := domain.TaskFilters{PageSize: m.config.API.PageSize}
	timeout := m.callTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := m.apiClient.FetchTasks(ctx, workspaceID, filters, cursor)
		return moreTasksMsg{page: page, err: err}
	}
}

// loadCategoriesCmd fetches the workspace's categories
func (m Model) loadCategoriesCmd() tea.Cmd {
	workspaceID := m.store.Workspace()
	timeout := m.callTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		categories, err := m.apiClient.Categories(ctx, workspaceID)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

// loadUsersCmd fetches the workspace's members for assignee resolution
func (m Model) loadUsersCmd() tea.Cmd {
	workspaceID := m.store.Workspace()
	timeout := m.callTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		users, err := m.apiClient.Users(ctx, workspaceID)
		return usersLoadedMsg{users: users, err: err}
	}
}

// createTaskCmd persists a draft; the store only learns about the task once
// the server has assigned its id
func (m Model) createTaskCmd(draft domain.TaskDraft) tea.Cmd {
	timeout := m.callTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		task, err := m.apiClient.CreateTask(ctx, draft)
		return taskCreatedMsg{task: task, err: err}
	}
}

// updateTaskCmd sends a field patch for an already-begun optimistic update
func (m Model) updateTaskCmd(intent store.Intent, id int64, patch domain.TaskPatch) tea.Cmd {
	timeout := m.callTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		task, err := m.apiClient.UpdateTask(ctx, id, patch)
		if err != nil {
			return updateDoneMsg{intent: intent, err: err}
		}
		return updateDoneMsg{intent: intent, task: &task}
	}
}

// repositionCmd sends a position update for an already-begun optimistic move
func (m Model) repositionCmd(intent store.Intent, id int64, payload domain.PositionUpdate) tea.Cmd {
	timeout := m.callTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := m.apiClient.UpdatePosition(ctx, id, payload)
		return repositionDoneMsg{intent: intent, err: err}
	}
}

// deleteTaskCmd deletes a task for an already-begun optimistic removal
func (m Model) deleteTaskCmd(intent store.Intent, id int64) tea.Cmd {
	timeout := m.callTimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := m.apiClient.DeleteTask(ctx, id)
		return deleteDoneMsg{intent: intent, err: err}
	}
}

// tickEvery schedules a periodic tick
func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
