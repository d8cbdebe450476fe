// Package store owns the in-memory task collection. Every read and mutation
// funnels through the Store so snapshot/rollback and generation guarding
// stay correct.
//
// Mutations are two-phase to fit the single-threaded event loop: BeginX runs
// synchronously before the network call (bump generation, snapshot, apply the
// optimistic projection), CompleteX runs when the response message arrives
// (generation guard, then reconcile with the server entity or restore the
// snapshot wholesale).
package store

import (
	"log/slog"
	"sort"
	"time"

	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/services/position"
)

// Outcome describes how a completed mutation was applied
type Outcome int

const (
	// OutcomeApplied means the server result was reconciled into the store
	OutcomeApplied Outcome = iota
	// OutcomeRolledBack means the pre-mutation snapshot was restored
	OutcomeRolledBack
	// OutcomeStale means a newer mutation superseded this one; nothing changed
	OutcomeStale
	// OutcomeResync means the mutation applied and the caller must trigger a
	// silent background refetch to absorb server-side sibling renumbering
	OutcomeResync
)

// Intent ties an in-flight mutation to its generation and the snapshot to
// restore if the remote call fails
type Intent struct {
	TaskID     int64
	Generation uint64
	snapshot   []domain.Task
}

// Store is the single owner of the task collection
type Store struct {
	tasks       []domain.Task
	users       []domain.UserRef
	workspaceID int64

	cursor      string
	hasMore     bool
	loadingMore bool

	tracker *Tracker
	logger  *slog.Logger

	now func() time.Time
}

// New creates an empty store
func New(logger *slog.Logger) *Store {
	return &Store{
		tracker: NewTracker(),
		logger:  logger,
		now:     time.Now,
	}
}

// SetWorkspace selects the workspace context. Fetches are skipped entirely
// while no workspace is selected.
func (s *Store) SetWorkspace(id int64) {
	s.workspaceID = id
}

// Workspace returns the selected workspace id, 0 when none
func (s *Store) Workspace() int64 {
	return s.workspaceID
}

// SetUsers replaces the known user directory, used to project assignee-id
// patches into display-ready assignee records
func (s *Store) SetUsers(users []domain.UserRef) {
	s.users = users
}

// Tasks returns the live collection. Callers must treat it as read-only.
func (s *Store) Tasks() []domain.Task {
	return s.tasks
}

// TaskByID returns the task with the given id
func (s *Store) TaskByID(id int64) (domain.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return domain.Task{}, false
}

// HasMore reports whether another page is available
func (s *Store) HasMore() bool {
	return s.hasMore
}

// CanFetch reports the fetch precondition: a workspace must be selected.
// Not an error, callers silently skip the fetch when false.
func (s *Store) CanFetch() bool {
	return s.workspaceID != 0
}

// CompleteFetch replaces the entire collection with the server's page and
// resets the pagination cursor. A fetch is a full resynchronization point,
// never a merge.
func (s *Store) CompleteFetch(page domain.TaskPage) {
	s.tasks = append([]domain.Task(nil), page.Tasks...)
	s.cursor = page.NextCursor
	s.hasMore = page.HasMore
	s.loadingMore = false
	s.logger.Debug("collection replaced", "count", len(s.tasks), "hasMore", s.hasMore)
}

// BeginLoadMore returns the cursor for the next page. It declines when no
// page remains or a load is already in flight, so rapid repeated calls are
// safe.
func (s *Store) BeginLoadMore() (string, bool) {
	if !s.CanFetch() || !s.hasMore || s.loadingMore || s.cursor == "" {
		return "", false
	}
	s.loadingMore = true
	return s.cursor, true
}

// CompleteLoadMore appends the next page. Failures only clear the in-flight
// flag; there is no optimistic state to roll back.
func (s *Store) CompleteLoadMore(page domain.TaskPage, err error) {
	s.loadingMore = false
	if err != nil {
		s.logger.Debug("load more failed", "error", err)
		return
	}
	s.tasks = append(s.tasks, page.Tasks...)
	s.cursor = page.NextCursor
	s.hasMore = page.HasMore
}

// CompleteCreate appends the server-assigned task. Creation is not
// optimistic: the id is server-assigned and required for interaction.
func (s *Store) CompleteCreate(task domain.Task) {
	s.tasks = append(s.tasks, task)
	if task.ParentTaskID != nil {
		if p := s.indexOf(*task.ParentTaskID); p >= 0 {
			s.tasks[p].SubtaskCount++
		}
	}
}

// BeginUpdate applies the patch projection optimistically and returns the
// intent guarding the round-trip. Returns false when the task is unknown or
// the patch is empty.
func (s *Store) BeginUpdate(id int64, patch domain.TaskPatch) (Intent, bool) {
	idx := s.indexOf(id)
	if idx < 0 || patch.IsZero() {
		return Intent{}, false
	}

	intent := s.begin(id)
	s.applyPatch(idx, patch)
	return intent, true
}

// CompleteUpdate reconciles an update round-trip. On success the server's
// task object wins over the optimistic projection; on failure the snapshot
// is restored. Either way a stale result is silently discarded.
func (s *Store) CompleteUpdate(intent Intent, task *domain.Task, err error) Outcome {
	if !s.tracker.IsCurrent(intent.TaskID, intent.Generation) {
		s.logger.Debug("stale update discarded", "task", intent.TaskID, "gen", intent.Generation)
		return OutcomeStale
	}
	if err != nil {
		s.tasks = intent.snapshot
		return OutcomeRolledBack
	}
	if task != nil {
		if idx := s.indexOf(intent.TaskID); idx >= 0 {
			s.tasks[idx] = *task
		}
	}
	return OutcomeApplied
}

// BeginReposition applies a resolved drop target optimistically: the task
// leaves its old scope, lands at the target ordinal, and both touched scopes
// are renumbered 0..n-1 so the rendered order is immediately correct. The
// returned payload carries only the moved task's position; the server
// renumbers the remaining siblings and a resync absorbs the result.
func (s *Store) BeginReposition(id int64, target position.Target) (Intent, domain.PositionUpdate, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Intent{}, domain.PositionUpdate{}, false
	}

	intent := s.begin(id)

	oldScope := s.tasks[idx].Scope()
	s.tasks[idx].CategoryID = target.CategoryID
	s.tasks[idx].ParentTaskID = target.ParentID
	newScope := s.tasks[idx].Scope()

	s.placeInScope(id, newScope, target.Position)
	if oldScope != newScope {
		s.renumberScope(oldScope)
		// Subtasks follow their parent's category
		s.retagSubtasks(id, target.CategoryID)
	}

	payload := domain.PositionUpdate{
		CategoryID:   target.CategoryID,
		ParentTaskID: target.ParentID,
		Position:     s.taskPosition(id),
	}
	return intent, payload, true
}

// CompleteReposition finishes a reposition round-trip. Success still demands
// a silent refetch: the optimistic renumbering cannot know how the server
// renumbered siblings in either scope.
func (s *Store) CompleteReposition(intent Intent, err error) Outcome {
	if !s.tracker.IsCurrent(intent.TaskID, intent.Generation) {
		s.logger.Debug("stale reposition discarded", "task", intent.TaskID)
		return OutcomeStale
	}
	if err != nil {
		s.tasks = intent.snapshot
		return OutcomeRolledBack
	}
	return OutcomeResync
}

// BeginDelete removes the task (and its subtasks) optimistically
func (s *Store) BeginDelete(id int64) (Intent, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Intent{}, false
	}

	intent := s.begin(id)
	task := s.tasks[idx]

	if task.ParentTaskID != nil {
		if p := s.indexOf(*task.ParentTaskID); p >= 0 {
			s.tasks[p].SubtaskCount--
			if task.Status == domain.StatusCompleted {
				s.tasks[p].CompletedSubtaskCount--
			}
		}
	}

	kept := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID == id {
			continue
		}
		if t.ParentTaskID != nil && *t.ParentTaskID == id {
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	s.renumberScope(task.Scope())

	return intent, true
}

// CompleteDelete finishes a delete round-trip; on failure the task reappears
// at its original index because the whole snapshot is restored
func (s *Store) CompleteDelete(intent Intent, err error) Outcome {
	if !s.tracker.IsCurrent(intent.TaskID, intent.Generation) {
		s.logger.Debug("stale delete discarded", "task", intent.TaskID)
		return OutcomeStale
	}
	if err != nil {
		s.tasks = intent.snapshot
		return OutcomeRolledBack
	}
	return OutcomeApplied
}

// BeginToggleComplete flips todo/completed, stamps or clears the completion
// time, and reassigns top-level tasks to the well-known "Completed" or
// "To Do" category when one exists by name. The returned patch is what the
// remote update call must carry; reconcile it through CompleteUpdate.
func (s *Store) BeginToggleComplete(id int64, categories []domain.Category) (Intent, domain.TaskPatch, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Intent{}, domain.TaskPatch{}, false
	}
	task := s.tasks[idx]

	var patch domain.TaskPatch
	if task.Status != domain.StatusCompleted {
		status := domain.StatusCompleted
		completedAt := s.now()
		patch.Status = &status
		patch.CompletedAt = &completedAt
		if task.ParentTaskID == nil {
			if c, ok := domain.FindCategoryByName(categories, domain.CategoryNameCompleted); ok && c.ID != task.CategoryID {
				patch.CategoryID = &c.ID
			}
		}
	} else {
		status := domain.StatusTodo
		patch.Status = &status
		patch.ClearCompletedAt = true
		if task.ParentTaskID == nil {
			if c, ok := domain.FindCategoryByName(categories, domain.CategoryNameTodo); ok && c.ID != task.CategoryID {
				patch.CategoryID = &c.ID
			}
		}
	}

	intent := s.begin(id)
	s.applyPatch(idx, patch)

	if task.ParentTaskID != nil {
		if p := s.indexOf(*task.ParentTaskID); p >= 0 {
			if task.Status != domain.StatusCompleted {
				s.tasks[p].CompletedSubtaskCount++
			} else {
				s.tasks[p].CompletedSubtaskCount--
			}
		}
	}

	return intent, patch, true
}

// begin bumps the generation and snapshots the collection
func (s *Store) begin(id int64) Intent {
	return Intent{
		TaskID:     id,
		Generation: s.tracker.Bump(id),
		snapshot:   append([]domain.Task(nil), s.tasks...),
	}
}

// applyPatch projects a patch onto the task at idx. Slices are replaced,
// never mutated in place, so snapshots stay intact. A category change is a
// scope reassignment: the task is appended at the end of the new scope.
func (s *Store) applyPatch(idx int, patch domain.TaskPatch) {
	t := &s.tasks[idx]

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		due := *patch.DueDate
		t.DueDate = &due
	}
	if patch.ClearCompletedAt {
		t.CompletedAt = nil
	} else if patch.CompletedAt != nil {
		at := *patch.CompletedAt
		t.CompletedAt = &at
	}
	if patch.AssigneeIDs != nil {
		t.Assignees = s.resolveAssignees(*patch.AssigneeIDs)
	}
	if patch.CategoryID != nil && *patch.CategoryID != t.CategoryID && t.ParentTaskID == nil {
		oldScope := t.Scope()
		t.CategoryID = *patch.CategoryID
		newScope := t.Scope()
		s.placeInScope(t.ID, newScope, s.scopeSize(newScope))
		s.renumberScope(oldScope)
		s.retagSubtasks(t.ID, *patch.CategoryID)
	}
	if patch.Position != nil {
		s.placeInScope(t.ID, t.Scope(), *patch.Position)
	}
}

// resolveAssignees projects assignee ids into display-ready records using
// the user directory; unknown ids are kept with an empty name so the server
// response can fill them in
func (s *Store) resolveAssignees(ids []int64) []domain.UserRef {
	refs := make([]domain.UserRef, 0, len(ids))
	for _, id := range ids {
		ref := domain.UserRef{ID: id}
		for _, u := range s.users {
			if u.ID == id {
				ref = u
				break
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

// retagSubtasks moves a parent's subtasks to the parent's new category
func (s *Store) retagSubtasks(parentID int64, categoryID int64) {
	for i := range s.tasks {
		if s.tasks[i].ParentTaskID != nil && *s.tasks[i].ParentTaskID == parentID {
			s.tasks[i].CategoryID = categoryID
		}
	}
}

// placeInScope puts the task at the given ordinal within its scope and
// renumbers every sibling sequentially. The ordinal is clamped to the scope.
func (s *Store) placeInScope(id int64, scope domain.Scope, pos int) {
	sibs := s.scopeIndices(scope, id)
	if pos < 0 {
		pos = 0
	}
	if pos > len(sibs) {
		pos = len(sibs)
	}

	ord := 0
	for k, idx := range sibs {
		if k == pos {
			ord++
		}
		s.tasks[idx].Position = ord
		ord++
	}
	if moved := s.indexOf(id); moved >= 0 {
		s.tasks[moved].Position = pos
	}
}

// renumberScope reassigns 0..n-1 positions to a scope's siblings in their
// current order
func (s *Store) renumberScope(scope domain.Scope) {
	sibs := s.scopeIndices(scope, 0)
	for ord, idx := range sibs {
		s.tasks[idx].Position = ord
	}
}

// scopeIndices returns the indices of the scope's tasks ordered by position,
// excluding the given task id (0 excludes nothing)
func (s *Store) scopeIndices(scope domain.Scope, exclude int64) []int {
	var sibs []int
	for i := range s.tasks {
		if s.tasks[i].ID == exclude {
			continue
		}
		if s.tasks[i].Scope() == scope {
			sibs = append(sibs, i)
		}
	}
	sort.SliceStable(sibs, func(a, b int) bool {
		return s.tasks[sibs[a]].Position < s.tasks[sibs[b]].Position
	})
	return sibs
}

func (s *Store) scopeSize(scope domain.Scope) int {
	n := 0
	for i := range s.tasks {
		if s.tasks[i].Scope() == scope {
			n++
		}
	}
	return n
}

func (s *Store) taskPosition(id int64) int {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Position
	}
	return 0
}

func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
