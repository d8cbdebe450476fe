// Package app contains the main application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trellisboard/trellis/internal/config"
	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/services/api"
	"github.com/trellisboard/trellis/internal/services/dnd"
	"github.com/trellisboard/trellis/internal/services/editor"
	"github.com/trellisboard/trellis/internal/services/navigation"
	"github.com/trellisboard/trellis/internal/services/network"
	"github.com/trellisboard/trellis/internal/services/store"
	"github.com/trellisboard/trellis/internal/types"
	"github.com/trellisboard/trellis/internal/ui/board"
	"github.com/trellisboard/trellis/internal/ui/compact"
	"github.com/trellisboard/trellis/internal/ui/overlay"
	"github.com/trellisboard/trellis/internal/ui/statusbar"
	"github.com/trellisboard/trellis/internal/ui/styles"
	"github.com/trellisboard/trellis/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeGrab   = types.ModeGrab
	ModeSearch = types.ModeSearch
	ModeGoto   = types.ModeGoto
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// Re-export navigation types for compatibility
type Position = navigation.Position

// ViewMode represents the current view mode
type ViewMode int

const (
	ViewModeBoard ViewMode = iota
	ViewModeCompact
)

// grabState tracks an in-progress keyboard drag. The destination indices are
// visual row indices in the rendered columns, exactly what a pointer drag
// would report.
type grabState struct {
	taskID      int64
	draggableID string
	sourceCol   int
	sourceIndex int
	destCol     int
	destIndex   int
}

// Model is the main application state
type Model struct {
	// Core data
	store      *store.Store
	categories []domain.Category

	// Navigation (using NavigationService)
	nav *navigation.Service

	// View state (mode, filter, sort, expanded parents)
	editor *editor.Service

	// In-progress keyboard drag, nil outside grab mode
	grab *grabState

	// Pending destructive action awaiting confirmation
	pendingDelete int64

	// UI state
	overlayStack *overlay.Stack
	viewMode     ViewMode

	// Toasts
	toasts []Toast

	// Terminal size
	width  int
	height int

	// Styles
	styles *styles.Styles

	// Configuration
	config *config.Config

	// Loading state
	loading     bool
	spinner     spinner.Model
	lastRefresh time.Time

	// Task service client
	apiClient *api.Client

	// Drag mapper
	mapper *dnd.Mapper

	// Connectivity
	networkChecker *network.StatusChecker
	isOnline       bool

	// Logger
	logger *slog.Logger
}

// New creates a new application model with the given config
func New(cfg *config.Config) Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	// Initialize logger
	logger := slog.Default()

	// Initialize API client
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.API.TimeoutMs) * time.Millisecond,
	}
	apiClient := api.NewClient(httpClient, cfg.API.BaseURL, cfg.API.Token, logger)

	// Initialize task store
	taskStore := store.New(logger)
	taskStore.SetWorkspace(cfg.API.WorkspaceID)

	// Initialize drag mapper
	mapper := dnd.NewMapper(taskStore, logger)

	// Initialize network checker against the task service itself
	networkChecker := network.NewStatusChecker(cfg.API.BaseURL + "/v1/health")

	return Model{
		store:          taskStore,
		categories:     []domain.Category{},
		nav:            navigation.NewService(),
		editor:         editor.NewService(),
		overlayStack:   overlay.NewStack(),
		viewMode:       ViewModeBoard,
		toasts:         []Toast{},
		styles:         styles.New(),
		config:         cfg,
		loading:        true,
		spinner:        s,
		apiClient:      apiClient,
		mapper:         mapper,
		networkChecker: networkChecker,
		isOnline:       true, // Optimistically assume online
		logger:         logger,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCategoriesCmd(),
		m.loadUsersCmd(),
		m.fetchTasksCmd(false),
		m.networkChecker.CheckCmd(),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.SearchMsg:
		m.editor.SetSearchQuery(msg.Query)
		return m, nil

	case overlay.FilterChangedMsg:
		// Filter state is mutated in place; the next render picks it up
		return m, nil

	case overlay.TaskDraftMsg:
		m.overlayStack.Pop()
		return m, m.createTaskCmd(msg.Draft)

	case tasksLoadedMsg:
		return m.handleTasksLoaded(msg)

	case moreTasksMsg:
		m.store.CompleteLoadMore(msg.page, msg.err)
		if msg.err != nil {
			m.addToast(Toast{
				Level:   ToastError,
				Message: fmt.Sprintf("Load more failed: %v", msg.err),
				Expires: time.Now().Add(5 * time.Second),
			})
		}
		return m, nil

	case categoriesLoadedMsg:
		if msg.err != nil {
			m.addToast(Toast{
				Level:   ToastError,
				Message: fmt.Sprintf("Failed to load categories: %v", msg.err),
				Expires: time.Now().Add(8 * time.Second),
			})
			return m, nil
		}
		m.categories = domain.SortCategories(msg.categories)
		return m, nil

	case usersLoadedMsg:
		if msg.err != nil {
			m.logger.Debug("failed to load users", "error", msg.err)
			return m, nil
		}
		m.store.SetUsers(msg.users)
		return m, nil

	case taskCreatedMsg:
		if msg.err != nil {
			m.addToast(Toast{
				Level:   ToastError,
				Message: fmt.Sprintf("Create failed: %v", msg.err),
				Expires: time.Now().Add(5 * time.Second),
			})
			return m, nil
		}
		m.store.CompleteCreate(msg.task)
		m.nav.GetCursor().SetTask(msg.task.ID, m.nav.GetPosition(m.buildColumns()).Column)
		m.addToast(Toast{
			Level:   ToastSuccess,
			Message: fmt.Sprintf("Created: %s", msg.task.Title),
			Expires: time.Now().Add(3 * time.Second),
		})
		return m, nil

	case updateDoneMsg:
		outcome := m.store.CompleteUpdate(msg.intent, msg.task, msg.err)
		if outcome == store.OutcomeRolledBack {
			m.addToast(Toast{
				Level:   ToastError,
				Message: fmt.Sprintf("Update failed: %v", msg.err),
				Expires: time.Now().Add(5 * time.Second),
			})
		}
		return m, nil

	case repositionDoneMsg:
		outcome := m.store.CompleteReposition(msg.intent, msg.err)
		switch outcome {
		case store.OutcomeResync:
			// Server renumbering is authoritative; reconcile silently
			return m, m.fetchTasksCmd(true)
		case store.OutcomeRolledBack:
			m.addToast(Toast{
				Level:   ToastError,
				Message: fmt.Sprintf("Move failed: %v", msg.err),
				Expires: time.Now().Add(5 * time.Second),
			})
		}
		return m, nil

	case deleteDoneMsg:
		outcome := m.store.CompleteDelete(msg.intent, msg.err)
		if outcome == store.OutcomeRolledBack {
			m.addToast(Toast{
				Level:   ToastError,
				Message: fmt.Sprintf("Delete failed: %v", msg.err),
				Expires: time.Now().Add(5 * time.Second),
			})
		}
		return m, nil

	case network.StatusMsg:
		m.isOnline = msg.Online
		m.logger.Debug("network status updated", "online", msg.Online)
		return m, nil

	case tickMsg:
		m.expireToasts()
		cmds := []tea.Cmd{
			tickEvery(m.refreshInterval()),
			m.networkChecker.CheckCmd(),
		}
		// Skip the background refresh while offline or mid-interaction
		if m.isOnline && m.editor.IsNormal() && m.overlayStack.IsEmpty() && m.store.CanFetch() {
			cmds = append(cmds, m.fetchTasksCmd(true))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// handleTasksLoaded reconciles a full fetch into the store
func (m Model) handleTasksLoaded(msg tasksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loading = false
		if msg.silent {
			m.logger.Debug("silent refetch failed", "error", msg.err)
			return m, nil
		}
		m.addToast(Toast{
			Level:   ToastError,
			Message: fmt.Sprintf("Failed to load tasks: %v", msg.err),
			Expires: time.Now().Add(8 * time.Second),
		})
		// Still schedule a refresh to retry
		return m, tickEvery(m.refreshInterval())
	}

	wasLoading := m.loading
	m.store.CompleteFetch(msg.page)
	m.loading = false
	m.lastRefresh = time.Now()

	if wasLoading {
		if m.config.Board.ExpandSubtasks {
			m.editor.ExpandAll(m.store.Tasks())
		}
		m.addToast(Toast{
			Level:   ToastSuccess,
			Message: "Tasks loaded",
			Expires: time.Now().Add(3 * time.Second),
		})
		// Start periodic refresh
		return m, tickEvery(m.refreshInterval())
	}
	return m, nil
}

func (m Model) refreshInterval() time.Duration {
	secs := m.config.Board.RefreshSeconds
	if secs <= 0 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}

// View renders the application
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return m.renderLoading()
	}

	var mainView string
	if m.viewMode == ViewModeCompact {
		mainView = m.renderCompactView()
	} else {
		mainView = m.renderBoardView()
	}

	sb := statusbar.New(m.editor.GetMode(), m.store.Workspace(), m.isOnline, m.width, m.styles)
	statusBarView := sb.Render()

	view := lipgloss.JoinVertical(lipgloss.Left, mainView, statusBarView)

	// If overlay is open, render it on top (centered)
	if !m.overlayStack.IsEmpty() {
		current := m.overlayStack.Current()
		overlayView := current.View()

		overlayWidth, overlayHeight := current.Size()

		// Width 0 means full width (like the search bar)
		if overlayWidth == 0 {
			view = lipgloss.JoinVertical(lipgloss.Left, view, overlayView)
		} else {
			title := current.Title()
			if title != "" {
				titleView := m.styles.OverlayTitle.Render(title)
				overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
			}
			overlayView = m.styles.Overlay.
				Width(overlayWidth).
				Height(overlayHeight).
				Render(overlayView)

			centeredOverlay := lipgloss.Place(
				m.width,
				m.height,
				lipgloss.Center,
				lipgloss.Center,
				overlayView,
			)

			view = lipgloss.Place(
				m.width,
				m.height,
				lipgloss.Left,
				lipgloss.Top,
				view,
			)

			view = lipgloss.JoinVertical(lipgloss.Left, view, centeredOverlay)
		}
	}

	// Render toasts in the bottom-right corner
	if len(m.toasts) > 0 {
		toastRenderer := toast.New(m.styles)
		toastView := toastRenderer.Render(m.toasts, m.width)
		if toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

func (m Model) renderBoardView() string {
	columns := m.buildColumns()
	pos := m.nav.GetPosition(columns)
	cursor := board.Cursor{Column: pos.Column, Row: pos.Row}

	var grabbedID int64
	if m.grab != nil {
		grabbedID = m.grab.taskID
		cursor = board.Cursor{Column: m.grab.destCol, Row: m.grab.destIndex}
	}

	return board.Render(
		columns,
		cursor,
		grabbedID,
		m.editor.Expanded(),
		m.styles,
		m.width,
		m.height-1,
	)
}

func (m Model) renderCompactView() string {
	tasks := m.sortedCompactTasks()
	lv := compact.NewListView(tasks, m.categories, m.width, m.height-1)

	cursorID := m.nav.GetCursor().TaskID
	for i, t := range tasks {
		if t.ID == cursorID {
			lv.SetCursor(i)
			break
		}
	}
	return lv.Render()
}

func (m Model) sortedCompactTasks() []domain.Task {
	filtered := m.editor.ApplyFilter(m.store.Tasks())
	return m.editor.GetSort().Apply(filtered)
}

func (m Model) renderLoading() string {
	loadingText := fmt.Sprintf("%s Loading tasks...", m.spinner.View())
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		loadingText,
	)
}

// buildColumns converts the store's collection into rendered columns,
// applying the active filter. Row lists come from the same builder the drag
// mapper uses, so visual indices cannot drift between the two.
func (m Model) buildColumns() []board.Column {
	filtered := m.editor.ApplyFilter(m.store.Tasks())
	expanded := m.editor.Expanded()

	columns := make([]board.Column, 0, len(m.categories))
	for _, cat := range m.categories {
		columns = append(columns, board.Column{
			Category: cat,
			Rows:     dnd.BuildRows(filtered, cat.ID, expanded),
		})
	}
	return columns
}

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in any mode)
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	}

	if msg.String() == "esc" {
		if !m.overlayStack.IsEmpty() {
			m.overlayStack.Pop()
			return m, nil
		}
		if !m.editor.IsNormal() {
			m.grab = nil
			m.editor.EnterNormal()
			return m, nil
		}
	}

	switch m.editor.GetMode() {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeGrab:
		return m.handleGrabMode(msg)
	case ModeGoto:
		return m.handleGotoMode(msg)
	default:
		return m, nil
	}
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.buildColumns()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Vertical navigation
	case "j", "down":
		m.nav.MoveDown(columns)
		return m, nil

	case "k", "up":
		m.nav.MoveUp(columns)
		return m, nil

	// Horizontal navigation
	case "h", "left":
		m.nav.MoveLeft(columns)
		return m, nil

	case "l", "right":
		m.nav.MoveRight(columns)
		return m, nil

	// Mode switches
	case "g":
		m.editor.EnterGoto()
		return m, nil

	case " ": // Space - grab the task under the cursor
		return m.beginGrab(columns)

	case "x": // Toggle completion
		task := m.nav.GetCurrentTask(columns)
		if task == nil {
			return m, nil
		}
		intent, patch, ok := m.store.BeginToggleComplete(task.ID, m.categories)
		if !ok {
			return m, nil
		}
		return m, m.updateTaskCmd(intent, task.ID, patch)

	case "d": // Delete with confirmation
		task := m.nav.GetCurrentTask(columns)
		if task == nil {
			return m, nil
		}
		m.pendingDelete = task.ID
		dialog := overlay.NewConfirmDialog(
			"Delete task",
			fmt.Sprintf("Delete %q? Subtasks are deleted with it.", task.Title),
		)
		return m, m.overlayStack.Push(dialog)

	case "n": // Create task in current column
		cat, ok := m.nav.GetCurrentCategory(columns)
		if !ok {
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewCreateTaskOverlay(cat.ID, nil))

	case "N": // Create subtask under current parent
		task := m.nav.GetCurrentTask(columns)
		if task == nil || task.IsSubtask() {
			return m, nil
		}
		parentID := task.ID
		return m, m.overlayStack.Push(overlay.NewCreateTaskOverlay(task.CategoryID, &parentID))

	case "tab": // Expand/collapse subtasks of current parent
		task := m.nav.GetCurrentTask(columns)
		if task == nil {
			return m, nil
		}
		if task.IsSubtask() {
			m.editor.ToggleExpanded(*task.ParentTaskID)
			m.nav.GetCursor().SetTask(*task.ParentTaskID, m.nav.GetPosition(columns).Column)
		} else if task.SubtaskCount > 0 {
			m.editor.ToggleExpanded(task.ID)
		}
		return m, nil

	case "enter": // View task details
		task := m.nav.GetCurrentTask(columns)
		if task != nil {
			categoryName := ""
			for _, c := range m.categories {
				if c.ID == task.CategoryID {
					categoryName = c.Name
					break
				}
			}
			return m, m.overlayStack.Push(overlay.NewDetailPanel(*task, categoryName))
		}
		return m, nil

	case "/": // Search
		return m, m.overlayStack.Push(overlay.NewSearchOverlay())

	case "f": // Filter menu
		return m, m.overlayStack.Push(overlay.NewFilterMenu(m.editor.GetFilter()))

	case "?": // Help
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())

	case "v": // Toggle view mode
		if m.viewMode == ViewModeBoard {
			m.viewMode = ViewModeCompact
		} else {
			m.viewMode = ViewModeBoard
		}
		return m, nil

	case ",": // Cycle compact sort field
		if m.viewMode == ViewModeCompact {
			m.editor.GetSort().Toggle(m.editor.GetSort().Field)
		}
		return m, nil

	case "r": // Manual refresh
		return m, m.fetchTasksCmd(false)

	case "m": // Load next page
		cursor, ok := m.store.BeginLoadMore()
		if !ok {
			if !m.store.HasMore() {
				m.addToast(Toast{
					Level:   ToastInfo,
					Message: "No more tasks",
					Expires: time.Now().Add(2 * time.Second),
				})
			}
			return m, nil
		}
		return m, m.loadMoreCmd(cursor)
	}

	return m, nil
}

// beginGrab enters grab mode with the cursor task picked up
func (m Model) beginGrab(columns []board.Column) (tea.Model, tea.Cmd) {
	if m.editor.GetFilter().IsActive() {
		// A filtered board hides rows, so visual indices would not describe
		// the real collection
		m.addToast(Toast{
			Level:   ToastWarning,
			Message: "Clear filters before moving tasks",
			Expires: time.Now().Add(3 * time.Second),
		})
		return m, nil
	}

	pos := m.nav.GetPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return m, nil
	}
	col := columns[pos.Column]
	if pos.Row >= len(col.Rows) {
		return m, nil
	}

	task := col.Rows[pos.Row].Task
	m.grab = &grabState{
		taskID:      task.ID,
		draggableID: dnd.DraggableID(task),
		sourceCol:   pos.Column,
		sourceIndex: pos.Row,
		destCol:     pos.Column,
		destIndex:   pos.Row,
	}
	m.editor.EnterGrab()
	return m, nil
}

// handleGrabMode moves the grabbed task's drop target and commits on drop.
// Dropping synthesizes the same event a pointer drag would produce.
func (m Model) handleGrabMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.grab == nil {
		m.editor.EnterNormal()
		return m, nil
	}
	columns := m.buildColumns()

	switch msg.String() {
	case "j", "down":
		m.grab.destIndex = clamp(m.grab.destIndex+1, 0, m.maxDestIndex(columns))
		return m, nil

	case "k", "up":
		m.grab.destIndex = clamp(m.grab.destIndex-1, 0, m.maxDestIndex(columns))
		return m, nil

	case "h", "left":
		if m.grab.destCol > 0 {
			m.grab.destCol--
			m.grab.destIndex = clamp(m.grab.destIndex, 0, m.maxDestIndex(columns))
		}
		return m, nil

	case "l", "right":
		if m.grab.destCol < len(columns)-1 {
			m.grab.destCol++
			m.grab.destIndex = clamp(m.grab.destIndex, 0, m.maxDestIndex(columns))
		}
		return m, nil

	case " ", "enter": // Drop
		return m.dropGrabbed(columns)

	case "esc":
		m.grab = nil
		m.editor.EnterNormal()
		return m, nil
	}

	return m, nil
}

// maxDestIndex bounds the drop index in the destination column. Within the
// source column the grabbed row is part of the list; in another column a
// past-end index means append.
func (m Model) maxDestIndex(columns []board.Column) int {
	if m.grab.destCol < 0 || m.grab.destCol >= len(columns) {
		return 0
	}
	rows := len(columns[m.grab.destCol].Rows)
	if m.grab.destCol == m.grab.sourceCol {
		if rows == 0 {
			return 0
		}
		return rows - 1
	}
	return rows
}

// dropGrabbed turns the grab into a drag event and hands it to the mapper
func (m Model) dropGrabbed(columns []board.Column) (tea.Model, tea.Cmd) {
	grab := m.grab
	m.grab = nil
	m.editor.EnterNormal()

	if grab.sourceCol >= len(columns) || grab.destCol >= len(columns) {
		return m, nil
	}

	ev := dnd.DragEvent{
		DraggableID:     grab.draggableID,
		SourceDroppable: dnd.DroppableID(columns[grab.sourceCol].Category.ID),
		SourceIndex:     grab.sourceIndex,
		DestDroppable:   dnd.DroppableID(columns[grab.destCol].Category.ID),
		DestIndex:       grab.destIndex,
	}

	result, ok := m.mapper.Map(ev, m.editor.Expanded())
	if !ok {
		// No-op drop: nothing was touched and nothing goes over the wire
		return m, nil
	}

	m.nav.GetCursor().SetTask(grab.taskID, grab.destCol)
	return m, m.repositionCmd(result.Intent, grab.taskID, result.Payload)
}

// handleGotoMode processes keyboard input in goto mode
func (m Model) handleGotoMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.buildColumns()
	// Always return to normal mode after processing
	m.editor.EnterNormal()

	switch msg.String() {
	case "g":
		m.nav.GetCursor().JumpToStart(columns)
	case "e":
		m.nav.GetCursor().JumpToEnd(columns)
	case "h":
		m.nav.GetCursor().JumpToColumn(columns, 0)
	case "l":
		m.nav.GetCursor().JumpToColumn(columns, len(columns)-1)
	}

	return m, nil
}

// handleOverlayKey routes keyboard messages to the overlay stack
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.overlayStack.Update(msg)
	return m, cmd
}

// handleSelection reacts to overlay selections
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	m.overlayStack.Pop()

	switch value := msg.Value.(type) {
	case overlay.ConfirmResult:
		taskID := m.pendingDelete
		m.pendingDelete = 0
		if !value.Confirmed || taskID == 0 {
			return m, nil
		}
		intent, ok := m.store.BeginDelete(taskID)
		if !ok {
			return m, nil
		}
		return m, m.deleteTaskCmd(intent, taskID)
	}

	return m, nil
}

func (m *Model) addToast(toast Toast) {
	m.toasts = append(m.toasts, toast)
}

func (m *Model) expireToasts() {
	now := time.Now()
	remaining := make([]Toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.Expires.After(now) {
			remaining = append(remaining, t)
		}
	}
	m.toasts = remaining
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
