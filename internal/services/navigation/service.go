// Package navigation provides cursor and navigation state management
package navigation

import (
	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/ui/board"
)

// Position represents a computed position on the board
type Position struct {
	Column int  // Index into the rendered columns
	Row    int  // Row index within the column
	Valid  bool // Whether the position points at a real row
}

// Cursor tracks the selected task by ID (survives refetch/filter/sort changes)
type Cursor struct {
	TaskID         int64 // Primary state: selected task ID, 0 = none
	FallbackColumn int   // Column to use when TaskID not found
}

// FindPosition computes the position of the cursor's task in the given columns
func (c *Cursor) FindPosition(columns []board.Column) Position {
	if c.TaskID == 0 {
		col := c.FallbackColumn
		if col >= len(columns) {
			col = 0
		}
		if col < len(columns) && len(columns[col].Rows) > 0 {
			return Position{Column: col, Row: 0, Valid: true}
		}
		return Position{Column: col, Row: 0, Valid: false}
	}

	for colIdx, col := range columns {
		for rowIdx, row := range col.Rows {
			if row.Task.ID == c.TaskID {
				return Position{Column: colIdx, Row: rowIdx, Valid: true}
			}
		}
	}

	// Task not found (filtered out, or moved server-side), use fallback
	col := c.FallbackColumn
	if col >= len(columns) {
		col = 0
	}
	if col < len(columns) && len(columns[col].Rows) > 0 {
		return Position{Column: col, Row: 0, Valid: true}
	}
	return Position{Column: col, Row: 0, Valid: false}
}

// SetTask updates the cursor to point at a specific task
func (c *Cursor) SetTask(taskID int64, column int) {
	c.TaskID = taskID
	c.FallbackColumn = column
}

// MoveVertical moves up or down within a column, returns the new task ID
func (c *Cursor) MoveVertical(columns []board.Column, delta int) int64 {
	pos := c.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return c.TaskID
	}

	col := columns[pos.Column]
	newIdx := pos.Row + delta

	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(col.Rows) {
		newIdx = len(col.Rows) - 1
	}

	if newIdx >= 0 && newIdx < len(col.Rows) {
		c.TaskID = col.Rows[newIdx].Task.ID
		c.FallbackColumn = pos.Column
	}
	return c.TaskID
}

// MoveHorizontal moves left or right to an adjacent column
func (c *Cursor) MoveHorizontal(columns []board.Column, delta int) int64 {
	pos := c.FindPosition(columns)

	newCol := pos.Column + delta
	if newCol < 0 {
		newCol = 0
	}
	if newCol >= len(columns) {
		newCol = len(columns) - 1
	}

	c.FallbackColumn = newCol

	// Keep the same row index where possible, clamp to shorter columns
	if newCol < len(columns) && len(columns[newCol].Rows) > 0 {
		rowIdx := pos.Row
		if rowIdx >= len(columns[newCol].Rows) {
			rowIdx = len(columns[newCol].Rows) - 1
		}
		c.TaskID = columns[newCol].Rows[rowIdx].Task.ID
	} else {
		c.TaskID = 0 // No task in new column
	}
	return c.TaskID
}

// JumpToStart moves to the first row in the current column
func (c *Cursor) JumpToStart(columns []board.Column) int64 {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) && len(columns[pos.Column].Rows) > 0 {
		c.TaskID = columns[pos.Column].Rows[0].Task.ID
	}
	return c.TaskID
}

// JumpToEnd moves to the last row in the current column
func (c *Cursor) JumpToEnd(columns []board.Column) int64 {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) {
		col := columns[pos.Column]
		if len(col.Rows) > 0 {
			c.TaskID = col.Rows[len(col.Rows)-1].Task.ID
		}
	}
	return c.TaskID
}

// JumpToColumn moves to a specific column, keeping relative row position
func (c *Cursor) JumpToColumn(columns []board.Column, colIdx int) int64 {
	if colIdx < 0 {
		colIdx = 0
	}
	if colIdx >= len(columns) {
		colIdx = len(columns) - 1
	}

	pos := c.FindPosition(columns)
	c.FallbackColumn = colIdx

	if colIdx >= 0 && colIdx < len(columns) && len(columns[colIdx].Rows) > 0 {
		rowIdx := pos.Row
		if rowIdx >= len(columns[colIdx].Rows) {
			rowIdx = len(columns[colIdx].Rows) - 1
		}
		c.TaskID = columns[colIdx].Rows[rowIdx].Task.ID
	} else {
		c.TaskID = 0
	}
	return c.TaskID
}

// Service manages navigation state
type Service struct {
	cursor Cursor
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{cursor: Cursor{}}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// GetPosition returns the computed position of the cursor in the given columns
func (s *Service) GetPosition(columns []board.Column) Position {
	return s.cursor.FindPosition(columns)
}

// GetCurrentTask returns the task under the cursor, or nil
func (s *Service) GetCurrentTask(columns []board.Column) *domain.Task {
	pos := s.cursor.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return nil
	}

	col := columns[pos.Column]
	if pos.Row >= len(col.Rows) {
		return nil
	}

	task := col.Rows[pos.Row].Task
	return &task
}

// GetCurrentCategory returns the category of the cursor's column
func (s *Service) GetCurrentCategory(columns []board.Column) (domain.Category, bool) {
	pos := s.cursor.FindPosition(columns)
	if pos.Column < 0 || pos.Column >= len(columns) {
		return domain.Category{}, false
	}
	return columns[pos.Column].Category, true
}

// MoveDown moves the cursor down in the current column
func (s *Service) MoveDown(columns []board.Column) {
	s.cursor.MoveVertical(columns, 1)
}

// MoveUp moves the cursor up in the current column
func (s *Service) MoveUp(columns []board.Column) {
	s.cursor.MoveVertical(columns, -1)
}

// MoveLeft moves the cursor to the previous column
func (s *Service) MoveLeft(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, -1)
}

// MoveRight moves the cursor to the next column
func (s *Service) MoveRight(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, 1)
}
