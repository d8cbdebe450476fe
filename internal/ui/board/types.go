package board

import (
	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/services/position"
)

// Column represents one category column with its rendered rows: parent tasks
// in position order, interleaved with the subtasks of expanded parents
type Column struct {
	Category domain.Category
	Rows     []position.Row
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index
	Row    int // Row index within the column
}
