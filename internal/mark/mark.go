// Package mark implements the selection/mark-mode state machine (spec.md
// §4.5): a tagged variant tracking a rectangular selection anchored at a
// start cell, updated by cursor motion, keyboard shift-select, or mouse
// drag, plus the derived selection rectangle the rendering engine and
// export pipeline both consult.
package mark

import "github.com/dbrowse/tabpager/internal/detect"

// Mode is the closed set of selection states (spec.md §4.5).
type Mode int

const (
	// None means no selection is active.
	None Mode = iota
	// Rows selects a contiguous row range across every column.
	Rows
	// Block selects a row range restricted to a column range, anchored by
	// vertical-cursor column.
	Block
	// Cursor is the transient shift+motion selection: it follows the
	// cursor until a non-motion key arrives.
	Cursor
	// Mouse is a row-only selection committed by a ctrl+drag over the body.
	Mouse
	// MouseBlock is Mouse with a column range too (alt modifier held).
	MouseBlock
	// MouseColumns selects whole columns, dragged over the header band.
	MouseColumns
)

// AllColumns is the sentinel meaning "every column" for a rectangle's
// column extent, and for Block/MouseColumns' column anchor before a second
// endpoint narrows it.
const AllColumns = -1

// Rect is the derived selection rectangle, in the units the renderer and
// exporter consume: rows as logical row offsets, columns as display
// columns (spec.md §4.5 "Derived rectangle").
type Rect struct {
	FirstRow int
	Rows     int // -1 = every row
	FirstCol int // -1 = every column
	Cols     int // -1 = every column
}

// Empty reports whether the rectangle selects nothing.
func (r Rect) Empty() bool {
	return r.Rows == 0 || r.Cols == 0
}

// State is the mutable mark-mode state for one open table.
type State struct {
	Mode Mode

	anchorRow int
	anchorCol int // 1-based logical column index, AllColumns if row-only

	curRow int
	curCol int

	frozen bool // true once a mouse drag has been committed
}

// New returns a State with no active selection.
func New() *State {
	return &State{Mode: None, anchorCol: AllColumns, curCol: AllColumns}
}

// Unmark clears any selection, returning to None.
func (s *State) Unmark() {
	*s = State{Mode: None, anchorCol: AllColumns, curCol: AllColumns}
}

// Mark toggles Rows mode: entering it anchored at cursorRow if the state
// was None, or clearing the selection if Rows was already active.
func (s *State) Mark(cursorRow int) {
	if s.Mode == Rows {
		s.Unmark()
		return
	}
	s.Mode = Rows
	s.anchorRow, s.curRow = cursorRow, cursorRow
	s.anchorCol, s.curCol = AllColumns, AllColumns
}

// MarkColumn toggles Block mode, anchored at (cursorRow,
// verticalCursorColumn).
func (s *State) MarkColumn(cursorRow, verticalCursorColumn int) {
	if s.Mode == Block {
		s.Unmark()
		return
	}
	s.Mode = Block
	s.anchorRow, s.curRow = cursorRow, cursorRow
	s.anchorCol, s.curCol = verticalCursorColumn, verticalCursorColumn
}

// BeginCursorSelection enters the transient shift+motion mode, anchored at
// the cursor's current row.
func (s *State) BeginCursorSelection(cursorRow int) {
	s.Mode = Cursor
	s.anchorRow, s.curRow = cursorRow, cursorRow
	s.anchorCol, s.curCol = AllColumns, AllColumns
}

// EndCursorSelection collapses a Cursor-mode selection back to None —
// spec.md §4.5: "until any non-motion key arrives (then collapses)". A
// non-motion key abandons the transient selection rather than freezing
// it; there is no keyboard affordance in the source command set to commit
// one, unlike the mouse modes' explicit button-release commit.
func (s *State) EndCursorSelection() {
	if s.Mode == Cursor {
		s.Unmark()
	}
}

// Extend updates the active selection's moving endpoint — called on every
// cursor motion while Mode is Rows, Block, or Cursor.
func (s *State) Extend(row int) {
	switch s.Mode {
	case Rows, Cursor:
		s.curRow = row
	case Block:
		s.curRow = row
	}
}

// ExtendColumn updates Block mode's moving column endpoint.
func (s *State) ExtendColumn(col int) {
	if s.Mode == Block {
		s.curCol = col
	}
}

// BeginMouse starts a ctrl+drag selection over the body: row-only unless
// block is true (alt modifier held), in which case the drag also narrows
// columns from startCol.
func (s *State) BeginMouse(row, startCol int, block bool) {
	if block {
		s.Mode = MouseBlock
		s.anchorCol, s.curCol = startCol, startCol
	} else {
		s.Mode = Mouse
		s.anchorCol, s.curCol = AllColumns, AllColumns
	}
	s.anchorRow, s.curRow = row, row
	s.frozen = false
}

// BeginMouseColumns starts a ctrl+drag over the header band, selecting
// whole columns.
func (s *State) BeginMouseColumns(col int) {
	s.Mode = MouseColumns
	s.anchorRow, s.curRow = 0, 0
	s.anchorCol, s.curCol = col, col
	s.frozen = false
}

// UpdateMouse extends an in-progress (not yet committed) mouse drag. It is
// a no-op once CommitMouse has frozen the rectangle.
func (s *State) UpdateMouse(row, col int) {
	if s.frozen {
		return
	}
	switch s.Mode {
	case Mouse, MouseBlock:
		s.curRow = row
		if s.Mode == MouseBlock {
			s.curCol = col
		}
	case MouseColumns:
		s.curCol = col
	}
}

// CommitMouse freezes the dragged rectangle on button release — spec.md
// §4.5: "releasing the button commits and freezes the rectangle until
// unmark".
func (s *State) CommitMouse() {
	switch s.Mode {
	case Mouse, MouseBlock, MouseColumns:
		s.frozen = true
	}
}

// CancelMouse aborts an in-progress (uncommitted) mouse selection — spec.md
// §4.5: "Any navigation key in a mouse mode cancels it".
func (s *State) CancelMouse() {
	switch s.Mode {
	case Mouse, MouseBlock, MouseColumns:
		if !s.frozen {
			s.Unmark()
		}
	}
}

// SelectAll enters Rows mode covering every row and column (spec.md §4.5
// "Invariants": "Selecting all sets rows = total, columns = all").
func (s *State) SelectAll(totalRows int) {
	s.Mode = Rows
	s.anchorRow, s.curRow = 0, totalRows-1
	s.anchorCol, s.curCol = AllColumns, AllColumns
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Rect computes the derived selection rectangle. cranges maps a 1-based
// logical column index (as tracked by Block/MouseColumns) to its display
// column extent; it is nil-safe to call with an empty slice when the table
// is unstructured (column selection then degrades to "all columns").
//
// Rect does not attempt the frozen/scrolling viewport seam fix-up spec.md
// §4.6 describes — that is a rendering-time concern: the renderer, not
// the selection model, knows where the seam falls and extends the drawn
// highlight across it.
func (s *State) Rect(cranges []detect.CRange) Rect {
	if s.Mode == None {
		return Rect{}
	}
	firstRow, lastRow := minMax(s.anchorRow, s.curRow)
	rows := lastRow - firstRow + 1

	if s.anchorCol == AllColumns || s.curCol == AllColumns {
		return Rect{FirstRow: firstRow, Rows: rows, FirstCol: AllColumns, Cols: AllColumns}
	}

	firstCol, lastCol := minMax(s.anchorCol, s.curCol)
	if firstCol < 1 || lastCol > len(cranges) {
		return Rect{FirstRow: firstRow, Rows: rows, FirstCol: AllColumns, Cols: AllColumns}
	}
	xmin := cranges[firstCol-1].XMin
	xmax := cranges[lastCol-1].XMax

	if s.Mode == MouseColumns {
		return Rect{FirstRow: 0, Rows: AllColumns, FirstCol: xmin, Cols: xmax - xmin + 1}
	}
	return Rect{FirstRow: firstRow, Rows: rows, FirstCol: xmin, Cols: xmax - xmin + 1}
}

// ClampToTable re-clamps the selection after a reload or sort shrinks the
// table, per spec.md §9's "selection invalid after sort/reload" open
// question: rows are clamped into [0, totalRows), columns into
// [1, totalCols]; a selection that collapses to nothing is cleared.
func (s *State) ClampToTable(totalRows, totalCols int) {
	if s.Mode == None {
		return
	}
	if totalRows <= 0 {
		s.Unmark()
		return
	}
	clampRow := func(r int) int {
		if r < 0 {
			return 0
		}
		if r > totalRows-1 {
			return totalRows - 1
		}
		return r
	}
	s.anchorRow = clampRow(s.anchorRow)
	s.curRow = clampRow(s.curRow)

	if s.anchorCol != AllColumns {
		clampCol := func(c int) int {
			if c < 1 {
				return 1
			}
			if totalCols > 0 && c > totalCols {
				return totalCols
			}
			return c
		}
		s.anchorCol = clampCol(s.anchorCol)
		s.curCol = clampCol(s.curCol)
	}
}
