// Package nav implements the two-dimensional navigation state machine
// (spec.md §4.4): cursor and scroll clamping, column-aware horizontal
// motion with frozen columns, page motion that preserves the cursor's
// screen-relative row, goto-line, footer focus, bookmarks, and the
// resize-recentering and expanded-mode page-snapping features described in
// SPEC_FULL's supplemented-features section.
package nav

import (
	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/lines"
)

// Command is the typed motion enum spec.md §4.4 names. Parameterized
// motions (GotoLine, bookmarks) are separate methods rather than enum
// variants, since Go has no sum-type payload for a plain int const.
type Command int

const (
	CursorUp Command = iota
	CursorDown
	PageUp
	PageDown
	ScrollUp
	ScrollDown
	ScrollHalfPageUp
	ScrollHalfPageDown
	MoveLeftChar
	MoveRightChar
	MoveLeftColumn
	MoveRightColumn
	ShowFirstCol
	ShowLastCol
	CursorFirstRow
	CursorLastRow
	CursorHalfPage
)

// columnJumpLimit bounds the column-aware horizontal scroll's search for
// the next `I` classifier position (spec.md §4.4: "walks up to ~30 display
// columns").
const columnJumpLimit = 30

// State is the mutable navigation substate for one open table. It holds no
// reference to rendering or the line store beyond what bookmark lookups
// need, per SPEC_FULL §10.1's separation of immutable options from mutable
// per-table state.
type State struct {
	FirstDataRow int
	LastDataRow  int
	Columns      int
	CRanges      []detect.CRange
	HeadlineTransl string
	IsExpandedMode bool
	// RecordStarts holds the row offset (relative to FirstDataRow) of each
	// expanded-mode "-[ RECORD n ]-" title row, ascending, for page
	// snapping. Empty when IsExpandedMode is false.
	RecordStarts []int

	VisibleDataRows int
	ViewportWidth   int
	FreezedCols     int

	CursorRow int
	FirstRow  int

	VerticalCursorOn     bool
	VerticalCursorColumn int // 1-based; 0 means unset
	CursorCol            int

	FooterVisible   bool
	FooterFocused   bool
	FooterCursorCol int

	Quiet  bool
	beeped bool
}

// NewState builds navigation state from a detected table and the current
// viewport geometry.
func NewState(d *detect.DataDesc, visibleDataRows, viewportWidth, freezedCols int) *State {
	s := &State{VisibleDataRows: visibleDataRows, ViewportWidth: viewportWidth, FreezedCols: freezedCols}
	s.SyncDesc(d)
	return s
}

// SyncDesc re-points the state at a freshly detected (or re-sorted)
// DataDesc, re-clamping cursor, scroll and vertical-cursor-column into the
// new bounds — the nav-side half of spec.md §9's "selection invalid after
// sort" open question.
func (s *State) SyncDesc(d *detect.DataDesc) {
	s.FirstDataRow = d.FirstDataRow
	s.LastDataRow = d.LastDataRow
	s.Columns = d.Columns
	s.CRanges = d.CRanges
	s.HeadlineTransl = d.HeadlineTransl
	s.IsExpandedMode = d.IsExpandedMode
	s.FooterVisible = d.FooterRow >= 0
	if !s.FooterVisible {
		s.FooterFocused = false
	}
	if s.FreezedCols > s.Columns {
		s.FreezedCols = s.Columns
	}
	if s.VerticalCursorColumn > s.Columns {
		s.VerticalCursorColumn = s.Columns
	}
	if s.VerticalCursorColumn > 0 && s.VerticalCursorColumn <= s.FreezedCols {
		s.VerticalCursorColumn = s.FreezedCols + 1
	}
	s.clamp()
}

// Beeped reports whether the last Dispatch (or GotoLine/bookmark call) hit
// a clamped edge — spec.md §4.4: "exceeding an edge emits a beep (unless
// quiet mode)".
func (s *State) Beeped() bool { return s.beeped }

func (s *State) beep() {
	if !s.Quiet {
		s.beeped = true
	}
}

func (s *State) totalRows() int {
	if s.LastDataRow < s.FirstDataRow {
		return 0
	}
	return s.LastDataRow - s.FirstDataRow + 1
}

// AbsoluteCursorLine returns the logical line index (into the line store)
// the cursor currently sits on.
func (s *State) AbsoluteCursorLine() int {
	return s.FirstDataRow + s.CursorRow
}

func (s *State) clamp() {
	total := s.totalRows()
	if total <= 0 {
		s.CursorRow, s.FirstRow = 0, 0
		return
	}
	if s.CursorRow < 0 {
		s.CursorRow = 0
	}
	if s.CursorRow > total-1 {
		s.CursorRow = total - 1
	}
	maxFirst := total - s.VisibleDataRows
	if maxFirst < 0 {
		maxFirst = 0
	}
	if s.FirstRow < 0 {
		s.FirstRow = 0
	}
	if s.FirstRow > maxFirst {
		s.FirstRow = maxFirst
	}
	if s.CursorRow < s.FirstRow {
		s.FirstRow = s.CursorRow
	}
	if s.VisibleDataRows > 0 && s.CursorRow > s.FirstRow+s.VisibleDataRows-1 {
		s.FirstRow = s.CursorRow - s.VisibleDataRows + 1
	}
}

// Dispatch applies one navigation command.
func (s *State) Dispatch(cmd Command) {
	s.beeped = false
	switch cmd {
	case CursorUp:
		s.moveCursor(-1)
	case CursorDown:
		s.moveCursor(1)
	case PageUp:
		s.page(-1)
	case PageDown:
		s.page(1)
	case ScrollUp:
		s.scroll(-1)
	case ScrollDown:
		s.scroll(1)
	case ScrollHalfPageUp:
		s.scroll(-s.halfPage())
	case ScrollHalfPageDown:
		s.scroll(s.halfPage())
	case MoveLeftChar:
		s.moveHorizontal(-1, false)
	case MoveRightChar:
		s.moveHorizontal(1, false)
	case MoveLeftColumn:
		s.moveHorizontal(-1, true)
	case MoveRightColumn:
		s.moveHorizontal(1, true)
	case ShowFirstCol:
		s.showFirstCol()
	case ShowLastCol:
		s.showLastCol()
	case CursorFirstRow:
		s.gotoRow(0)
	case CursorLastRow:
		s.gotoRow(s.totalRows() - 1)
	case CursorHalfPage:
		s.moveCursor(s.halfPage())
	}
}

func (s *State) halfPage() int {
	h := s.VisibleDataRows / 2
	if h < 1 {
		h = 1
	}
	return h
}

func (s *State) moveCursor(delta int) {
	total := s.totalRows()
	if total <= 0 {
		s.beep()
		return
	}
	next := s.CursorRow + delta
	if next < 0 {
		next = 0
	}
	if next > total-1 {
		next = total - 1
	}
	if next == s.CursorRow && delta != 0 {
		s.beep()
	}
	s.CursorRow = next
	s.clamp()
}

func (s *State) gotoRow(row int) {
	total := s.totalRows()
	if total <= 0 {
		s.beep()
		return
	}
	if row < 0 {
		row = 0
	}
	if row > total-1 {
		row = total - 1
	}
	s.CursorRow = row
	s.clamp()
}

// GotoLine implements GotoLine(n): positive n is 1-based from the first
// data row; negative n counts back from the last row; clamped either way.
func (s *State) GotoLine(n int) {
	s.beeped = false
	total := s.totalRows()
	if total <= 0 {
		s.beep()
		return
	}
	var target int
	switch {
	case n > 0:
		target = n - 1
	case n < 0:
		target = total + n
	default:
		target = 0
	}
	s.gotoRow(target)
}

func (s *State) page(dir int) {
	total := s.totalRows()
	if total <= 0 {
		s.beep()
		return
	}
	screenRel := s.CursorRow - s.FirstRow
	step := dir * s.VisibleDataRows
	if step == 0 {
		step = dir
	}
	maxFirst := total - s.VisibleDataRows
	if maxFirst < 0 {
		maxFirst = 0
	}
	newFirst := s.FirstRow + step
	if newFirst < 0 {
		newFirst = 0
	}
	if newFirst > maxFirst {
		newFirst = maxFirst
	}
	if newFirst == s.FirstRow {
		s.beep()
	}
	s.FirstRow = newFirst
	s.CursorRow = s.FirstRow + screenRel
	if s.CursorRow > total-1 {
		s.CursorRow = total - 1
	}
	if s.CursorRow < 0 {
		s.CursorRow = 0
	}
	if s.IsExpandedMode {
		s.snapExpandedPage(dir)
	}
}

// snapExpandedPage aligns FirstRow to the nearest record-title boundary in
// the paging direction, so PageDown/PageUp land on whole records (spec.md
// §4.2 rule 6, SPEC_FULL §12 item 5).
func (s *State) snapExpandedPage(dir int) {
	if len(s.RecordStarts) == 0 {
		return
	}
	if dir > 0 {
		for _, r := range s.RecordStarts {
			if r >= s.FirstRow {
				s.FirstRow = r
				break
			}
		}
	} else {
		for i := len(s.RecordStarts) - 1; i >= 0; i-- {
			if s.RecordStarts[i] <= s.FirstRow {
				s.FirstRow = s.RecordStarts[i]
				break
			}
		}
	}
	s.clamp()
}

func (s *State) scroll(delta int) {
	total := s.totalRows()
	if total <= 0 {
		s.beep()
		return
	}
	maxFirst := total - s.VisibleDataRows
	if maxFirst < 0 {
		maxFirst = 0
	}
	next := s.FirstRow + delta
	if next < 0 {
		next = 0
	}
	if next > maxFirst {
		next = maxFirst
	}
	if next == s.FirstRow {
		s.beep()
	}
	s.FirstRow = next
	s.clamp()
}

func (s *State) moveHorizontal(dir int, byColumn bool) {
	if s.FooterFocused {
		next := s.FooterCursorCol + dir
		if next < 0 {
			next = 0
			s.beep()
		}
		s.FooterCursorCol = next
		return
	}
	if byColumn {
		if s.VerticalCursorOn {
			s.stepVerticalCursorColumn(dir)
		} else {
			s.jumpToColumnBoundary(dir)
		}
		return
	}
	next := s.CursorCol + dir
	if next < 0 {
		next = 0
		s.beep()
	}
	s.CursorCol = next
}

// jumpToColumnBoundary walks up to columnJumpLimit display columns from
// the current scroll position in dir's direction and stops at the next
// `I` classifier position (spec.md §4.4).
func (s *State) jumpToColumnBoundary(dir int) {
	if s.HeadlineTransl == "" {
		s.moveHorizontal(dir*columnJumpLimit, false)
		return
	}
	frozen := s.frozenWidth()
	abs := s.CursorCol + frozen
	for step := 1; step <= columnJumpLimit; step++ {
		candidate := abs + dir*step
		if candidate < 0 || candidate >= len(s.HeadlineTransl) {
			break
		}
		if detect.ClassifierChar(s.HeadlineTransl[candidate]) == detect.ClassInterior {
			rel := candidate - frozen
			if rel < 0 {
				rel = 0
			}
			s.CursorCol = rel
			return
		}
	}
	s.beep()
}

// frozenWidth returns the absolute display width occupied by the frozen
// columns (columns [0, FreezedCols) of CRanges).
func (s *State) frozenWidth() int {
	if s.FreezedCols <= 0 || s.FreezedCols > len(s.CRanges) {
		return 0
	}
	return s.CRanges[s.FreezedCols-1].XMax + 1
}

// stepVerticalCursorColumn moves the 1-based vertical cursor column by
// dir, clamped to [first unfrozen column, Columns], and scrolls the
// scrolling region to reveal the destination.
func (s *State) stepVerticalCursorColumn(dir int) {
	if s.Columns == 0 {
		s.beep()
		return
	}
	firstUnfrozen := s.FreezedCols + 1
	if s.VerticalCursorColumn == 0 {
		s.VerticalCursorColumn = firstUnfrozen
	}
	next := s.VerticalCursorColumn + dir
	if next < firstUnfrozen {
		next = firstUnfrozen
		s.beep()
	}
	if next > s.Columns {
		next = s.Columns
		s.beep()
	}
	s.VerticalCursorColumn = next
	s.revealColumn(next)
}

// revealColumn scrolls the scrolling region so column col (1-based) is
// fully visible: it prefers revealing the column's left edge, falling
// back to the right edge when the column is wider than the viewport
// (spec.md §4.4).
func (s *State) revealColumn(col int) {
	if col <= 0 || col > len(s.CRanges) {
		return
	}
	cr := s.CRanges[col-1]
	frozen := s.frozenWidth()
	relMin := cr.XMin - frozen
	relMax := cr.XMax - frozen
	width := relMax - relMin + 1

	switch {
	case width >= s.ViewportWidth:
		s.CursorCol = relMax - s.ViewportWidth + 1
	case relMin < s.CursorCol:
		s.CursorCol = relMin
	case relMax > s.CursorCol+s.ViewportWidth-1:
		s.CursorCol = relMax - s.ViewportWidth + 1
	}
	if s.CursorCol < 0 {
		s.CursorCol = 0
	}
}

func (s *State) showFirstCol() {
	s.CursorCol = 0
	s.VerticalCursorColumn = s.FreezedCols + 1
	if s.VerticalCursorColumn > s.Columns {
		s.VerticalCursorColumn = s.Columns
	}
}

func (s *State) showLastCol() {
	if s.Columns == 0 {
		s.beep()
		return
	}
	s.VerticalCursorColumn = s.Columns
	s.revealColumn(s.Columns)
}

// EnterFooter switches focus to the footer viewport, if one is present
// (spec.md §4.4 "Footer split").
func (s *State) EnterFooter() {
	if s.FooterVisible {
		s.FooterFocused = true
	}
}

// LeaveFooter restores body focus; the body's horizontal offset was never
// touched while the footer had focus.
func (s *State) LeaveFooter() {
	s.FooterFocused = false
}

// Resize updates the viewport geometry, keeping the cursor's
// screen-relative row stable when the new geometry still fits it
// (SPEC_FULL §12 item 2, "resize-triggered vertical-cursor recentering"),
// and re-reveals the current vertical-cursor column under the new width.
func (s *State) Resize(visibleDataRows, viewportWidth int) {
	total := s.totalRows()
	screenRel := s.CursorRow - s.FirstRow
	s.VisibleDataRows = visibleDataRows
	s.ViewportWidth = viewportWidth

	maxFirst := total - s.VisibleDataRows
	if maxFirst < 0 {
		maxFirst = 0
	}
	newFirst := s.CursorRow - screenRel
	if newFirst < 0 {
		newFirst = 0
	}
	if newFirst > maxFirst {
		newFirst = maxFirst
	}
	s.FirstRow = newFirst
	s.clamp()
	s.RecenterVerticalCursor()
}

// RecenterVerticalCursor re-reveals the current vertical-cursor column
// under the viewport's current width — the named, independently testable
// operation SPEC_FULL §12 item 2 calls for, split out of Resize so a
// caller can re-run it without also touching scroll position (e.g. after
// FreezedCols changes).
func (s *State) RecenterVerticalCursor() {
	if s.VerticalCursorColumn > 0 {
		s.revealColumn(s.VerticalCursorColumn)
	}
}

// FrozenWidth returns the display-column width of the frozen-columns
// region, for callers outside this package that need to map a screen X
// coordinate into CRanges space (spec.md §4.6's frozen/scrolling seam).
func (s *State) FrozenWidth() int {
	return s.frozenWidth()
}

// ToggleBookmark flips the Bookmark bit on the line the cursor sits on.
func (s *State) ToggleBookmark(store *lines.Store) {
	store.XorMark(s.AbsoluteCursorLine(), lines.Bookmark)
}

// NextBookmark moves the cursor to the next bookmarked data row after the
// current position. It does not wrap; ok is false (and a beep recorded)
// once the data rows are exhausted (SPEC_FULL §12 item 1).
func (s *State) NextBookmark(store *lines.Store) bool {
	s.beeped = false
	for i := s.AbsoluteCursorLine() + 1; i <= s.LastDataRow; i++ {
		if _, info, ok := store.Get(i); ok && info.Mask&lines.Bookmark != 0 {
			s.CursorRow = i - s.FirstDataRow
			s.clamp()
			return true
		}
	}
	s.beep()
	return false
}

// PrevBookmark is NextBookmark's mirror, scanning toward the first data
// row without wrapping.
func (s *State) PrevBookmark(store *lines.Store) bool {
	s.beeped = false
	for i := s.AbsoluteCursorLine() - 1; i >= s.FirstDataRow; i-- {
		if _, info, ok := store.Get(i); ok && info.Mask&lines.Bookmark != 0 {
			s.CursorRow = i - s.FirstDataRow
			s.clamp()
			return true
		}
	}
	s.beep()
	return false
}
