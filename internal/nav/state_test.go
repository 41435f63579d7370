package nav

import (
	"testing"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/stretchr/testify/require"
)

func fiveColumnState() *State {
	cranges := []detect.CRange{
		{XMin: 0, XMax: 4},
		{XMin: 6, XMax: 10},
		{XMin: 12, XMax: 16},
		{XMin: 18, XMax: 22},
		{XMin: 24, XMax: 37},
	}
	return &State{
		FirstDataRow:    0,
		LastDataRow:     9,
		Columns:         5,
		CRanges:         cranges,
		VisibleDataRows: 5,
		ViewportWidth:   10,
		FreezedCols:     1,
	}
}

func TestMoveCursorClampsAtEdges(t *testing.T) {
	s := &State{FirstDataRow: 0, LastDataRow: 2, VisibleDataRows: 3}
	s.Dispatch(CursorUp)
	require.True(t, s.Beeped())
	require.Equal(t, 0, s.CursorRow)

	s.Dispatch(CursorDown)
	s.Dispatch(CursorDown)
	require.Equal(t, 2, s.CursorRow)
	s.Dispatch(CursorDown)
	require.True(t, s.Beeped())
	require.Equal(t, 2, s.CursorRow)
}

func TestPagePreservesScreenRelativeCursor(t *testing.T) {
	s := &State{FirstDataRow: 0, LastDataRow: 19, VisibleDataRows: 5}
	s.CursorRow = 3
	s.FirstRow = 0
	s.Dispatch(PageDown)
	require.Equal(t, 5, s.FirstRow)
	require.Equal(t, 8, s.CursorRow)
}

func TestGotoLinePositiveAndNegative(t *testing.T) {
	s := &State{FirstDataRow: 0, LastDataRow: 9, VisibleDataRows: 5}
	s.GotoLine(3)
	require.Equal(t, 2, s.CursorRow)
	s.GotoLine(-1)
	require.Equal(t, 9, s.CursorRow)
	s.GotoLine(-2)
	require.Equal(t, 8, s.CursorRow)
}

func TestShowFirstColAndShowLastCol(t *testing.T) {
	s := fiveColumnState()
	s.CursorCol = 7
	s.VerticalCursorColumn = 3
	s.Dispatch(ShowFirstCol)
	require.Equal(t, 0, s.CursorCol)
	require.Equal(t, 2, s.VerticalCursorColumn)

	s.Dispatch(ShowLastCol)
	require.Equal(t, 5, s.VerticalCursorColumn)
	require.Equal(t, 23, s.CursorCol) // right edge of the wide last column
}

// Frozen-columns scenario (spec.md §8 testable properties, scenario 4):
// with freezed_cols=1 and a 5-column table wider than the screen, moving
// right until vertical_cursor_column=5 reveals column 5's right edge
// (it is wider than the viewport); ShowFirstCol then resets cursor_col to
// 0 and vertical_cursor_column to 2, the first unfrozen column.
func TestFrozenColumnsVerticalCursorWalk(t *testing.T) {
	s := fiveColumnState()
	s.VerticalCursorOn = true
	s.VerticalCursorColumn = 2

	s.Dispatch(MoveRightColumn)
	require.Equal(t, 3, s.VerticalCursorColumn)
	s.Dispatch(MoveRightColumn)
	require.Equal(t, 4, s.VerticalCursorColumn)
	s.Dispatch(MoveRightColumn)
	require.Equal(t, 5, s.VerticalCursorColumn)
	require.Equal(t, 23, s.CursorCol)

	s.Dispatch(MoveRightColumn)
	require.True(t, s.Beeped())
	require.Equal(t, 5, s.VerticalCursorColumn)

	s.Dispatch(ShowFirstCol)
	require.Equal(t, 0, s.CursorCol)
	require.Equal(t, 2, s.VerticalCursorColumn)
}

func TestVerticalCursorColumnNeverEntersFrozenRegion(t *testing.T) {
	s := fiveColumnState()
	s.VerticalCursorOn = true
	s.VerticalCursorColumn = 2
	s.Dispatch(MoveLeftColumn)
	require.True(t, s.Beeped())
	require.Equal(t, 2, s.VerticalCursorColumn)
}

func TestJumpToColumnBoundaryUsesHeadlineTransl(t *testing.T) {
	s := &State{
		FirstDataRow:    0,
		LastDataRow:     2,
		VisibleDataRows: 3,
		ViewportWidth:   6,
		HeadlineTransl:  "dddIdddIddd",
	}
	s.Dispatch(MoveRightColumn)
	require.Equal(t, 3, s.CursorCol)
	s.Dispatch(MoveRightColumn)
	require.Equal(t, 7, s.CursorCol)
}

func TestResizeKeepsCursorScreenRelative(t *testing.T) {
	s := &State{FirstDataRow: 0, LastDataRow: 19, VisibleDataRows: 5}
	s.CursorRow = 7
	s.FirstRow = 5
	s.Resize(10, 40)
	require.Equal(t, 5, s.FirstRow)
	require.Equal(t, 7, s.CursorRow)
}

func TestBookmarkNextPrevDoNotWrap(t *testing.T) {
	store := lines.New()
	for i := 0; i < 5; i++ {
		store.Append("row")
	}
	store.XorMark(1, lines.Bookmark)
	store.XorMark(3, lines.Bookmark)

	s := &State{FirstDataRow: 0, LastDataRow: 4, VisibleDataRows: 5}
	require.True(t, s.NextBookmark(store))
	require.Equal(t, 1, s.CursorRow)
	require.True(t, s.NextBookmark(store))
	require.Equal(t, 3, s.CursorRow)
	require.False(t, s.NextBookmark(store))
	require.True(t, s.Beeped())
	require.Equal(t, 3, s.CursorRow)

	require.True(t, s.PrevBookmark(store))
	require.Equal(t, 1, s.CursorRow)
	require.False(t, s.PrevBookmark(store))
	require.True(t, s.Beeped())
}

func TestToggleBookmark(t *testing.T) {
	store := lines.New()
	store.Append("row")
	s := &State{FirstDataRow: 0, LastDataRow: 0, VisibleDataRows: 1}
	s.ToggleBookmark(store)
	_, info, _ := store.Get(0)
	require.True(t, info.Mask&lines.Bookmark != 0)
	s.ToggleBookmark(store)
	_, info, _ = store.Get(0)
	require.False(t, info.Mask&lines.Bookmark != 0)
}

func TestFooterFocusHasIndependentHorizontalOffset(t *testing.T) {
	s := &State{FirstDataRow: 0, LastDataRow: 2, VisibleDataRows: 3, FooterVisible: true}
	s.CursorCol = 5
	s.EnterFooter()
	s.Dispatch(MoveRightChar)
	require.Equal(t, 1, s.FooterCursorCol)
	require.Equal(t, 5, s.CursorCol)
	s.LeaveFooter()
	require.Equal(t, 5, s.CursorCol)
}

func TestExpandedModePageSnapsToRecordBoundary(t *testing.T) {
	s := &State{
		FirstDataRow:    0,
		LastDataRow:     29,
		VisibleDataRows: 5,
		IsExpandedMode:  true,
		RecordStarts:    []int{0, 6, 13, 20, 27},
	}
	s.CursorRow = 2
	s.Dispatch(PageDown)
	require.Equal(t, 6, s.FirstRow)
}

func TestSyncDescClampsFreezedAndVerticalCursor(t *testing.T) {
	s := fiveColumnState()
	s.VerticalCursorColumn = 5
	d := &detect.DataDesc{
		FirstDataRow:   0,
		LastDataRow:    4,
		Columns:        2,
		CRanges:        []detect.CRange{{XMin: 0, XMax: 2}, {XMin: 4, XMax: 6}},
		HeadlineTransl: "dddIddd",
	}
	s.SyncDesc(d)
	require.Equal(t, 2, s.Columns)
	require.Equal(t, 2, s.VerticalCursorColumn)
	require.Equal(t, 1, s.FreezedCols)
}
