package mark

import (
	"testing"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/stretchr/testify/require"
)

func threeColumns() []detect.CRange {
	return []detect.CRange{
		{XMin: 0, XMax: 4},
		{XMin: 6, XMax: 10},
		{XMin: 12, XMax: 16},
	}
}

func TestMarkTogglesRowsMode(t *testing.T) {
	s := New()
	s.Mark(3)
	require.Equal(t, Rows, s.Mode)
	s.Mark(3)
	require.Equal(t, None, s.Mode)
}

func TestMarkColumnTogglesBlockMode(t *testing.T) {
	s := New()
	s.MarkColumn(2, 2)
	require.Equal(t, Block, s.Mode)
	s.MarkColumn(2, 2)
	require.Equal(t, None, s.Mode)
}

func TestRowsSelectionRect(t *testing.T) {
	s := New()
	s.Mark(2)
	s.Extend(5)
	rect := s.Rect(threeColumns())
	require.Equal(t, Rect{FirstRow: 2, Rows: 4, FirstCol: AllColumns, Cols: AllColumns}, rect)
}

func TestRowsSelectionRectHandlesUpwardExtend(t *testing.T) {
	s := New()
	s.Mark(5)
	s.Extend(2)
	rect := s.Rect(threeColumns())
	require.Equal(t, 2, rect.FirstRow)
	require.Equal(t, 4, rect.Rows)
}

func TestBlockSelectionRectMapsToDisplayColumns(t *testing.T) {
	s := New()
	s.MarkColumn(1, 2)
	s.Extend(3)
	s.ExtendColumn(3)
	rect := s.Rect(threeColumns())
	require.Equal(t, 1, rect.FirstRow)
	require.Equal(t, 3, rect.Rows)
	require.Equal(t, 6, rect.FirstCol)
	require.Equal(t, 11, rect.Cols) // columns 2..3 span display cols 6..16
}

func TestCursorSelectionCollapsesOnEnd(t *testing.T) {
	s := New()
	s.BeginCursorSelection(0)
	s.Extend(4)
	require.Equal(t, Cursor, s.Mode)
	s.EndCursorSelection()
	require.Equal(t, None, s.Mode)
	require.True(t, s.Rect(nil).Empty())
}

func TestMouseDragCommitFreezesRect(t *testing.T) {
	s := New()
	s.BeginMouse(1, AllColumns, false)
	s.UpdateMouse(4, AllColumns)
	s.CommitMouse()
	s.UpdateMouse(9, AllColumns) // ignored: already frozen
	rect := s.Rect(threeColumns())
	require.Equal(t, 1, rect.FirstRow)
	require.Equal(t, 4, rect.Rows)
}

func TestMouseDragCancelledByNavigation(t *testing.T) {
	s := New()
	s.BeginMouse(1, AllColumns, false)
	s.UpdateMouse(3, AllColumns)
	s.CancelMouse()
	require.Equal(t, None, s.Mode)
}

func TestMouseColumnsSelectsWholeColumns(t *testing.T) {
	s := New()
	s.BeginMouseColumns(1)
	s.UpdateMouse(0, 2)
	s.CommitMouse()
	rect := s.Rect(threeColumns())
	require.Equal(t, AllColumns, rect.Rows)
	require.Equal(t, 0, rect.FirstCol)
	require.Equal(t, 11, rect.Cols)
}

func TestSelectAllCoversEverything(t *testing.T) {
	s := New()
	s.SelectAll(10)
	rect := s.Rect(threeColumns())
	require.Equal(t, 0, rect.FirstRow)
	require.Equal(t, 10, rect.Rows)
	require.Equal(t, AllColumns, rect.FirstCol)
	require.Equal(t, AllColumns, rect.Cols)
}

// Selection-rectangle-area testable property (spec.md §8): area is
// selected_rows * (selected_columns or total_columns).
func TestSelectionAreaTestableProperty(t *testing.T) {
	s := New()
	s.Mark(0)
	s.Extend(2)
	rect := s.Rect(threeColumns())
	totalCols := 3
	cols := rect.Cols
	if cols == AllColumns {
		cols = totalCols
	}
	area := rect.Rows * cols
	require.Equal(t, 9, area)
}

func TestClampToTableShrinksSelectionAfterReload(t *testing.T) {
	s := New()
	s.MarkColumn(5, 3)
	s.Extend(8)
	s.ExtendColumn(3)
	s.ClampToTable(4, 2)
	rect := s.Rect(threeColumns()[:2])
	require.Equal(t, 3, rect.FirstRow)
	require.Equal(t, 1, rect.Rows)
}

func TestClampToTableUnmarksWhenTableEmpty(t *testing.T) {
	s := New()
	s.Mark(0)
	s.ClampToTable(0, 0)
	require.Equal(t, None, s.Mode)
}
