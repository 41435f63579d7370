package export

import (
	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/dbrowse/tabpager/internal/mark"
	"github.com/dbrowse/tabpager/internal/nav"
)

// Scope selects which rows (and, for Selected/Column, which display
// columns) an export walks (spec.md §4.7 "Inputs").
type Scope int

const (
	AllLines Scope = iota
	TopN
	BottomN
	MarkedLines
	SearchedLines
	Selected
	CurrentLine
	ExtendedCurrentLine
	Column
)

// rowSpec is one row to export: pos is its position in the line store's
// current iteration order (honoring any installed OrderMap, per spec.md
// §4.7's "walks the line store in order_map order"); xmin/xmax restrict
// which display columns contribute fields, or -1/-1 for no restriction.
type rowSpec struct {
	pos        int
	xmin, xmax int
}

// selectRows resolves scope (plus n, the row count for TopN/BottomN) into
// the ordered list of rows to export.
func selectRows(store *lines.Store, d *detect.DataDesc, nv *nav.State, mk *mark.State, scope Scope, n int) ([]rowSpec, error) {
	if d == nil || d.Unstructured() || d.FirstDataRow > d.LastDataRow {
		return nil, errNoData
	}
	switch scope {
	case AllLines:
		return allRows(d), nil
	case TopN:
		return topRows(d, n), nil
	case BottomN:
		return bottomRows(d, n), nil
	case MarkedLines:
		return filterRows(store, d, lines.Bookmark)
	case SearchedLines:
		return filterRows(store, d, lines.FoundPattern)
	case Selected:
		return selectedRows(mk, d)
	case CurrentLine, ExtendedCurrentLine:
		if nv == nil {
			return nil, errNoData
		}
		pos := d.FirstDataRow + nv.CursorRow
		if pos < d.FirstDataRow || pos > d.LastDataRow {
			return nil, errNoData
		}
		return []rowSpec{{pos: pos, xmin: -1, xmax: -1}}, nil
	case Column:
		if nv == nil || !nv.VerticalCursorOn || nv.VerticalCursorColumn <= 0 || nv.VerticalCursorColumn > len(d.CRanges) {
			return nil, errNoColumn
		}
		cr := d.CRanges[nv.VerticalCursorColumn-1]
		rows := allRows(d)
		for i := range rows {
			rows[i].xmin, rows[i].xmax = cr.XMin, cr.XMax
		}
		return rows, nil
	default:
		return nil, errNoData
	}
}

func allRows(d *detect.DataDesc) []rowSpec {
	out := make([]rowSpec, 0, d.LastDataRow-d.FirstDataRow+1)
	for p := d.FirstDataRow; p <= d.LastDataRow; p++ {
		out = append(out, rowSpec{pos: p, xmin: -1, xmax: -1})
	}
	return out
}

func topRows(d *detect.DataDesc, n int) []rowSpec {
	last := d.FirstDataRow + n - 1
	if last > d.LastDataRow || n <= 0 {
		last = d.LastDataRow
	}
	out := make([]rowSpec, 0, last-d.FirstDataRow+1)
	for p := d.FirstDataRow; p <= last; p++ {
		out = append(out, rowSpec{pos: p, xmin: -1, xmax: -1})
	}
	return out
}

func bottomRows(d *detect.DataDesc, n int) []rowSpec {
	first := d.LastDataRow - n + 1
	if first < d.FirstDataRow || n <= 0 {
		first = d.FirstDataRow
	}
	out := make([]rowSpec, 0, d.LastDataRow-first+1)
	for p := first; p <= d.LastDataRow; p++ {
		out = append(out, rowSpec{pos: p, xmin: -1, xmax: -1})
	}
	return out
}

// filterRows walks the data rows in iteration order and keeps those whose
// info mask has every bit in mask set.
func filterRows(store *lines.Store, d *detect.DataDesc, mask lines.Mask) ([]rowSpec, error) {
	var out []rowSpec
	it := store.IterFrom(d.FirstDataRow)
	for p := d.FirstDataRow; p <= d.LastDataRow; p++ {
		_, info, _, ok := it.Next()
		if !ok {
			break
		}
		if info.Mask&mask != 0 {
			out = append(out, rowSpec{pos: p, xmin: -1, xmax: -1})
		}
	}
	if len(out) == 0 {
		return nil, errNoData
	}
	return out, nil
}

// selectedRows turns the current mark rectangle into rowSpecs: a row range
// (or every data row, for a MouseColumns-style column-only selection) with
// an optional column restriction.
func selectedRows(mk *mark.State, d *detect.DataDesc) ([]rowSpec, error) {
	if mk == nil {
		return nil, errNoSelection
	}
	rect := mk.Rect(d.CRanges)
	if rect.Empty() {
		return nil, errNoSelection
	}
	xmin, xmax := -1, -1
	if rect.FirstCol != mark.AllColumns {
		xmin, xmax = rect.FirstCol, rect.FirstCol+rect.Cols-1
	}
	if rect.Rows == mark.AllColumns {
		out := allRows(d)
		for i := range out {
			out[i].xmin, out[i].xmax = xmin, xmax
		}
		return out, nil
	}
	first := d.FirstDataRow + rect.FirstRow
	last := first + rect.Rows - 1
	if first < d.FirstDataRow {
		first = d.FirstDataRow
	}
	if last > d.LastDataRow {
		last = d.LastDataRow
	}
	if first > last {
		return nil, errNoSelection
	}
	out := make([]rowSpec, 0, last-first+1)
	for p := first; p <= last; p++ {
		out = append(out, rowSpec{pos: p, xmin: xmin, xmax: xmax})
	}
	return out, nil
}
