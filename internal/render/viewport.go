package render

import (
	"strings"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/dbrowse/tabpager/internal/mark"
	"github.com/dbrowse/tabpager/internal/nav"
	"github.com/dbrowse/tabpager/internal/search"
	"github.com/mattn/go-runewidth"
)

// padToWidth pads or truncates s to exactly w display columns, truncating
// on a grapheme boundary with an ellipsis when it doesn't fit.
func padToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	cw := runewidth.StringWidth(s)
	if cw == w {
		return s
	}
	if cw < w {
		return s + strings.Repeat(" ", w-cw)
	}
	return truncateToWidth(s, w)
}

// sliceDisplayCols extracts the substring of text covering display
// columns [xmin, xmax], or "" if the range is empty or out of bounds.
func sliceDisplayCols(text string, xmin, xmax int) string {
	start, end := detect.ByteRangeForDisplayCols(text, xmin, xmax)
	if end < start || start < 0 || start > len(text) || end > len(text) {
		return ""
	}
	return text[start:end]
}

// RenderDataRow draws one data row's visible columns: for each column in
// cranges (already narrowed to the visible set by the caller), it slices
// the cell, pads/truncates it to the column's width, resolves its
// attribute via ctxFor, and renders it through theme.
func RenderDataRow(text string, cranges []detect.CRange, theme Theme, ctxFor func(colIdx int) CellContext) string {
	var b strings.Builder
	for i, cr := range cranges {
		w := cr.XMax - cr.XMin + 1
		cell := padToWidth(sliceDisplayCols(text, cr.XMin, cr.XMax), w)
		ctx := ctxFor(i)
		role := Resolve(ctx)
		b.WriteString(theme.Style(role, FoundXOR(ctx, role)).Render(cell))
	}
	return b.String()
}

// RenderBorderRow draws a border/head/title row verbatim across display
// columns [xmin, xmax], upgrading ASCII glyphs to Unicode box-drawing
// characters when uniBorder is set (spec.md §4.6 "ASCII → Unicode border
// upgrade"). transl supplies the per-column classifier; display columns at
// or past the end of transl (on a row wider than the head line) pass
// through as ClassData.
func RenderBorderRow(text, transl string, xmin, xmax int, kind RowKind, theme Theme, uniBorder bool) string {
	cells := sliceRunesByDisplayCol(text, xmin, xmax)
	var b strings.Builder
	for _, c := range cells {
		cls := detect.ClassData
		if c.col < len(transl) {
			cls = detect.ClassifierChar(transl[c.col])
		}
		r := c.r
		if uniBorder {
			r = UpgradeBorderChar(cls, r, kind)
		}
		role := RoleLine
		if cls == detect.ClassData {
			role = RoleData
		}
		b.WriteString(theme.Style(role, false).Render(string(r)))
	}
	return b.String()
}

type displayRune struct {
	r   rune
	col int
}

// sliceRunesByDisplayCol returns the runes of text whose display column
// falls in [xmin, xmax], each tagged with its column.
func sliceRunesByDisplayCol(text string, xmin, xmax int) []displayRune {
	var out []displayRune
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if col >= xmin && col <= xmax {
			out = append(out, displayRune{r: r, col: col})
		}
		col += w
	}
	return out
}

// RowNumGutter renders the row-number gutter cell for one row (the
// RowNum/RowNumLUC viewports): n right-aligned in width columns; when n
// has more digits than width, only its last width digits are kept.
func RowNumGutter(n, width int) string {
	s := itoa(n)
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Frame bundles the immutable inputs a full redraw needs, mirroring the
// teacher's RenderLogsTab signature (entries, cursor, width, height)
// generalized from one flat log list to a structure-detected table split
// across frozen rows/columns.
type Frame struct {
	Store  *lines.Store
	Desc   *detect.DataDesc
	Nav    *nav.State
	Mark   *mark.State
	Search *search.Engine
	Theme  Theme

	ShowRowNum bool
	UniBorder  bool
}

// RenderBody draws the scrolling data-row viewport (Rows/FixCols/FixRows
// combined into one pass over visible columns): exactly f.Nav.
// VisibleDataRows lines, starting at the frozen columns and continuing
// through the horizontally scrolled region.
func (f Frame) RenderBody() []string {
	if f.Desc == nil || f.Desc.Unstructured() || f.Nav == nil {
		return nil
	}
	visibleCols := f.visibleColumns()
	rect := mark.Rect{}
	if f.Mark != nil {
		rect = f.Mark.Rect(f.Desc.CRanges)
	}

	out := make([]string, 0, f.Nav.VisibleDataRows)
	for r := 0; r < f.Nav.VisibleDataRows; r++ {
		logical := f.Desc.FirstDataRow + f.Nav.FirstRow + r
		if logical > f.Desc.LastDataRow {
			break
		}
		text, info, ok := f.Store.Get(logical)
		if !ok {
			break
		}
		rowCursor := r+f.Nav.FirstRow == f.Nav.CursorRow
		var matches []search.Match
		if f.Search != nil {
			matches = f.Search.MatchesOnLine(logical)
		}
		line := RenderDataRow(text, visibleCols, f.Theme, func(i int) CellContext {
			cr := visibleCols[i]
			inSel := !rect.Empty() && rowInRect(r+f.Nav.FirstRow, rect) && colInRect(cr.XMin, rect)
			colCursor := f.Nav.VerticalCursorOn && f.Nav.VerticalCursorColumn > 0 &&
				f.Desc.ColumnAt(cr.XMin) == f.Nav.VerticalCursorColumn-1
			found := false
			for _, m := range matches {
				if m.DisplayCol >= cr.XMin && m.DisplayCol <= cr.XMax {
					found = true
					break
				}
			}
			return CellContext{
				Classifier:  detect.ClassData,
				InSelection: inSel,
				RowCursor:   rowCursor,
				ColCursor:   colCursor,
				Bookmarked:  info.Mask&lines.Bookmark != 0,
				FoundMatch:  found,
			}
		})
		out = append(out, line)
	}
	return out
}

func rowInRect(row int, r mark.Rect) bool {
	if r.Rows == mark.AllColumns {
		return true
	}
	return row >= r.FirstRow && row < r.FirstRow+r.Rows
}

func colInRect(x int, r mark.Rect) bool {
	if r.Cols == mark.AllColumns {
		return true
	}
	return x >= r.FirstCol && x < r.FirstCol+r.Cols
}

// visibleColumns returns the CRanges visible on screen: the frozen
// columns in full, followed by the scrolling region's columns offset by
// Nav.CursorCol, together spanning at most Nav.ViewportWidth display
// columns of scrolling content.
func (f Frame) visibleColumns() []detect.CRange {
	cr := f.Desc.CRanges
	if f.Nav.FreezedCols <= 0 {
		return windowColumns(cr, f.Nav.CursorCol, f.Nav.ViewportWidth)
	}
	frozenCount := f.Nav.FreezedCols
	if frozenCount > len(cr) {
		frozenCount = len(cr)
	}
	visible := append([]detect.CRange{}, cr[:frozenCount]...)
	visible = append(visible, windowColumns(cr[frozenCount:], f.Nav.CursorCol, f.Nav.ViewportWidth)...)
	return visible
}

// windowColumns returns the columns of cr whose (frozen-relative) display
// extent overlaps [cursorCol, cursorCol+viewportWidth).
func windowColumns(cr []detect.CRange, cursorCol, viewportWidth int) []detect.CRange {
	if len(cr) == 0 {
		return nil
	}
	base := cr[0].XMin
	winStart := base + cursorCol
	winEnd := winStart + viewportWidth
	var out []detect.CRange
	for _, c := range cr {
		if c.XMax >= winStart && c.XMin < winEnd {
			out = append(out, c)
		}
	}
	return out
}
