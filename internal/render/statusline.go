package render

import "fmt"

// StatusInfo is the snapshot of navigation state the status line reports.
type StatusInfo struct {
	VerticalCursorColumn int // 1-based; 0 means no vertical cursor is active
	TotalColumns         int
	ColXMin, ColXMax      int // display-column extent of the current vertical-cursor column

	FreezedCols int

	CursorCol     int // left edge of the visible scrolling region, in display columns
	ViewportWidth int
	MaxX          int // table's total display width

	FirstRow      int // 0-based
	CursorRow     int // 0-based, relative to the first data row
	TotalDataRows int
}

// StatusLine renders spec.md §4.6's status line template:
// "V:[col/cols x..y] FC:f C:a..b/max L:[first + offset r/total] pct%".
func StatusLine(info StatusInfo) string {
	var vPart string
	if info.VerticalCursorColumn > 0 {
		vPart = fmt.Sprintf("V:[%d/%d %d..%d]", info.VerticalCursorColumn, info.TotalColumns, info.ColXMin, info.ColXMax)
	} else {
		vPart = fmt.Sprintf("V:[-/%d]", info.TotalColumns)
	}

	a := info.CursorCol
	b := a + info.ViewportWidth - 1
	if info.MaxX > 0 && b > info.MaxX-1 {
		b = info.MaxX - 1
	}
	cPart := fmt.Sprintf("C:%d..%d/%d", a, b, info.MaxX)

	offset := info.CursorRow - info.FirstRow
	lPart := fmt.Sprintf("L:[%d + %d %d/%d]", info.FirstRow+1, offset, info.CursorRow+1, info.TotalDataRows)

	pct := 0
	if info.TotalDataRows > 0 {
		pct = (info.CursorRow + 1) * 100 / info.TotalDataRows
	}

	return fmt.Sprintf("%s FC:%d %s %s %d%%", vPart, info.FreezedCols, cPart, lPart, pct)
}
