package app

import (
	"fmt"
	"strings"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/render"
)

// render assembles the full-screen View: border/names/head rows (drawn
// once per redraw, not scrolled), the Frame-rendered scrolling body, and
// the footer (prompt line when one is open, status line otherwise) —
// generalizing the teacher's View() (top bar + divider + body + help
// footer) from a fixed tab layout to a structure-detected table.
func (m Model) render() string {
	if m.err != nil {
		return fmt.Sprintf("tabpager: %v\n\npress q to quit\n", m.err)
	}
	if m.desc == nil || m.desc.Unstructured() {
		return m.renderPlain()
	}

	var b strings.Builder
	uniBorder := m.desc.LineStyle == detect.StyleASCII

	writeBorderRow := func(logical int, kind render.RowKind) {
		text, _, ok := m.store.Get(logical)
		if !ok {
			return
		}
		b.WriteString(render.RenderBorderRow(text, m.desc.HeadlineTransl, 0, m.desc.MaxX-1, kind, m.theme, uniBorder))
		b.WriteString("\n")
	}

	if !m.opts.HideHeaderLine {
		if m.desc.BorderTopRow >= 0 {
			writeBorderRow(m.desc.BorderTopRow, render.RowTop)
		}
		m.renderNamesRow(&b)
		if m.desc.BorderHeadRow >= 0 {
			writeBorderRow(m.desc.BorderHeadRow, render.RowHead)
		}
	}

	frame := render.Frame{
		Store:      m.store,
		Desc:       m.desc,
		Nav:        m.nav,
		Mark:       m.mark,
		Search:     m.srch,
		Theme:      m.theme,
		UniBorder:  uniBorder,
	}
	body := frame.RenderBody()
	slider := m.scrollbar(len(body))
	for i, line := range body {
		b.WriteString(line)
		if slider.SliderSize > 0 {
			b.WriteString(m.scrollbarCell(i, slider))
		}
		b.WriteString("\n")
	}

	if m.desc.BorderBottomRow >= 0 {
		writeBorderRow(m.desc.BorderBottomRow, render.RowBottom)
	}

	if m.desc.FooterRow >= 0 {
		b.WriteString(m.renderFooterRow())
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderFooterRow draws the detected footer line (e.g. a trailing
// "(N rows)" summary) with its own horizontal scroll offset once
// EnterFooter has moved focus there — spec.md §4.4 "Footer split":
// "independent horizontal offset, no vertical cursor".
func (m Model) renderFooterRow() string {
	text, _, ok := m.store.Get(m.desc.FooterRow)
	if !ok {
		return ""
	}
	offset := 0
	if m.nav.FooterFocused {
		offset = m.nav.FooterCursorCol
	}
	start, end := detect.ByteRangeForDisplayCols(text, offset, offset+m.desc.MaxX-1)
	if start < 0 || end > len(text) || end < start {
		return ""
	}
	return text[start:end]
}

// scrollbar computes the slider position for the scrollbar track drawn
// alongside the body (spec.md §4.6 "Scrollbar"), or a zero-size Scrollbar
// when disabled or when the whole table already fits on screen.
func (m Model) scrollbar(trackHeight int) render.Scrollbar {
	if m.opts.NoScrollbar || trackHeight <= 0 {
		return render.Scrollbar{}
	}
	total := m.desc.LastDataRow - m.desc.FirstDataRow + 1
	maxFirst := total - m.nav.VisibleDataRows
	if maxFirst <= 0 {
		return render.Scrollbar{}
	}
	return render.ComputeScrollbar(m.nav.FirstRow, maxFirst, trackHeight, m.nav.VisibleDataRows, total)
}

// scrollbarCell renders the single track cell for body row i: the slider
// glyph when i falls within the slider's span, a plain track cell otherwise.
func (m Model) scrollbarCell(i int, s render.Scrollbar) string {
	if i >= s.SliderY && i < s.SliderY+s.SliderSize {
		return m.theme.Style(render.RoleLine, false).Render(" ")
	}
	return " "
}

func (m Model) renderNamesRow(b *strings.Builder) {
	if m.desc.NamesLine < 0 {
		return
	}
	text, _, ok := m.store.Get(m.desc.NamesLine)
	if !ok {
		return
	}
	var row strings.Builder
	for _, cr := range m.desc.CRanges {
		name := ""
		if cr.NameSize > 0 && cr.NameOffset >= 0 && cr.NameOffset+cr.NameSize <= len(text) {
			name = strings.TrimSpace(text[cr.NameOffset : cr.NameOffset+cr.NameSize])
		}
		row.WriteString(render.RenderColumnName(name, cr.XMax-cr.XMin+1))
	}
	b.WriteString(row.String())
	b.WriteString("\n")
}

func (m Model) renderFooter() string {
	if m.prompt != promptNone {
		return m.promptLabel() + m.promptInput.View()
	}

	info := render.StatusInfo{
		TotalColumns:  m.desc.Columns,
		FreezedCols:   m.nav.FreezedCols,
		CursorCol:     m.nav.CursorCol,
		ViewportWidth: m.nav.ViewportWidth,
		MaxX:          m.desc.MaxX,
		FirstRow:      m.nav.FirstRow,
		CursorRow:     m.nav.CursorRow,
		TotalDataRows: m.desc.LastDataRow - m.desc.FirstDataRow + 1,
	}
	if m.nav.VerticalCursorOn && m.nav.VerticalCursorColumn > 0 {
		col := m.nav.VerticalCursorColumn - 1
		if col >= 0 && col < len(m.desc.CRanges) {
			info.VerticalCursorColumn = m.nav.VerticalCursorColumn
			info.ColXMin = m.desc.CRanges[col].XMin
			info.ColXMax = m.desc.CRanges[col].XMax
		}
	}
	return render.StatusLine(info)
}

func (m Model) promptLabel() string {
	switch m.prompt {
	case promptSearchForward:
		return "/"
	case promptSearchBackward:
		return "?"
	case promptGoto:
		return "goto line: "
	case promptSave:
		return "save to: "
	default:
		return ""
	}
}

// renderPlain is the fallback for unstructured input (spec.md §4.2
// "Contract": no headline found renders as plain text).
func (m Model) renderPlain() string {
	var b strings.Builder
	total := m.store.Len()
	first := m.nav.FirstRow
	last := first + m.nav.VisibleDataRows
	if last > total {
		last = total
	}
	for i := first; i < last; i++ {
		text, _, ok := m.store.Get(i)
		if !ok {
			break
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}
