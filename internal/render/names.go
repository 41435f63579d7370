package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// RenderColumnName draws one column's trimmed name within a field exactly
// width display columns wide (spec.md §4.6 "Column-name rendering"):
// centered when it fits, left-aligned and truncated with an ellipsis when
// the column is narrower than the name.
func RenderColumnName(name string, width int) string {
	if width <= 0 {
		return ""
	}
	nameWidth := runewidth.StringWidth(name)
	if nameWidth <= width {
		pad := width - nameWidth
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + name + strings.Repeat(" ", right)
	}
	truncated := truncateToWidth(name, width)
	pad := width - runewidth.StringWidth(truncated)
	if pad > 0 {
		truncated += strings.Repeat(" ", pad)
	}
	return truncated
}

// truncateToWidth shortens s to fit exactly within width display columns,
// cutting on grapheme-cluster boundaries (so a combining accent or
// multi-rune emoji is never split) and reserving the last column for an
// ellipsis when a cut was needed.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	budget := width - 1
	if budget <= 0 {
		return "…"
	}
	var b strings.Builder
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if used+w > budget {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String() + "…"
}
