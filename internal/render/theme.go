// Package render implements the layered rendering engine (spec.md §4.6):
// six logical viewports sharing one six-layer per-cell attribute
// resolver, column-name rendering, the ASCII→Unicode border upgrade, the
// scrollbar, and the status line.
package render

import "github.com/charmbracelet/lipgloss"

// Role names one of the attribute roles the priority resolver can pick.
// The naming mirrors spec.md §4.6's attribute names directly so the
// mapping from spec prose to code is one-to-one.
type Role int

const (
	RoleData Role = iota
	RoleLine
	RoleCursorData
	RoleCursorLine
	RoleBookmarkData
	RoleBookmarkLine
	RoleCursorBookmark
	RoleCursorPattern
	RoleSelection
	RoleSelectionCursor
	RoleCrossCursor
	RoleCrossCursorBorder
)

// Theme is a per-viewport palette: every attribute role resolves to one
// named style, following the teacher's `ui.styles.go` shape of
// package-level named styles keyed by semantic role rather than by raw
// color, generalized here to an instantiable struct since each viewport
// (LUC, FixRows, FixCols, Rows, Footer, RowNum) carries its own theme
// (spec.md §4.6: "a per-viewport theme controls default colors").
type Theme struct {
	Data             lipgloss.Style
	Line             lipgloss.Style
	CursorData       lipgloss.Style
	CursorLine       lipgloss.Style
	BookmarkData     lipgloss.Style
	BookmarkLine     lipgloss.Style
	CursorBookmark   lipgloss.Style
	CursorPattern    lipgloss.Style
	Selection        lipgloss.Style
	SelectionCursor  lipgloss.Style
	CrossCursor      lipgloss.Style
	CrossCursorBorder lipgloss.Style
}

// DefaultTheme mirrors the teacher's default palette (bright colors for
// emphasis, color 236 for the cursor/selection background, 240 for muted
// decoration) repurposed from action/protocol roles to cursor/bookmark/
// selection roles.
func DefaultTheme() Theme {
	cursorBG := lipgloss.Color("236")
	selectionBG := lipgloss.Color("24")
	muted := lipgloss.Color("240")
	bookmark := lipgloss.Color("11")
	pattern := lipgloss.Color("9")
	white := lipgloss.Color("15")

	return Theme{
		Data:              lipgloss.NewStyle(),
		Line:              lipgloss.NewStyle().Foreground(muted),
		CursorData:        lipgloss.NewStyle().Background(cursorBG).Foreground(white).Bold(true),
		CursorLine:        lipgloss.NewStyle().Background(cursorBG).Foreground(muted),
		BookmarkData:      lipgloss.NewStyle().Foreground(bookmark),
		BookmarkLine:      lipgloss.NewStyle().Foreground(bookmark),
		CursorBookmark:    lipgloss.NewStyle().Background(cursorBG).Foreground(bookmark).Bold(true),
		CursorPattern:     lipgloss.NewStyle().Background(pattern).Foreground(white).Bold(true),
		Selection:         lipgloss.NewStyle().Background(selectionBG).Foreground(white),
		SelectionCursor:   lipgloss.NewStyle().Background(selectionBG).Foreground(white).Bold(true).Underline(true),
		CrossCursor:       lipgloss.NewStyle().Background(cursorBG).Foreground(white).Bold(true).Underline(true),
		CrossCursorBorder: lipgloss.NewStyle().Background(cursorBG).Foreground(muted).Underline(true),
	}
}

// Style returns the style for role, applying found-pattern XOR (reverse
// video, the curses-era meaning of "XOR with an attribute") when xor is
// true.
func (t Theme) Style(role Role, xor bool) lipgloss.Style {
	var base lipgloss.Style
	switch role {
	case RoleData:
		base = t.Data
	case RoleLine:
		base = t.Line
	case RoleCursorData:
		base = t.CursorData
	case RoleCursorLine:
		base = t.CursorLine
	case RoleBookmarkData:
		base = t.BookmarkData
	case RoleBookmarkLine:
		base = t.BookmarkLine
	case RoleCursorBookmark:
		base = t.CursorBookmark
	case RoleCursorPattern:
		base = t.CursorPattern
	case RoleSelection:
		base = t.Selection
	case RoleSelectionCursor:
		base = t.SelectionCursor
	case RoleCrossCursor:
		base = t.CrossCursor
	case RoleCrossCursorBorder:
		base = t.CrossCursorBorder
	default:
		base = t.Data
	}
	if xor {
		base = base.Reverse(true)
	}
	return base
}
