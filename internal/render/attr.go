package render

import "github.com/dbrowse/tabpager/internal/detect"

// CellContext is everything the priority resolver needs to know about one
// display cell to pick its attribute (spec.md §4.6 "Per-cell attribute
// layering").
type CellContext struct {
	Classifier  detect.ClassifierChar
	InSelection bool
	RowCursor   bool // this line is under the row cursor
	ColCursor   bool // this display column is under the vertical cursor
	Bookmarked  bool
	FoundMatch  bool // this display column falls within a search match span
}

func (c CellContext) isBorder() bool {
	return c.Classifier == detect.ClassLeft || c.Classifier == detect.ClassRight || c.Classifier == detect.ClassInterior
}

// Resolve picks the cell's attribute role by walking spec.md §4.6's six
// layers in priority order, stopping at the first that applies. The
// pattern layer (4) is only reached once selection, cross-cursor and
// bookmark have all declined — matching the spec's "consulting, in
// priority order" framing as first-match, not cumulative layering.
func Resolve(c CellContext) Role {
	border := c.isBorder()
	switch {
	case c.InSelection:
		if c.RowCursor {
			return RoleSelectionCursor
		}
		return RoleSelection
	case c.RowCursor && c.ColCursor:
		if border {
			return RoleCrossCursorBorder
		}
		return RoleCrossCursor
	case c.Bookmarked:
		switch {
		case c.RowCursor:
			return RoleCursorBookmark
		case border:
			return RoleBookmarkLine
		default:
			return RoleBookmarkData
		}
	case c.FoundMatch && c.RowCursor:
		return RoleCursorPattern
	case c.RowCursor:
		if border {
			return RoleCursorLine
		}
		return RoleCursorData
	default:
		if border {
			return RoleLine
		}
		return RoleData
	}
}

// FoundXOR reports whether the pattern layer's XOR-with-found_str_attr
// should additionally be applied on top of the role Resolve returned.
// Only the two baseline roles (layer 5/6, no stronger highlight already
// chosen) are eligible — RoleCursorPattern already folds the match into a
// dedicated replacement style, and selection/cross-cursor/bookmark are
// stronger highlights the pattern layer never reaches (Resolve returns
// before checking FoundMatch in those cases).
func FoundXOR(c CellContext, role Role) bool {
	if !c.FoundMatch {
		return false
	}
	return role == RoleData || role == RoleLine
}
