package render

import "github.com/dbrowse/tabpager/internal/detect"

// RowKind distinguishes which of a table's border rows a classifier
// string belongs to, since the glyph an `L`/`I`/`R` column upgrades to
// depends on whether the row is a head separator, the top border, or the
// bottom border (spec.md §4.6 "ASCII → Unicode border upgrade").
type RowKind int

const (
	RowHead RowKind = iota
	RowTop
	RowBottom
	RowPlain // an ordinary data/footer row: only `d`-with-'-' ever upgrades
)

// UpgradeBorderChar looks up the box-drawing replacement for rawChar at a
// column classified as cls on a row of kind row. It returns rawChar
// unchanged for any combination the upgrade table doesn't cover (not an
// ASCII border glyph, or a data column).
func UpgradeBorderChar(cls detect.ClassifierChar, rawChar rune, row RowKind) rune {
	switch cls {
	case detect.ClassData:
		if rawChar == '-' {
			return '─'
		}
		return rawChar
	case detect.ClassLeft:
		switch rawChar {
		case '+', '|':
			switch row {
			case RowTop:
				return '┌'
			case RowBottom:
				return '└'
			default:
				return '├'
			}
		}
	case detect.ClassInterior:
		if rawChar == '+' {
			switch row {
			case RowTop:
				return '┬'
			case RowBottom:
				return '┴'
			default:
				return '┼'
			}
		}
	case detect.ClassRight:
		switch rawChar {
		case '+', '|':
			switch row {
			case RowTop:
				return '┐'
			case RowBottom:
				return '┘'
			default:
				return '┤'
			}
		}
	}
	return rawChar
}
