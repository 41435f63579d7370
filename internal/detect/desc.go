// Package detect implements structure detection ("headline translation"):
// a single pass over loaded lines that infers which row is the header
// separator, the top/bottom borders, where column boundaries fall, and
// produces the DataDesc consumed by every other component.
package detect

// ClassifierChar is one of the four per-display-column roles a headline
// translation string assigns.
type ClassifierChar byte

const (
	// ClassData marks a data/decoration column (dash, horizontal rule, or
	// any character that is not a vertical border/junction glyph).
	ClassData ClassifierChar = 'd'
	// ClassLeft marks the leftmost border column.
	ClassLeft ClassifierChar = 'L'
	// ClassRight marks the rightmost border column.
	ClassRight ClassifierChar = 'R'
	// ClassInterior marks an interior column separator.
	ClassInterior ClassifierChar = 'I'
)

// BorderType enumerates the detected border style.
type BorderType int

const (
	// BorderNone means either no border row was found at all (unstructured
	// text) or the head border row has no junction glyph (gap mode, e.g.
	// `---------- ---`), which still yields columns.
	BorderNone BorderType = iota
	// BorderOuter means the head border row has a vertical/junction glyph
	// that does not frame both ends of the row (e.g. `---+----`).
	BorderOuter
	// BorderFull means the head border row has a vertical/junction glyph at
	// both its first and its last column.
	BorderFull
)

// LineStyle distinguishes ASCII-art borders from Unicode box-drawing ones.
type LineStyle byte

const (
	// StyleASCII uses '-', '|', '+'.
	StyleASCII LineStyle = 'a'
	// StyleUnicode uses box-drawing code points.
	StyleUnicode LineStyle = 'u'
)

// CRange is one column's display-column extent plus where its name lives
// in the names line.
type CRange struct {
	XMin, XMax int
	NameOffset int // byte offset into the names line
	NameSize   int // byte size of the name
	NameWidth  int // display width of the (trimmed) name
}

// DataDesc is the immutable (except for line-info bits) result of
// structure detection.
type DataDesc struct {
	TitleRows int

	BorderTopRow    int // -1 if none
	BorderHeadRow   int // -1 if none
	BorderBottomRow int // -1 if none

	FirstDataRow int
	LastDataRow  int
	LastRow      int

	FooterRow int // -1 if none

	BorderType BorderType
	LineStyle  LineStyle

	IsExpandedMode bool

	MaxX      int // display columns wide
	MaxBytes  int // widest line in bytes

	HeadlineTransl string
	Columns        int
	CRanges        []CRange

	NamesLine int // logical index of the header-names line, -1 if none

	OrderMap []int

	HasMultilines bool
}

// Unstructured returns true when detection found no headline at all: the
// file is rendered as plain text (contract in spec.md §4.2).
func (d *DataDesc) Unstructured() bool {
	return d.Columns == 0
}

// ColumnAt returns the index of the column containing display column x, or
// -1 if x does not fall within any column's extent.
func (d *DataDesc) ColumnAt(x int) int {
	for i, cr := range d.CRanges {
		if x >= cr.XMin && x <= cr.XMax {
			return i
		}
	}
	return -1
}
