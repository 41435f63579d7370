package detect

import (
	"regexp"
	"strings"

	"github.com/dbrowse/tabpager/internal/lines"
)

// Options configures a detection pass. Most fields mirror the CLI flags
// named in spec.md §6.
type Options struct {
	// BorderHint forces a border type (-1 = auto-detect, matching
	// `--border=N`).
	BorderHint int
	// ForceUniBorder is carried for callers; Detect does not read it, so it
	// has no effect on detection or on the reported LineStyle.
	ForceUniBorder bool
	// ForceASCIIArt forces ASCII interpretation even when Unicode
	// box-drawing code points are present.
	ForceASCIIArt bool
	// CSV/TSV select the delimited-input detection path instead of the
	// border-scanning heuristic, for already-reformatted input.
	CSV bool
	TSV bool
}

// expandedRecordRe matches a "-[ RECORD n ]-" expanded-mode title line.
var expandedRecordRe = regexp.MustCompile(`^-+\[\s*RECORD\s+\d+\s*\]-+$`)

// Detect runs the single-pass structure detector described in spec.md §4.2
// and SPEC_FULL §12.4/§12.5, producing a DataDesc. It never fails: absent a
// recognizable border-head row, it returns an Unstructured DataDesc and the
// caller falls back to plain-text rendering (spec.md §4.2 "Contract").
func Detect(store *lines.Store, opts Options) *DataDesc {
	if opts.CSV {
		return detectDelimited(store, ',')
	}
	if opts.TSV {
		return detectDelimited(store, '\t')
	}
	return detectBordered(store, opts)
}

func detectBordered(store *lines.Store, opts Options) *DataDesc {
	n := store.Len()
	if n == 0 {
		return unstructured(store)
	}

	var borderIdx []int
	maxBytes := 0
	for i := 0; i < n; i++ {
		text, _, _ := store.Get(i)
		if len(text) > maxBytes {
			maxBytes = len(text)
		}
		if isBorderLine(text) {
			borderIdx = append(borderIdx, i)
		}
	}

	top, head, bottom := assignBorderRows(store, borderIdx)
	if head < 0 {
		u := unstructured(store)
		u.IsExpandedMode = detectExpandedMode(store, 0, n-1)
		return u
	}

	headLine, _, _ := store.Get(head)
	transl, bt := classifyHeadline(headLine)
	if opts.BorderHint >= 0 {
		bt = hintToBorderType(opts.BorderHint)
	}
	cranges := columnRanges(transl)
	if len(cranges) == 0 {
		return unstructured(store)
	}

	namesLine := -1
	var namesText string
	if head-1 >= 0 {
		namesLine = head - 1
		namesText, _, _ = store.Get(namesLine)
	}
	cranges = fillNames(cranges, namesText)

	structureStart := top
	if structureStart < 0 {
		structureStart = namesLine
	}
	if structureStart < 0 {
		structureStart = head
	}
	titleRows := countTitleRows(store, structureStart)

	firstDataRow := head + 1
	lastRow := n - 1

	lastDataRow, footerRow := detectFooter(store, bt, bottom, firstDataRow, lastRow, len(transl))

	hasML := markMultilines(store, cranges, firstDataRow, lastDataRow)

	expanded := detectExpandedMode(store, firstDataRow, lastDataRow)

	style := lineStyleOf(headLine)
	if opts.ForceASCIIArt {
		style = StyleASCII
	}

	desc := &DataDesc{
		TitleRows:       titleRows,
		BorderTopRow:    top,
		BorderHeadRow:   head,
		BorderBottomRow: bottom,
		FirstDataRow:    firstDataRow,
		LastDataRow:     lastDataRow,
		LastRow:         lastRow,
		FooterRow:       footerRow,
		BorderType:      bt,
		LineStyle:       style,
		IsExpandedMode:  expanded,
		MaxX:            len(transl),
		MaxBytes:        maxBytes,
		HeadlineTransl:  transl,
		Columns:         len(cranges),
		CRanges:         cranges,
		NamesLine:       namesLine,
		HasMultilines:   hasML,
	}
	return desc
}

func unstructured(store *lines.Store) *DataDesc {
	maxBytes := 0
	for i := 0; i < store.Len(); i++ {
		text, _, _ := store.Get(i)
		if len(text) > maxBytes {
			maxBytes = len(text)
		}
	}
	last := store.Len() - 1
	return &DataDesc{
		BorderTopRow:    -1,
		BorderHeadRow:   -1,
		BorderBottomRow: -1,
		FirstDataRow:    0,
		LastDataRow:     last,
		LastRow:         last,
		FooterRow:       -1,
		BorderType:      BorderNone,
		LineStyle:       StyleASCII,
		MaxBytes:        maxBytes,
		NamesLine:       -1,
	}
}

// assignBorderRows disambiguates the collected border-line indices into
// (top, head, bottom), per spec.md §4.2 rule 1, generalized to also handle
// tables with no top border at all (a names line sits directly above the
// first border candidate).
func assignBorderRows(store *lines.Store, idx []int) (top, head, bottom int) {
	switch len(idx) {
	case 0:
		return -1, -1, -1
	case 1:
		return -1, idx[0], -1
	default:
		b0 := idx[0]
		precededByNames := false
		if b0 > 0 {
			if prev, _, ok := store.Get(b0 - 1); ok && strings.TrimSpace(prev) != "" && !isBorderLine(prev) {
				precededByNames = true
			}
		}
		last := idx[len(idx)-1]
		// A gap of exactly one line between the first two candidates looks
		// like "top border, names line, head separator" even when the line
		// above the first candidate also happens to be non-blank (e.g. a
		// title row) — only treat b0 as a head row standing alone when the
		// gap pattern doesn't already explain it as a top border.
		if precededByNames && idx[1]-b0 != 2 {
			return -1, b0, last
		}
		if len(idx) == 2 {
			return b0, idx[1], -1
		}
		return b0, idx[1], last
	}
}

func hintToBorderType(hint int) BorderType {
	switch hint {
	case 0:
		return BorderNone
	case 1:
		return BorderOuter
	default:
		return BorderFull
	}
}

// countTitleRows counts non-blank lines strictly before structureStart
// (spec.md §3 "title_rows").
func countTitleRows(store *lines.Store, structureStart int) int {
	count := 0
	for i := 0; i < structureStart; i++ {
		text, _, ok := store.Get(i)
		if !ok {
			break
		}
		if strings.TrimSpace(text) != "" {
			count++
		}
	}
	return count
}

// detectFooter implements spec.md §4.2 rule 4.
func detectFooter(store *lines.Store, bt BorderType, bottomRow, firstDataRow, lastRow, headerWidth int) (lastDataRow, footerRow int) {
	switch bt {
	case BorderFull:
		if bottomRow >= 0 {
			lastDataRow = bottomRow - 1
			if bottomRow+1 <= lastRow {
				footerRow = bottomRow + 1
			} else {
				footerRow = -1
			}
			return lastDataRow, footerRow
		}
		fallthrough
	case BorderOuter:
		// First post-data line beginning with a non-space character is the
		// footer.
		for i := firstDataRow; i <= lastRow; i++ {
			text, _, ok := store.Get(i)
			if !ok {
				break
			}
			if len(text) > 0 && text[0] != ' ' && text[0] != '\t' {
				return i - 1, i
			}
		}
		return lastRow, -1
	default: // BorderNone with columns > 0 (SQLcl-style gap-derived header)
		if lastRow < firstDataRow {
			return lastRow, -1
		}
		last, _, ok := store.Get(lastRow)
		if ok && displayWidth(last) == headerWidth {
			return lastRow, -1
		}
		return lastRow - 1, lastRow
	}
}

// markMultilines scans the body for CONTINUATION lines (spec.md §4.2 rule
// 5). The marker is column-scoped, not line-scoped: a cell whose content
// didn't fit its column ends with a trailing '+', '↵' (U+21B5) or '…'
// (U+2026) as the last non-space character within that column's own
// display range, not necessarily at the end of the whole line (any other
// column on the same row keeps its own, unrelated content). A row is
// CONTINUATION if any one of its columns ends that way.
func markMultilines(store *lines.Store, cranges []CRange, first, last int) bool {
	found := false
	record := 0
	for i := first; i <= last; i++ {
		text, _, ok := store.Get(i)
		if !ok {
			break
		}
		cont := rowContinues(text, cranges)
		if cont {
			store.SetContinuation(i, true)
			found = true
		}
		store.SetRecordOffset(i, record)
		if cont {
			record++
		} else {
			record = 0
		}
	}
	return found
}

// rowContinues reports whether any column of text ends in a continuation
// marker (trailing spaces within the column's own range ignored).
func rowContinues(text string, cranges []CRange) bool {
	for _, cr := range cranges {
		start, end := byteRangeForDisplayCols(text, cr.XMin, cr.XMax)
		if end < start || start > len(text) || end > len(text) {
			continue
		}
		cell := strings.TrimRight(text[start:end], " ")
		if cell == "" {
			continue
		}
		r := []rune(cell)
		last := r[len(r)-1]
		if last == '+' || last == '↵' || last == '…' {
			return true
		}
	}
	return false
}

func detectExpandedMode(store *lines.Store, first, last int) bool {
	for i := first; i <= last; i++ {
		text, _, ok := store.Get(i)
		if !ok {
			break
		}
		if expandedRecordRe.MatchString(strings.TrimSpace(text)) {
			return true
		}
	}
	return false
}

// detectDelimited handles already-reformatted CSV/TSV input (spec.md §4.2
// "Inputs ... format flags"): the first line is the header, split at delim
// occurrences; there is no border row.
func detectDelimited(store *lines.Store, delim byte) *DataDesc {
	n := store.Len()
	if n == 0 {
		return unstructured(store)
	}
	header, _, _ := store.Get(0)
	w := displayWidth(header)
	transl := make([]byte, w)
	for i := range transl {
		transl[i] = byte(ClassData)
	}
	cells := explode(header)
	for _, c := range cells {
		if c.r == rune(delim) {
			for k := 0; k < c.width; k++ {
				if c.col+k < w {
					transl[c.col+k] = byte(ClassInterior)
				}
			}
		}
	}
	cranges := columnRanges(string(transl))
	cranges = fillNames(cranges, header)

	maxBytes := 0
	for i := 0; i < n; i++ {
		text, _, _ := store.Get(i)
		if len(text) > maxBytes {
			maxBytes = len(text)
		}
	}

	lastRow := n - 1
	return &DataDesc{
		BorderTopRow:    -1,
		BorderHeadRow:   -1,
		BorderBottomRow: -1,
		FirstDataRow:    1,
		LastDataRow:     lastRow,
		LastRow:         lastRow,
		FooterRow:       -1,
		BorderType:      BorderNone,
		LineStyle:       StyleASCII,
		MaxX:            w,
		MaxBytes:        maxBytes,
		HeadlineTransl:  string(transl),
		Columns:         len(cranges),
		CRanges:         cranges,
		NamesLine:       0,
	}
}
