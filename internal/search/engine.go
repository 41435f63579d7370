// Package search implements the incremental substring search engine
// (spec.md §4.3): pattern matching with three case policies, optional
// row/column scoping, per-line FOUND bit caching on the line store, and the
// no-wraparound next/prev traversal the pager's search bar drives.
package search

import (
	"strings"
	"unicode"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/mattn/go-runewidth"
)

// CasePolicy selects how the pattern is matched against line text.
type CasePolicy int

const (
	// CaseSensitive matches bytes exactly.
	CaseSensitive CasePolicy = iota
	// IgnoreCase folds both sides to lower case before comparing.
	IgnoreCase
	// IgnoreLowerCase is smart-case: the pattern folds to lower case unless
	// it itself contains an upper-case rune, in which case matching becomes
	// case-sensitive.
	IgnoreLowerCase
)

// Match is one occurrence of the current pattern.
type Match struct {
	Line       int
	Byte       int
	DisplayCol int
}

// Engine holds the current pattern, its resolved fold policy, and the
// optional row/column scope applied when searching "in selection".
type Engine struct {
	store   *lines.Store
	pattern string
	fold    bool

	scoped         bool
	rowMin, rowMax int
	colMin, colMax int
}

// New returns an Engine with no pattern and no scope, operating over store.
func New(store *lines.Store) *Engine {
	return &Engine{store: store}
}

// SetPattern installs term as the active pattern, resolves policy to a
// fold/no-fold decision, and clears every line's search bits (spec.md §4.3
// "Caching": "On set_pattern, all line-info search bits are cleared").
func (e *Engine) SetPattern(term string, policy CasePolicy) {
	e.pattern = term
	switch policy {
	case CaseSensitive:
		e.fold = false
	case IgnoreCase:
		e.fold = true
	case IgnoreLowerCase:
		e.fold = !containsUpper(term)
	}
	e.store.ClearSearchBitsAll()
}

// Pattern returns the currently installed pattern ("" if none).
func (e *Engine) Pattern() string {
	return e.pattern
}

// Clear removes the active pattern and its cached bits.
func (e *Engine) Clear() {
	e.pattern = ""
	e.store.ClearSearchBitsAll()
}

// SetScope restricts matches to rows [rowMin, rowMax] and display columns
// [colMin, colMax], both inclusive ("search in selection").
func (e *Engine) SetScope(rowMin, rowMax, colMin, colMax int) {
	e.scoped = true
	e.rowMin, e.rowMax = rowMin, rowMax
	e.colMin, e.colMax = colMin, colMax
}

// ClearScope restores whole-document, whole-width searching.
func (e *Engine) ClearScope() {
	e.scoped = false
	e.rowMin, e.rowMax, e.colMin, e.colMax = -1, -1, -1, -1
}

func containsUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// MatchesOnLine returns every in-scope match on line, leftmost first,
// caching FOUND_PATTERN/FOUND_PATTERN_MULTI and start_char on the line
// store the first time the line is scanned (spec.md §4.3 "Caching"). A
// line with zero matches is not itself cached, since the info mask has no
// "scanned, nothing found" bit to record — the rendering engine's redraw
// therefore re-scans empty lines every time, a scoped stdlib-only
// simplification of the O(1)-per-visible-line target the original
// describes.
func (e *Engine) MatchesOnLine(line int) []Match {
	if e.pattern == "" {
		return nil
	}
	if !e.rowInScope(line) {
		return nil
	}
	text, _, ok := e.store.Get(line)
	if !ok {
		return nil
	}
	var out []Match
	for _, off := range findMatches(text, e.pattern, e.fold) {
		col := displayColumnOf(text, off)
		if !e.colInScope(col) {
			continue
		}
		out = append(out, Match{Line: line, Byte: off, DisplayCol: col})
	}
	if len(out) > 0 {
		e.store.SetFound(line, out[0].DisplayCol, len(out) >= 2)
	}
	return out
}

func (e *Engine) rowInScope(line int) bool {
	if !e.scoped || e.rowMin < 0 {
		return true
	}
	return line >= e.rowMin && line <= e.rowMax
}

func (e *Engine) colInScope(col int) bool {
	if !e.scoped || e.colMin < 0 {
		return true
	}
	return col >= e.colMin && col <= e.colMax
}

func (e *Engine) firstLine() int {
	if e.scoped && e.rowMin >= 0 {
		return e.rowMin
	}
	return 0
}

func (e *Engine) lastLine() int {
	if e.scoped && e.rowMax >= 0 {
		return e.rowMax
	}
	return e.store.Len() - 1
}

// SearchNext implements spec.md §4.3's next-match policy: if fromLine is
// already a found line, it resumes right after fromByte on that same line;
// otherwise it starts at the beginning of the next line. It never wraps —
// once the scope is exhausted ok is false.
func (e *Engine) SearchNext(fromLine, fromByte int) (m Match, ok bool) {
	if e.pattern == "" {
		return Match{}, false
	}
	start := fromLine
	if e.isFoundLine(fromLine) {
		if mm, found := e.firstMatchAfter(fromLine, fromByte); found {
			return mm, true
		}
		start = fromLine + 1
	} else {
		start = fromLine + 1
	}
	for line := start; line <= e.lastLine(); line++ {
		if mm, found := e.firstMatchAfter(line, -1); found {
			return mm, true
		}
	}
	return Match{}, false
}

// SearchPrev implements spec.md §4.3's previous-match policy: if fromLine
// is already a found line, it resumes with the rightmost match strictly
// before fromByte on that line; otherwise — and once that line is
// exhausted — it scans earlier lines, taking each one's rightmost match.
// It never wraps.
func (e *Engine) SearchPrev(fromLine, fromByte int) (m Match, ok bool) {
	if e.pattern == "" {
		return Match{}, false
	}
	start := fromLine
	if e.isFoundLine(fromLine) {
		if mm, found := e.lastMatchBefore(fromLine, fromByte); found {
			return mm, true
		}
		start = fromLine - 1
	} else {
		start = fromLine - 1
	}
	for line := start; line >= e.firstLine(); line-- {
		if mm, found := e.lastMatchBefore(line, -1); found {
			return mm, true
		}
	}
	return Match{}, false
}

func (e *Engine) isFoundLine(line int) bool {
	_, info, ok := e.store.Get(line)
	return ok && info.Mask&lines.FoundPattern != 0
}

func (e *Engine) firstMatchAfter(line, afterByte int) (Match, bool) {
	for _, m := range e.MatchesOnLine(line) {
		if m.Byte > afterByte {
			return m, true
		}
	}
	return Match{}, false
}

func (e *Engine) lastMatchBefore(line, beforeByte int) (Match, bool) {
	matches := e.MatchesOnLine(line)
	for i := len(matches) - 1; i >= 0; i-- {
		if beforeByte < 0 || matches[i].Byte < beforeByte {
			return matches[i], true
		}
	}
	return Match{}, false
}

// ColumnSearch implements column_search(term): it scans the names of d's
// columns (read from namesLine, the row fillNames drew them from) for a
// case-insensitive substring match, returning the index of the first
// column whose name contains term.
func ColumnSearch(d *detect.DataDesc, namesLine, term string) (int, bool) {
	if d == nil || d.Unstructured() || term == "" {
		return -1, false
	}
	needle := strings.ToLower(term)
	for i, cr := range d.CRanges {
		if cr.NameSize <= 0 || cr.NameOffset+cr.NameSize > len(namesLine) {
			continue
		}
		name := namesLine[cr.NameOffset : cr.NameOffset+cr.NameSize]
		if strings.Contains(strings.ToLower(name), needle) {
			return i, true
		}
	}
	return -1, false
}

// findMatches returns the byte offsets, left to right, of every
// occurrence of pattern in text, folding case first when fold is true.
// Matching is defined over Unicode code points, not bytes directly
// (spec.md §4.3: "byte-identical after folding both sides one code point
// at a time").
func findMatches(text, pattern string, fold bool) []int {
	if pattern == "" {
		return nil
	}
	tr := []rune(text)
	pr := []rune(pattern)
	n, m := len(tr), len(pr)
	if m == 0 || m > n {
		return nil
	}
	offsets := make([]int, n+1)
	b := 0
	for i, r := range tr {
		offsets[i] = b
		b += len(string(r))
	}
	offsets[n] = b

	var out []int
	for i := 0; i+m <= n; i++ {
		match := true
		for j := 0; j < m; j++ {
			a, c := tr[i+j], pr[j]
			if fold {
				a, c = unicode.ToLower(a), unicode.ToLower(c)
			}
			if a != c {
				match = false
				break
			}
		}
		if match {
			out = append(out, offsets[i])
		}
	}
	return out
}

// displayColumnOf measures the display width of text[:byteOffset], giving
// the start_char spec.md §4.3 records alongside every match.
func displayColumnOf(text string, byteOffset int) int {
	col := 0
	for i, r := range text {
		if i >= byteOffset {
			break
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		col += w
	}
	return col
}
