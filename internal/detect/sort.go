package detect

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dbrowse/tabpager/internal/lines"
)

// OrderMap is a permutation of logical line indices: position i in the
// slice is the logical index iterated at position i, matching
// lines.Store.ApplyOrderMap's perm argument (spec.md's Line store: "a
// reordering map ... rewrites iteration order without touching storage").
type OrderMap []int

// Sort produces an OrderMap that orders store's data rows [d.FirstDataRow,
// d.LastDataRow] by the value under column col (0-based), leaving title,
// header and footer rows pinned in place. Rows that belong to the same
// multiline record (a CONTINUATION-marked row and the rows that continue
// it) move together, keyed on the record's first row — the column value a
// continuation row holds is a fragment of the previous row's cell, not an
// independent sort key. Sorting is stable. numeric requests a
// numeric-aware comparison: values that fail to parse as a number sort
// after every value that does, in both directions, matching
// `original_source/src/pretty-csv.c`'s numeric-column handling; desc
// reverses the comparison between two values that both parse, while two
// values that both fail to parse keep their input order.
func Sort(store *lines.Store, d *DataDesc, col int, numeric bool, desc bool) OrderMap {
	identity := make(OrderMap, store.Len())
	for i := range identity {
		identity[i] = i
	}
	if d == nil || d.Unstructured() || col < 0 || col >= d.Columns {
		return identity
	}
	if d.FirstDataRow > d.LastDataRow {
		return identity
	}

	groups := buildRecordGroups(store, d.FirstDataRow, d.LastDataRow)
	if len(groups) == 0 {
		return identity
	}

	cr := d.CRanges[col]
	keys := make([]string, len(groups))
	for gi, g := range groups {
		text, _, _ := store.Get(g[0])
		keys[gi] = cellKey(text, cr)
	}

	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return less(keys[order[i]], keys[order[j]], numeric, desc)
	})

	out := make(OrderMap, 0, store.Len())
	for i := 0; i < d.FirstDataRow; i++ {
		out = append(out, i)
	}
	for _, gi := range order {
		out = append(out, groups[gi]...)
	}
	for i := d.LastDataRow + 1; i < store.Len(); i++ {
		out = append(out, i)
	}
	return out
}

// buildRecordGroups partitions [first,last] into runs of logical indices
// that form one multiline record: a CONTINUATION-marked line pulls the
// following line into its group, transitively.
func buildRecordGroups(store *lines.Store, first, last int) [][]int {
	var groups [][]int
	i := first
	for i <= last {
		group := []int{i}
		_, info, ok := store.Get(i)
		for ok && info.Mask&lines.Continuation != 0 && i+1 <= last {
			i++
			group = append(group, i)
			_, info, ok = store.Get(i)
		}
		groups = append(groups, group)
		i++
	}
	return groups
}

func less(a, b string, numeric, desc bool) bool {
	if numeric {
		fa, oka := parseNumeric(a)
		fb, okb := parseNumeric(b)
		switch {
		case oka && okb:
			if fa == fb {
				return false
			}
			if desc {
				return fa > fb
			}
			return fa < fb
		case oka != okb:
			// A value that parses as a number always sorts before one that
			// doesn't, regardless of sort direction.
			return oka
		default:
			return false
		}
	}
	if a == b {
		return false
	}
	if desc {
		return a > b
	}
	return a < b
}

// cellKey extracts the sortable value of column cr on text: the column's
// display range, trimmed of surrounding spaces and of a trailing
// continuation marker ('+', '↵', '…') when the cell's content continues
// onto the next row — the marker is punctuation, not part of the value.
func cellKey(text string, cr CRange) string {
	start, end := byteRangeForDisplayCols(text, cr.XMin, cr.XMax)
	if end < start || start < 0 || end > len(text) {
		return ""
	}
	cell := strings.TrimRight(text[start:end], " ")
	for _, marker := range []string{"+", "↵", "…"} {
		cell = strings.TrimSuffix(cell, marker)
	}
	return strings.TrimSpace(cell)
}

func parseNumeric(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
