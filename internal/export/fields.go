package export

import (
	"strings"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/lines"
)

// NullPolicy controls how a reassembled field's text is recognized as SQL
// NULL rather than an ordinary (possibly empty) string (spec.md §4.7 "NULL
// detection"), mirroring `csv_format`'s three checks in
// `original_source/src/export.c`: an empty field under empty_string_is_null,
// a field matching the configured nullstr, or a field that is the single
// character U+2205 (∅).
type NullPolicy struct {
	EmptyStringIsNull bool
	NullStr           string
}

func (p NullPolicy) isNull(trimmed string) bool {
	if trimmed == "∅" {
		return true
	}
	if p.NullStr != "" && trimmed == p.NullStr {
		return true
	}
	return p.EmptyStringIsNull && trimmed == ""
}

// record is one logical output row: the reassembled field values for the
// selected columns, already NULL-classified.
type record struct {
	values []string
	isNull []bool
}

// selectedColumns returns the CRanges indices overlapping [xmin, xmax], or
// every column when xmin is -1 (no restriction).
func selectedColumns(cranges []detect.CRange, xmin, xmax int) []int {
	if xmin < 0 {
		out := make([]int, len(cranges))
		for i := range cranges {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, len(cranges))
	for i, cr := range cranges {
		if cr.XMax >= xmin && cr.XMin <= xmax {
			out = append(out, i)
		}
	}
	return out
}

// continuationMarkers are the trailing glyphs a wrapped/continued cell's
// visible text carries, in both the ASCII and Unicode border styles — the
// same set `internal/detect`'s sort key building trims (spec.md's single
// worked multiline scenario shows plain concatenation across a
// continuation join, with no distinction between a hard line break and a
// word-wrap point; unlike `ExtStrAppendLine` in
// `original_source/src/infra.c`, which inserts a real newline for a "+"/"↵"
// break and nothing for a "."/"…" word-wrap, the detector here only ever
// records a single Continuation bit per row, so export reassembly can't
// recover which kind a given break was and follows the simpler contract
// the worked scenario actually specifies).
var continuationMarkers = []string{"+", "↵", "…"}

// trimContinuationMarker strips a trailing continuation glyph (and the
// padding around it) from one physical line's slice of a column, leaving
// the bare text to concatenate with the next physical line's slice.
func trimContinuationMarker(s string) string {
	s = strings.TrimRight(s, " ")
	for _, m := range continuationMarkers {
		if strings.HasSuffix(s, m) {
			return strings.TrimRight(strings.TrimSuffix(s, m), " ")
		}
	}
	return s
}

// storeAt fetches the (text, info) pair at iteration-order position pos
// via a fresh single-shot iterator, honoring any installed OrderMap.
func storeAt(store *lines.Store, pos int) (string, lines.Info, bool) {
	text, info, _, ok := store.IterFrom(pos).Next()
	return text, info, ok
}

// groupContinuations merges consecutive rowSpecs into one logical record
// per multiline cell: a run of rows is merged while each row but the last
// carries the Continuation bit and the next rowSpec is truly the next
// position (never true across a gap introduced by MarkedLines/
// SearchedLines/Selected filtering, which is the correct behavior — a
// filtered-out row in the middle of a wrapped cell means the filter broke
// the record apart, so it is not reassembled across the gap).
func groupContinuations(store *lines.Store, d *detect.DataDesc, rows []rowSpec) [][]rowSpec {
	if !d.HasMultilines {
		out := make([][]rowSpec, len(rows))
		for i, r := range rows {
			out[i] = []rowSpec{r}
		}
		return out
	}
	var groups [][]rowSpec
	for i := 0; i < len(rows); {
		group := []rowSpec{rows[i]}
		_, info, ok := storeAt(store, rows[i].pos)
		for ok && info.Mask&lines.Continuation != 0 && i+1 < len(rows) && rows[i+1].pos == rows[i].pos+1 {
			i++
			group = append(group, rows[i])
			_, info, ok = storeAt(store, rows[i].pos)
		}
		groups = append(groups, group)
		i++
	}
	return groups
}

// buildRecords reassembles rows into records: each record's field values
// are the selected columns' text concatenated across every physical line
// of a multiline group, then right-trimmed (and, for TsvC, had any
// embedded newline collapsed to a space) before NULL classification.
func buildRecords(store *lines.Store, d *detect.DataDesc, rows []rowSpec, collapseNewlines bool, policy NullPolicy) []record {
	groups := groupContinuations(store, d, rows)
	out := make([]record, 0, len(groups))
	for _, g := range groups {
		cols := selectedColumns(d.CRanges, g[0].xmin, g[0].xmax)
		values := make([]string, len(cols))
		for idx, rs := range g {
			text, _, ok := storeAt(store, rs.pos)
			if !ok {
				continue
			}
			last := idx == len(g)-1
			for ci, col := range cols {
				cr := d.CRanges[col]
				start, end := detect.ByteRangeForDisplayCols(text, cr.XMin, cr.XMax)
				chunk := text[start:end]
				if !last {
					chunk = trimContinuationMarker(chunk)
				}
				values[ci] += chunk
			}
		}
		rec := record{values: values, isNull: make([]bool, len(values))}
		for i, v := range rec.values {
			v = strings.TrimRight(v, " ")
			if collapseNewlines {
				v = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(v)
			}
			rec.values[i] = v
			rec.isNull[i] = policy.isNull(v)
		}
		out = append(out, rec)
	}
	return out
}
