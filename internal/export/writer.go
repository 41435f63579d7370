// Package export renders the lines held by internal/lines into one of the
// output formats spec.md §4.7 defines, restricted to a row/column Scope,
// for writing to a file, a pipe destination, or the system clipboard.
package export

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/dbrowse/tabpager/internal/mark"
	"github.com/dbrowse/tabpager/internal/nav"
)

// Request describes one export invocation (spec.md §4.7 "Inputs").
type Request struct {
	Scope     Scope
	N         int // row count for TopN/BottomN, ignored otherwise
	Format    Format
	TableName string // required when Format.isInsert()
	Policy    NullPolicy
}

// Export resolves req's scope against the current store/detection/
// navigation/selection state and renders the result, ready to hand to a
// Destination.
func Export(store *lines.Store, d *detect.DataDesc, nv *nav.State, mk *mark.State, req Request) (string, error) {
	if req.Format.isInsert() && strings.TrimSpace(req.TableName) == "" {
		return "", errNoTableName
	}

	scope := req.Scope
	format := req.Format
	if scope == ExtendedCurrentLine {
		format = CopyLineExtended
	}

	rows, err := selectRows(store, d, nv, mk, scope, req.N)
	if err != nil {
		return "", err
	}

	if format == CopyLineExtended {
		return renderExtendedLine(store, d, rows[0], req.Policy)
	}
	if format == Text {
		return renderText(store, rows), nil
	}

	records := buildRecords(store, d, rows, format == TsvC, req.Policy)

	switch format {
	case Csv:
		return renderDelimited(records, ",", csvOut), nil
	case TsvC:
		return renderDelimited(records, "\t", tsvcOut), nil
	case PipeSeparated:
		return renderDelimited(records, "|", pipeOut), nil
	case SqlValues:
		return renderSQLValues(records), nil
	case Insert, InsertWithComments:
		names := columnNames(store, d, selectedColumns(d.CRanges, rows[0].xmin, rows[0].xmax))
		return renderInsert(records, names, req.TableName, format == InsertWithComments), nil
	default:
		return "", errors.Errorf("export: unsupported format %d", int(format))
	}
}

// renderText is the Text format's own code path: every selected row's raw
// text, cropped to its column restriction if any, one per line. It never
// goes through record reassembly — spec.md describes Text as a verbatim
// copy of what is on screen, continuation lines included as their own
// lines rather than merged.
func renderText(store *lines.Store, rows []rowSpec) string {
	var b strings.Builder
	for _, rs := range rows {
		text, _, ok := storeAt(store, rs.pos)
		if !ok {
			continue
		}
		if rs.xmin >= 0 {
			start, end := detect.ByteRangeForDisplayCols(text, rs.xmin, rs.xmax)
			text = text[start:end]
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

func renderDelimited(records []record, sep string, out func(string, bool) string) string {
	var b strings.Builder
	for _, rec := range records {
		fields := make([]string, len(rec.values))
		for i, v := range rec.values {
			fields[i] = out(v, rec.isNull[i])
		}
		b.WriteString(strings.Join(fields, sep))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderSQLValues(records []record) string {
	var b strings.Builder
	for _, rec := range records {
		fields := make([]string, len(rec.values))
		for i, v := range rec.values {
			fields[i] = sqlOut(v, rec.isNull[i])
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(fields, ","))
		b.WriteString(")\n")
	}
	return b.String()
}

// renderInsert emits one `INSERT INTO table(...) VALUES (...);` statement
// per record. withComments additionally breaks columns names and values
// one per line, each name trailed by a `-- N` comment and each value by a
// `-- N colname` comment, mirroring the
// CLIPBOARD_FORMAT_INSERT2 layout in `original_source/src/export.c`.
func renderInsert(records []record, names []string, table string, withComments bool) string {
	quotedTable := quoteIdentifier(table)
	haveNames := len(names) > 0
	for _, n := range names {
		if n == "" {
			haveNames = false
			break
		}
	}
	quotedNames := make([]string, len(names))
	for i, n := range names {
		quotedNames[i] = quoteIdentifier(n)
	}

	var b strings.Builder
	for _, rec := range records {
		b.WriteString("INSERT INTO ")
		b.WriteString(quotedTable)
		switch {
		case !haveNames:
			// No header row to draw names from — the original skips the
			// column-name parenthesis entirely in this case rather than
			// emitting an empty or placeholder list.
			if withComments {
				b.WriteString("\n   VALUES(")
			} else {
				b.WriteString(" VALUES(")
			}
		case withComments:
			b.WriteByte('(')
			for i, n := range quotedNames {
				if i > 0 {
					b.WriteString(",\t\t -- ")
					b.WriteString(strconv.Itoa(i))
					b.WriteByte('\n')
				}
				b.WriteString(n)
			}
			b.WriteString(")\t\t -- ")
			b.WriteString(strconv.Itoa(len(quotedNames)))
			b.WriteString("\n   VALUES(")
		default:
			b.WriteByte('(')
			b.WriteString(strings.Join(quotedNames, ", "))
			b.WriteString(") VALUES(")
		}
		for i, v := range rec.values {
			field := sqlOut(v, rec.isNull[i])
			if withComments {
				if i > 0 {
					b.WriteString(",\t\t -- ")
					b.WriteString(strconv.Itoa(i))
					b.WriteByte(' ')
					if i-1 < len(names) {
						b.WriteString(names[i-1])
					}
					b.WriteString("\n          ")
				}
				b.WriteString(field)
			} else {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(field)
			}
		}
		if withComments {
			b.WriteString(");\t\t -- ")
			b.WriteString(strconv.Itoa(len(rec.values)))
			b.WriteByte(' ')
			if len(names) > 0 {
				b.WriteString(names[len(names)-1])
			}
			b.WriteByte('\n')
		} else {
			b.WriteString(");\n")
		}
	}
	return b.String()
}

// renderExtendedLine implements CopyLineExtended (ExtendedCurrentLine):
// one `colname,value` CSV-quoted line per selected column of the current
// row, mirroring copy_line_extended's vertical key-value dump in
// `original_source/src/export.c`.
func renderExtendedLine(store *lines.Store, d *detect.DataDesc, rs rowSpec, policy NullPolicy) (string, error) {
	text, _, ok := storeAt(store, rs.pos)
	if !ok {
		return "", errNoData
	}
	cols := selectedColumns(d.CRanges, rs.xmin, rs.xmax)
	names := columnNames(store, d, cols)
	var b strings.Builder
	for i, col := range cols {
		cr := d.CRanges[col]
		start, end := detect.ByteRangeForDisplayCols(text, cr.XMin, cr.XMax)
		value := strings.TrimRight(text[start:end], " ")
		isNull := policy.isNull(value)
		b.WriteString(csvOut(names[i], false))
		b.WriteByte(',')
		b.WriteString(csvOut(value, isNull))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// columnNames extracts the trimmed header text for the given column
// indices from d's names line, the same NameOffset/NameSize slicing
// ColumnSearch uses in internal/search. An index with no recorded name (or
// no names line at all) contributes an empty string.
func columnNames(store *lines.Store, d *detect.DataDesc, cols []int) []string {
	var namesLine string
	if d.NamesLine >= 0 {
		namesLine, _, _ = store.Get(d.NamesLine)
	}
	out := make([]string, len(cols))
	for i, col := range cols {
		cr := d.CRanges[col]
		if cr.NameSize <= 0 || cr.NameOffset+cr.NameSize > len(namesLine) {
			continue
		}
		out[i] = strings.TrimSpace(namesLine[cr.NameOffset : cr.NameOffset+cr.NameSize])
	}
	return out
}
