package export

import "strings"

// csvField renders one CSV field (spec.md §4.7 "Csv"): quoted with doubled
// internal quotes iff it contains a `"`, a comma, a tab, a CR or an LF.
func csvField(s string) string {
	if !strings.ContainsAny(s, "\",\t\r\n") {
		return s
	}
	return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
}

// tsvcField renders one TsvC field: embedded newlines collapse to a single
// space first (a tab-separated field cannot carry a literal line break),
// then the narrower trigger set (no comma) decides whether to quote.
func tsvcField(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	if !strings.ContainsAny(s, "\"\t") {
		return s
	}
	return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
}

// pipeField renders one PipeSeparated field: trimmed, never quoted.
func pipeField(s string) string {
	return strings.TrimSpace(s)
}

// sqlLiteral renders one SqlValues field (`quote_sql_literal`,
// `original_source/src/export.c`): the bare keywords NULL/null pass through
// unquoted regardless of the configured NULL policy (a data value that
// happens to spell the keyword is indistinguishable from the keyword
// itself, and the original makes the same call); a value made up of only
// digits and at most one `.` passes through unquoted as a numeric literal;
// everything else is single-quoted with internal `'` doubled.
func sqlLiteral(s string) string {
	if s == "NULL" || s == "null" {
		return s
	}
	if isPlainSQLNumber(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// isPlainSQLNumber reports whether s is composed only of decimal digits and
// at most one '.', matching `quote_sql_literal`'s character walk exactly
// (no sign is accepted, and a lone "." counts as valid — preserved as-is
// for fidelity to the original rather than "fixed").
func isPlainSQLNumber(s string) bool {
	if s == "" {
		return false
	}
	seenDot := false
	for _, r := range s {
		if r == '.' {
			if seenDot {
				return false
			}
			seenDot = true
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// csvOut renders a field for the Csv format given its NULL-ness: a NULL
// emits nothing (bare, between delimiters); a non-NULL empty string still
// emits `""` so it cannot be mistaken for NULL on re-read (`csv_format`,
// `original_source/src/export.c`).
func csvOut(v string, isNull bool) string {
	if isNull {
		return ""
	}
	if v == "" {
		return "\"\""
	}
	return csvField(v)
}

// tsvcOut is csvOut's TsvC counterpart.
func tsvcOut(v string, isNull bool) string {
	if isNull {
		return ""
	}
	if v == "" {
		return "\"\""
	}
	return tsvcField(v)
}

// pipeOut is csvOut's PipeSeparated counterpart: NULL and empty both print
// as nothing, since the format carries no quoting to tell them apart.
func pipeOut(v string, isNull bool) string {
	if isNull {
		return ""
	}
	return pipeField(v)
}

// sqlOut is csvOut's SqlValues/Insert counterpart: NULL is the bare
// keyword, everything else goes through sqlLiteral.
func sqlOut(v string, isNull bool) string {
	if isNull {
		return "NULL"
	}
	return sqlLiteral(v)
}

// quoteIdentifier quotes a table/column name with `"` (internal `"`
// doubled) iff it contains any character outside `[a-z0-9_]` or begins
// with something other than a letter (spec.md §4.7 "Identifier quoting").
func quoteIdentifier(name string) string {
	if identifierNeedsQuoting(name) {
		return "\"" + strings.ReplaceAll(name, "\"", "\"\"") + "\""
	}
	return name
}

func identifierNeedsQuoting(name string) bool {
	if name == "" {
		return true
	}
	for i, r := range name {
		if i == 0 && (r < 'a' || r > 'z') {
			return true
		}
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return true
		}
	}
	return false
}
