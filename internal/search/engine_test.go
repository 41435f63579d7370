package search

import (
	"testing"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, rows []string) *lines.Store {
	t.Helper()
	s := lines.New()
	for _, r := range rows {
		s.Append(r)
	}
	return s
}

func TestSetPatternClearsPreviousBits(t *testing.T) {
	s := newStore(t, []string{"foo bar", "baz foo"})
	e := New(s)
	e.SetPattern("foo", CaseSensitive)
	e.MatchesOnLine(0)
	e.MatchesOnLine(1)
	_, info0, _ := s.Get(0)
	require.True(t, info0.Mask&lines.FoundPattern != 0)

	e.SetPattern("nope", CaseSensitive)
	_, info0After, _ := s.Get(0)
	require.False(t, info0After.Mask&lines.FoundPattern != 0)
}

func TestCaseSensitiveDoesNotFoldCase(t *testing.T) {
	s := newStore(t, []string{"Hello World"})
	e := New(s)
	e.SetPattern("hello", CaseSensitive)
	require.Empty(t, e.MatchesOnLine(0))
}

func TestIgnoreCaseFoldsBothSides(t *testing.T) {
	s := newStore(t, []string{"Hello World"})
	e := New(s)
	e.SetPattern("hello", IgnoreCase)
	matches := e.MatchesOnLine(0)
	require.Len(t, matches, 1)
	require.Equal(t, 0, matches[0].Byte)
}

// Smart-case scenario (spec.md §4.3): a lower-case pattern folds case; a
// pattern containing an upper-case rune becomes case-sensitive.
func TestIgnoreLowerCaseSmartCase(t *testing.T) {
	s := newStore(t, []string{"Error: Disk Full", "error: disk full"})
	e := New(s)

	e.SetPattern("error", IgnoreLowerCase)
	require.Len(t, e.MatchesOnLine(0), 1)
	require.Len(t, e.MatchesOnLine(1), 1)

	e.SetPattern("Error", IgnoreLowerCase)
	require.Len(t, e.MatchesOnLine(0), 1)
	require.Empty(t, e.MatchesOnLine(1))
}

func TestMatchesOnLineSetsFoundPatternMulti(t *testing.T) {
	s := newStore(t, []string{"ab ab ab"})
	e := New(s)
	e.SetPattern("ab", CaseSensitive)
	matches := e.MatchesOnLine(0)
	require.Len(t, matches, 3)
	_, info, _ := s.Get(0)
	require.True(t, info.Mask&lines.FoundPattern != 0)
	require.True(t, info.Mask&lines.FoundPatternMulti != 0)
}

func TestSingleMatchDoesNotSetMultiBit(t *testing.T) {
	s := newStore(t, []string{"only one ab here"})
	e := New(s)
	e.SetPattern("ab", CaseSensitive)
	e.MatchesOnLine(0)
	_, info, _ := s.Get(0)
	require.True(t, info.Mask&lines.FoundPattern != 0)
	require.False(t, info.Mask&lines.FoundPatternMulti != 0)
}

func TestSearchNextWithinSameLine(t *testing.T) {
	s := newStore(t, []string{"ab..ab..ab"})
	e := New(s)
	e.SetPattern("ab", CaseSensitive)
	first, ok := e.SearchNext(-1, -1)
	require.True(t, ok)
	require.Equal(t, 0, first.Byte)

	second, ok := e.SearchNext(first.Line, first.Byte)
	require.True(t, ok)
	require.Equal(t, 4, second.Byte)
}

func TestSearchNextAdvancesLineWhenCurrentLineExhausted(t *testing.T) {
	s := newStore(t, []string{"ab", "no match here", "ab again"})
	e := New(s)
	e.SetPattern("ab", CaseSensitive)
	first, ok := e.SearchNext(-1, -1)
	require.True(t, ok)
	require.Equal(t, 0, first.Line)

	next, ok := e.SearchNext(first.Line, first.Byte)
	require.True(t, ok)
	require.Equal(t, 2, next.Line)
}

func TestSearchNextDoesNotWrap(t *testing.T) {
	s := newStore(t, []string{"ab", "nothing"})
	e := New(s)
	e.SetPattern("ab", CaseSensitive)
	first, ok := e.SearchNext(-1, -1)
	require.True(t, ok)
	_, ok = e.SearchNext(first.Line, first.Byte)
	require.False(t, ok)
}

// Search idempotence (spec.md TESTABLE PROPERTIES): search_next followed
// by search_prev from a found match returns to the same (line, byte).
func TestSearchIdempotenceSameLine(t *testing.T) {
	s := newStore(t, []string{"ab..ab..ab"})
	e := New(s)
	e.SetPattern("ab", CaseSensitive)
	m0, ok := e.SearchNext(-1, -1)
	require.True(t, ok)
	m1, ok := e.SearchNext(m0.Line, m0.Byte)
	require.True(t, ok)
	back, ok := e.SearchPrev(m1.Line, m1.Byte)
	require.True(t, ok)
	require.Equal(t, m0.Line, back.Line)
	require.Equal(t, m0.Byte, back.Byte)
}

func TestSearchIdempotenceAcrossLines(t *testing.T) {
	s := newStore(t, []string{"ab here", "nothing", "nothing", "ab there too"})
	e := New(s)
	e.SetPattern("ab", CaseSensitive)
	m0, ok := e.SearchNext(-1, -1)
	require.True(t, ok)
	require.Equal(t, 0, m0.Line)

	m1, ok := e.SearchNext(m0.Line, m0.Byte)
	require.True(t, ok)
	require.Equal(t, 3, m1.Line)

	back, ok := e.SearchPrev(m1.Line, m1.Byte)
	require.True(t, ok)
	require.Equal(t, m0.Line, back.Line)
	require.Equal(t, m0.Byte, back.Byte)
}

func TestSearchScopeRestrictsRowsAndColumns(t *testing.T) {
	s := newStore(t, []string{"ab ab", "ab ab", "ab ab"})
	e := New(s)
	e.SetPattern("ab", CaseSensitive)
	e.SetScope(1, 1, 0, 1)
	require.Empty(t, e.MatchesOnLine(0))
	matches := e.MatchesOnLine(1)
	require.Len(t, matches, 1)
	require.Equal(t, 0, matches[0].Byte)
}

func TestColumnSearchFindsColumnByName(t *testing.T) {
	s := newStore(t, []string{
		" id | name ",
		"----+------",
		"  1 | bob  ",
	})
	d := detect.Detect(s, detect.Options{BorderHint: -1})
	namesLine, _, _ := s.Get(d.NamesLine)
	idx, ok := ColumnSearch(d, namesLine, "nam")
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestColumnSearchNoMatch(t *testing.T) {
	s := newStore(t, []string{
		" id | name ",
		"----+------",
		"  1 | bob  ",
	})
	d := detect.Detect(s, detect.Options{BorderHint: -1})
	namesLine, _, _ := s.Get(d.NamesLine)
	_, ok := ColumnSearch(d, namesLine, "zzz")
	require.False(t, ok)
}
