package detect

import (
	"testing"

	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/stretchr/testify/require"
)

func applyOrder(t *testing.T, s *lines.Store, om OrderMap) []string {
	t.Helper()
	out := make([]string, len(om))
	for i, idx := range om {
		text, _, ok := s.Get(idx)
		require.True(t, ok)
		out[i] = text
	}
	return out
}

func TestSortAscendingByColumn(t *testing.T) {
	s := loadStore(t, []string{
		" a | bb ",
		"---+----",
		" 3 | x   ",
		" 1 | y   ",
		" 2 | z   ",
	})
	d := Detect(s, Options{BorderHint: -1})
	om := Sort(s, d, 0, true, false)
	rows := applyOrder(t, s, om)
	require.Equal(t, []string{
		" a | bb ",
		"---+----",
		" 1 | y   ",
		" 2 | z   ",
		" 3 | x   ",
	}, rows)
}

func TestSortDescendingByColumn(t *testing.T) {
	s := loadStore(t, []string{
		" a | bb ",
		"---+----",
		" 1 | y   ",
		" 3 | x   ",
		" 2 | z   ",
	})
	d := Detect(s, Options{BorderHint: -1})
	om := Sort(s, d, 0, true, true)
	rows := applyOrder(t, s, om)
	require.Equal(t, []string{
		" a | bb ",
		"---+----",
		" 3 | x   ",
		" 2 | z   ",
		" 1 | y   ",
	}, rows)
}

func TestSortNonNumericSortsLastRegardlessOfDirection(t *testing.T) {
	s := loadStore(t, []string{
		" a   | bb ",
		"-----+----",
		" n/a | x  ",
		" 2   | z  ",
		" 1   | y  ",
	})
	d := Detect(s, Options{BorderHint: -1})
	asc := Sort(s, d, 0, true, false)
	ascRows := applyOrder(t, s, asc)
	require.Equal(t, " 1   | y  ", ascRows[2])
	require.Equal(t, " 2   | z  ", ascRows[3])
	require.Equal(t, " n/a | x  ", ascRows[4])

	desc := Sort(s, d, 0, true, true)
	descRows := applyOrder(t, s, desc)
	require.Equal(t, " 2   | z  ", descRows[2])
	require.Equal(t, " 1   | y  ", descRows[3])
	require.Equal(t, " n/a | x  ", descRows[4])
}

func TestSortKeepsMultilineRecordsTogether(t *testing.T) {
	s := loadStore(t, []string{
		" a     | b    ",
		"-------+------",
		" 2     | x    ",
		" 1+    | wor  ",
		"       | ld   ",
	})
	d := Detect(s, Options{BorderHint: -1})
	require.True(t, d.HasMultilines)
	om := Sort(s, d, 0, true, false)
	rows := applyOrder(t, s, om)
	require.Equal(t, []string{
		" a     | b    ",
		"-------+------",
		" 1+    | wor  ",
		"       | ld   ",
		" 2     | x    ",
	}, rows)
}

func TestSortOutOfRangeColumnReturnsIdentity(t *testing.T) {
	s := loadStore(t, []string{
		" a | bb ",
		"---+----",
		" 1 | y   ",
	})
	d := Detect(s, Options{BorderHint: -1})
	om := Sort(s, d, 7, true, false)
	for i, v := range om {
		require.Equal(t, i, v)
	}
}

func TestSortUnstructuredReturnsIdentity(t *testing.T) {
	s := loadStore(t, []string{"plain", "text", "lines"})
	d := Detect(s, Options{BorderHint: -1})
	om := Sort(s, d, 0, false, false)
	for i, v := range om {
		require.Equal(t, i, v)
	}
}

func TestSortStableOnEqualKeys(t *testing.T) {
	s := loadStore(t, []string{
		" a | bb ",
		"---+----",
		" 1 | p   ",
		" 1 | q   ",
		" 1 | r   ",
	})
	d := Detect(s, Options{BorderHint: -1})
	om := Sort(s, d, 0, true, false)
	rows := applyOrder(t, s, om)
	require.Equal(t, []string{
		" a | bb ",
		"---+----",
		" 1 | p   ",
		" 1 | q   ",
		" 1 | r   ",
	}, rows)
}
