package export

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/dbrowse/tabpager/internal/mark"
	"github.com/dbrowse/tabpager/internal/nav"
)

func oneColDesc(width int) *detect.DataDesc {
	return &detect.DataDesc{
		FirstDataRow: 0,
		LastDataRow:  0,
		Columns:      1,
		CRanges:      []detect.CRange{{XMin: 0, XMax: width - 1}},
	}
}

func TestExportCsvQuotesEmbeddedQuotesAndCommas(t *testing.T) {
	store := lines.New()
	store.Append(`he said "hi", ok   `)
	d := oneColDesc(20)

	out, err := Export(store, d, nil, nil, Request{Scope: AllLines, Format: Csv})
	require.NoError(t, err)
	require.Equal(t, "\"he said \"\"hi\"\", ok\"\n", out)
}

func TestExportCsvEmptyFieldNullPolicyDistinguishesFromNull(t *testing.T) {
	col0 := fmt.Sprintf("%-5s", "x")
	col1 := fmt.Sprintf("%-5s", "")
	text := col0 + " " + col1
	d := &detect.DataDesc{
		FirstDataRow: 0, LastDataRow: 0, Columns: 2,
		CRanges: []detect.CRange{{XMin: 0, XMax: 4}, {XMin: 6, XMax: 10}},
	}

	notNull := lines.New()
	notNull.Append(text)
	out, err := Export(notNull, d, nil, nil, Request{Scope: AllLines, Format: Csv, Policy: NullPolicy{EmptyStringIsNull: false}})
	require.NoError(t, err)
	require.Equal(t, "x,\"\"\n", out)

	isNull := lines.New()
	isNull.Append(text)
	out, err = Export(isNull, d, nil, nil, Request{Scope: AllLines, Format: Csv, Policy: NullPolicy{EmptyStringIsNull: true}})
	require.NoError(t, err)
	require.Equal(t, "x,\n", out)
}

func TestExportSqlValuesRendersNullstrAndQuotesApostrophes(t *testing.T) {
	col0 := fmt.Sprintf("%-5s", "42")
	col1 := fmt.Sprintf("%-5s", "␀")
	col2 := fmt.Sprintf("%-9s", "O'Brien")
	text := col0 + " " + col1 + " " + col2

	store := lines.New()
	store.Append(text)
	d := &detect.DataDesc{
		FirstDataRow: 0, LastDataRow: 0, Columns: 3,
		CRanges: []detect.CRange{{XMin: 0, XMax: 4}, {XMin: 6, XMax: 10}, {XMin: 12, XMax: 20}},
	}

	out, err := Export(store, d, nil, nil, Request{
		Scope: AllLines, Format: SqlValues,
		Policy: NullPolicy{NullStr: "␀"},
	})
	require.NoError(t, err)
	require.Equal(t, "(42,NULL,'O''Brien')\n", out)
}

func TestExportTextScopeBypassesReassemblyAndCropsToColumn(t *testing.T) {
	store := lines.New()
	store.Append("AAAAA BBBBB")
	d := &detect.DataDesc{
		FirstDataRow: 0, LastDataRow: 0, Columns: 2,
		CRanges: []detect.CRange{{XMin: 0, XMax: 4}, {XMin: 6, XMax: 10}},
	}
	nv := &nav.State{VerticalCursorOn: true, VerticalCursorColumn: 2}

	out, err := Export(store, d, nv, nil, Request{Scope: Column, Format: Text})
	require.NoError(t, err)
	require.Equal(t, "BBBBB\n", out)
}

func TestExportInsertQuotesIdentifiersAndRequiresTableName(t *testing.T) {
	_, err := Export(lines.New(), oneColDesc(5), nil, nil, Request{Scope: AllLines, Format: Insert})
	require.ErrorIs(t, err, errNoTableName)

	store := lines.New()
	store.Append("hello")
	d := oneColDesc(5)
	d.NamesLine = -1

	out, err := Export(store, d, nil, nil, Request{Scope: AllLines, Format: Insert, TableName: "My Table"})
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO \"My Table\" VALUES('hello');\n", out)
}

func TestExportCurrentLineScopeUsesCursorRow(t *testing.T) {
	store := lines.New()
	store.Append("row0")
	store.Append("row1")
	d := &detect.DataDesc{FirstDataRow: 0, LastDataRow: 1, Columns: 1, CRanges: []detect.CRange{{XMin: 0, XMax: 3}}}
	nv := &nav.State{CursorRow: 1}

	out, err := Export(store, d, nv, nil, Request{Scope: CurrentLine, Format: Text})
	require.NoError(t, err)
	require.Equal(t, "row1\n", out)
}

func TestExportUnstructuredDescReturnsNoData(t *testing.T) {
	_, err := Export(lines.New(), &detect.DataDesc{}, nil, nil, Request{Scope: AllLines, Format: Text})
	require.ErrorIs(t, err, errNoData)
}

func TestExportSelectedScopeHonorsMarkRectangle(t *testing.T) {
	store := lines.New()
	store.Append("AAAAA BBBBB")
	store.Append("CCCCC DDDDD")
	d := &detect.DataDesc{
		FirstDataRow: 0, LastDataRow: 1, Columns: 2,
		CRanges: []detect.CRange{{XMin: 0, XMax: 4}, {XMin: 6, XMax: 10}},
	}
	mk := mark.New()
	mk.MarkColumn(1, 2)

	out, err := Export(store, d, nil, mk, Request{Scope: Selected, Format: Text})
	require.NoError(t, err)
	require.Equal(t, "DDDDD\n", out)
}
