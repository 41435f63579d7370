package render

import (
	"testing"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/stretchr/testify/require"
)

func TestResolveSelectionBeatsEverything(t *testing.T) {
	role := Resolve(CellContext{InSelection: true, RowCursor: true, Bookmarked: true, FoundMatch: true})
	require.Equal(t, RoleSelectionCursor, role)

	role = Resolve(CellContext{InSelection: true})
	require.Equal(t, RoleSelection, role)
}

func TestResolveCrossCursorBeatsBookmarkAndPattern(t *testing.T) {
	role := Resolve(CellContext{RowCursor: true, ColCursor: true, Bookmarked: true, FoundMatch: true})
	require.Equal(t, RoleCrossCursor, role)

	role = Resolve(CellContext{RowCursor: true, ColCursor: true, Classifier: detect.ClassInterior})
	require.Equal(t, RoleCrossCursorBorder, role)
}

func TestResolveBookmarkVariants(t *testing.T) {
	require.Equal(t, RoleCursorBookmark, Resolve(CellContext{RowCursor: true, Bookmarked: true}))
	require.Equal(t, RoleBookmarkLine, Resolve(CellContext{Bookmarked: true, Classifier: detect.ClassLeft}))
	require.Equal(t, RoleBookmarkData, Resolve(CellContext{Bookmarked: true}))
}

func TestResolvePatternOnlyWhenNothingStrongerApplies(t *testing.T) {
	require.Equal(t, RoleCursorPattern, Resolve(CellContext{RowCursor: true, FoundMatch: true}))
	require.Equal(t, RoleData, Resolve(CellContext{FoundMatch: true}))
}

func TestResolveBaseline(t *testing.T) {
	require.Equal(t, RoleCursorData, Resolve(CellContext{RowCursor: true}))
	require.Equal(t, RoleCursorLine, Resolve(CellContext{RowCursor: true, Classifier: detect.ClassRight}))
	require.Equal(t, RoleData, Resolve(CellContext{}))
	require.Equal(t, RoleLine, Resolve(CellContext{Classifier: detect.ClassInterior}))
}

func TestFoundXOROnlyAppliesToBaselineRoles(t *testing.T) {
	require.True(t, FoundXOR(CellContext{FoundMatch: true}, RoleData))
	require.True(t, FoundXOR(CellContext{FoundMatch: true}, RoleLine))
	require.False(t, FoundXOR(CellContext{FoundMatch: true}, RoleCursorPattern))
	require.False(t, FoundXOR(CellContext{FoundMatch: true}, RoleSelection))
	require.False(t, FoundXOR(CellContext{FoundMatch: false}, RoleData))
}
