package render

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"
)

func TestRenderColumnNameCentersWhenItFits(t *testing.T) {
	out := RenderColumnName("id", 6)
	require.Equal(t, 6, runewidth.StringWidth(out))
	require.Equal(t, "  id  ", out)
}

func TestRenderColumnNameOddPaddingFavorsLeft(t *testing.T) {
	out := RenderColumnName("id", 5)
	require.Equal(t, 5, runewidth.StringWidth(out))
	require.Equal(t, " id  ", out)
}

func TestRenderColumnNameTruncatesWithEllipsis(t *testing.T) {
	out := RenderColumnName("customer_identifier", 8)
	require.Equal(t, 8, runewidth.StringWidth(out))
	require.Equal(t, "custome…", out)
}

func TestRenderColumnNameZeroWidth(t *testing.T) {
	require.Equal(t, "", RenderColumnName("id", 0))
}

func TestTruncateToWidthExactFit(t *testing.T) {
	require.Equal(t, "abc", truncateToWidth("abc", 3))
}

func TestTruncateToWidthSingleColumnIsJustEllipsis(t *testing.T) {
	require.Equal(t, "…", truncateToWidth("abcdef", 1))
}

func TestTruncateToWidthIsGraphemeSafe(t *testing.T) {
	s := "ébcdef"
	out := truncateToWidth(s, 3)
	require.Equal(t, "éb…", out)
}
