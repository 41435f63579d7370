package render

import (
	"testing"

	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/stretchr/testify/require"
)

func TestUpgradeBorderCharDataDash(t *testing.T) {
	require.Equal(t, '─', UpgradeBorderChar(detect.ClassData, '-', RowPlain))
	require.Equal(t, 'x', UpgradeBorderChar(detect.ClassData, 'x', RowPlain))
}

func TestUpgradeBorderCharLeftCorner(t *testing.T) {
	require.Equal(t, '┌', UpgradeBorderChar(detect.ClassLeft, '+', RowTop))
	require.Equal(t, '└', UpgradeBorderChar(detect.ClassLeft, '+', RowBottom))
	require.Equal(t, '├', UpgradeBorderChar(detect.ClassLeft, '|', RowHead))
}

func TestUpgradeBorderCharInterior(t *testing.T) {
	require.Equal(t, '┬', UpgradeBorderChar(detect.ClassInterior, '+', RowTop))
	require.Equal(t, '┴', UpgradeBorderChar(detect.ClassInterior, '+', RowBottom))
	require.Equal(t, '┼', UpgradeBorderChar(detect.ClassInterior, '+', RowHead))
}

func TestUpgradeBorderCharRightCorner(t *testing.T) {
	require.Equal(t, '┐', UpgradeBorderChar(detect.ClassRight, '+', RowTop))
	require.Equal(t, '┘', UpgradeBorderChar(detect.ClassRight, '|', RowBottom))
	require.Equal(t, '┤', UpgradeBorderChar(detect.ClassRight, '+', RowHead))
}

func TestUpgradeBorderCharUnmappedPassesThrough(t *testing.T) {
	require.Equal(t, 'q', UpgradeBorderChar(detect.ClassInterior, 'q', RowHead))
	require.Equal(t, ' ', UpgradeBorderChar(detect.ClassData, ' ', RowPlain))
}
