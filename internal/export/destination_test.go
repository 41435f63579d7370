package export

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileDestinationWritesBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	err := FileDestination{Path: path}.Write(context.Background(), "a,b\n1,2\n")
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a,b\n1,2\n", string(got))
}

func TestNewScratchFileDestinationNamesAreUnique(t *testing.T) {
	dir := t.TempDir()
	a := NewScratchFileDestination(dir)
	b := NewScratchFileDestination(dir)
	require.NotEqual(t, a.Path, b.Path)
	require.Equal(t, dir, filepath.Dir(a.Path))
}

func TestPipeDestinationStreamsBodyToCommandStdin(t *testing.T) {
	out := filepath.Join(t.TempDir(), "captured")
	err := PipeDestination{Command: "cat > " + out}.Write(context.Background(), "hello\nworld\n")
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "hello\nworld\n", string(got))
}

func TestPipeDestinationSurfacesNonZeroExit(t *testing.T) {
	err := PipeDestination{Command: "cat >/dev/null; exit 7"}.Write(context.Background(), "x")
	require.Error(t, err)
}

func TestIsBrokenPipeRecognizesEPIPE(t *testing.T) {
	require.True(t, isBrokenPipe(syscall.EPIPE))
	require.True(t, isBrokenPipe(os.ErrClosed))
	require.False(t, isBrokenPipe(nil))
}
