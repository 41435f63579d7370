package clipboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppCommandLineMatchesKnownBackends(t *testing.T) {
	require.Equal(t, []string{"wl-copy"}, AppWLCopy.commandLine())
	require.Equal(t, []string{"xclip", "-sel", "clip"}, AppXClip.commandLine())
	require.Equal(t, []string{"pbcopy"}, AppPBCopy.commandLine())
	require.Nil(t, AppNone.commandLine())
}

func TestAppDestinationStreamsBodyToCommandStdin(t *testing.T) {
	out := filepath.Join(t.TempDir(), "clip.txt")
	d := AppDestination{Command: []string{"sh", "-c", "cat > " + out}}

	require.NoError(t, d.Write(context.Background(), "hello clipboard"))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "hello clipboard", string(got))
}

func TestAppDestinationSurfacesCommandFailure(t *testing.T) {
	d := AppDestination{Command: []string{"sh", "-c", "cat >/dev/null; exit 3"}}
	err := d.Write(context.Background(), "x")
	require.Error(t, err)
}

func TestAppDestinationWithNoCommandErrors(t *testing.T) {
	d := AppDestination{App: AppNone}
	err := d.Write(context.Background(), "x")
	require.Error(t, err)
}
