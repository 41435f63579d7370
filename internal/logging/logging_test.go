package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithEmptyPathIsNoop(t *testing.T) {
	l, err := New("")
	require.NoError(t, err)
	require.NoError(t, l.Close())

	// A nop logger must not panic and must not create any file.
	l.Info().Msg("should be discarded")
}

func TestNewWithPathWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabpager.log")
	l, err := New(path)
	require.NoError(t, err)

	l.Info().Str("event", "source_open").Msg("opened input")
	require.NoError(t, l.Close())

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), `"event":"source_open"`)
	require.Contains(t, string(body), `"message":"opened input"`)
}

func TestNewWithUnwritablePathErrors(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing-dir", "tabpager.log"))
	require.Error(t, err)
}
