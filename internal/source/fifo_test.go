package source

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func makeFifo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipe.fifo")
	require.NoError(t, syscall.Mkfifo(path, 0o600))
	return path
}

func TestFIFOSourceReadOnceClosesOnWriterEOF(t *testing.T) {
	path := makeFifo(t)

	s, err := NewFIFOSource(path, false)
	require.NoError(t, err)

	go func() {
		w, werr := os.OpenFile(path, os.O_WRONLY, 0)
		require.NoError(t, werr)
		_, _ = w.WriteString("a\nb\n")
		w.Close()
	}()

	got := drainLines(t, s.Lines(), 2, 2*time.Second)
	require.Equal(t, []string{"a", "b"}, got)

	_, ok := <-s.Lines()
	require.False(t, ok)
	s.Stop()
}

func TestFIFOSourceStreamingReopensAfterWriterCloses(t *testing.T) {
	path := makeFifo(t)

	s, err := NewFIFOSource(path, true)
	require.NoError(t, err)
	defer s.Stop()

	go func() {
		w, werr := os.OpenFile(path, os.O_WRONLY, 0)
		require.NoError(t, werr)
		_, _ = w.WriteString("first\n")
		w.Close()
	}()
	got := drainLines(t, s.Lines(), 1, 2*time.Second)
	require.Equal(t, []string{"first"}, got)

	go func() {
		w, werr := os.OpenFile(path, os.O_WRONLY, 0)
		require.NoError(t, werr)
		_, _ = w.WriteString("second\n")
		w.Close()
	}()
	got = drainLines(t, s.Lines(), 1, 3*time.Second)
	require.Equal(t, []string{"second"}, got)
}
