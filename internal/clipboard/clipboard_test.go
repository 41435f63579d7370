package clipboard

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSystemDestinationWritesToRealClipboard exercises the actual OS
// clipboard and is skipped unless TABPAGER_TEST_CLIPBOARD is set, since most
// CI sandboxes have no clipboard utility installed at all (the same reason
// original_source/src/pspg.c's check_clipboard_app probes for one rather
// than assuming it exists).
func TestSystemDestinationWritesToRealClipboard(t *testing.T) {
	if os.Getenv("TABPAGER_TEST_CLIPBOARD") == "" {
		t.Skip("set TABPAGER_TEST_CLIPBOARD=1 to exercise the real OS clipboard")
	}
	d := SystemDestination{}
	require.NoError(t, d.Write(context.Background(), "tabpager clipboard test"))
}
