package clipboard

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/dbrowse/tabpager/internal/export"
)

// App identifies one of the external clipboard applications
// original_source/src/pspg.c's check_clipboard_app probes for, in the same
// priority order: Wayland's wl-copy, X11's xclip, then macOS's pbcopy.
type App int

const (
	AppNone App = iota
	AppWLCopy
	AppXClip
	AppPBCopy
)

// commandLine mirrors pspg.c's cmdline_clipboard_app construction.
func (a App) commandLine() []string {
	switch a {
	case AppWLCopy:
		return []string{"wl-copy"}
	case AppXClip:
		return []string{"xclip", "-sel", "clip"}
	case AppPBCopy:
		return []string{"pbcopy"}
	default:
		return nil
	}
}

// AppDestination runs an external clipboard application as a child process
// and streams the export body to its stdin, exactly as spec.md §5 "Shared
// resources" describes: "Child processes (clipboard writers) own their
// stdin pipe; the parent closes on completion and reaps with waitpid."
// cmd.Wait() is Go's equivalent reap.
type AppDestination struct {
	App     App
	Command []string // overrides App when non-empty, for a user-supplied --clipboard-app command
}

var _ export.Destination = AppDestination{}

func (d AppDestination) Write(ctx context.Context, body string) error {
	argv := d.Command
	if len(argv) == 0 {
		argv = d.App.commandLine()
	}
	if len(argv) == 0 {
		return errors.New("clipboard: no clipboard application available")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "clipboard: opening pipe to clipboard application")
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "clipboard: starting %v", argv)
	}

	_, writeErr := stdin.Write([]byte(body))
	closeErr := stdin.Close()
	waitErr := cmd.Wait()

	if waitErr != nil {
		return errors.Wrapf(waitErr, "clipboard: running %v: %s", argv, stderr.String())
	}
	if writeErr != nil {
		return errors.Wrapf(writeErr, "clipboard: writing to %v", argv)
	}
	return closeErr
}
