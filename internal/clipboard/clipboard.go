// Package clipboard provides the two clipboard-shaped export destinations
// spec.md §5 "Shared resources" and §6 names but leaves to a collaborator
// to pick a backend for: the system clipboard proper, and an explicit
// external clipboard application invoked as a child process
// (original_source/src/pspg.c's wl-copy/xclip/pbcopy detection and
// rwe_popen/waitpid child-process pattern).
package clipboard

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"

	"github.com/dbrowse/tabpager/internal/export"
)

// SystemDestination writes straight to the OS clipboard via atotto/clipboard,
// which already performs the backend selection and child-process invocation
// (pbcopy, xclip, wl-copy, the Windows/macOS clipboard APIs, ...) that
// spec.md §1 Non-goals explicitly leaves to a collaborator — this is that
// collaborator.
type SystemDestination struct{}

var _ export.Destination = SystemDestination{}

func (SystemDestination) Write(_ context.Context, body string) error {
	if err := clipboard.WriteAll(body); err != nil {
		return errors.Wrap(err, "clipboard: writing to system clipboard")
	}
	return nil
}
