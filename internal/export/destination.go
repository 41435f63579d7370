package export

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Destination receives the rendered output of one export (spec.md §4.7
// "Inputs": "a destination (file path or a pipe to a child process)").
type Destination interface {
	Write(ctx context.Context, body string) error
}

// FileDestination writes body to a plain file, truncating any existing
// content (the file-export command never appends).
type FileDestination struct {
	Path string
}

func (d FileDestination) Write(_ context.Context, body string) error {
	if err := os.WriteFile(d.Path, []byte(body), 0o644); err != nil {
		return errors.Wrapf(err, "export: writing %s", d.Path)
	}
	return nil
}

// NewScratchFileDestination returns a FileDestination under dir (os.TempDir
// if dir is "") named with a fresh UUID, for the "export to a scratch file"
// command variant that takes no explicit path — each invocation gets a
// collision-free name without the caller needing to track one itself.
func NewScratchFileDestination(dir string) FileDestination {
	if dir == "" {
		dir = os.TempDir()
	}
	return FileDestination{Path: filepath.Join(dir, "tabpager-export-"+uuid.NewString()+".txt")}
}

// PipeDestination streams body to a child process's stdin, the way the
// original shells the configured clipboard/pipe command and writes to its
// popen'd pipe in `original_source/src/pspg.c`.
type PipeDestination struct {
	Command string // run via "sh -c"
}

func (d PipeDestination) Write(ctx context.Context, body string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", d.Command)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "export: opening pipe to command")
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "export: starting %q", d.Command)
	}

	_, writeErr := io.WriteString(stdin, body)
	closeErr := stdin.Close()
	waitErr := cmd.Wait()

	brokenPipe := isBrokenPipe(writeErr) || isBrokenPipe(closeErr)
	if waitErr == nil {
		return nil
	}
	if brokenPipe {
		// spec.md §4.7 "Failure": broken-pipe on close is success when the
		// downstream consumer simply stopped reading early.
		return nil
	}
	return errors.Wrapf(waitErr, "export: running %q: %s", d.Command, stderrText(&stderr))
}

func isBrokenPipe(err error) bool {
	return stderrors.Is(err, syscall.EPIPE) || stderrors.Is(err, os.ErrClosed)
}

func stderrText(b *bytes.Buffer) string {
	s := b.String()
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
