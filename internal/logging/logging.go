// Package logging constructs the single zerolog.Logger the rest of the
// program shares (SPEC_FULL.md §10.2). Unlike the teacher's
// checkAndElevate/whois.Lookup, which printf straight to stderr, a
// full-screen pager cannot tolerate stray writes to the terminal it owns,
// so a logger built here either writes to an explicit file or is a no-op.
package logging

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with the backing file (if any) so callers can
// close it on teardown without reaching back into os.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New builds a Logger writing to path, or a no-op logger when path is
// empty. A no-op logger still satisfies every call site — zerolog.Nop()
// discards events without allocating — so nothing upstream needs a nil
// check.
func New(path string) (*Logger, error) {
	if path == "" {
		return &Logger{Logger: zerolog.Nop()}, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "logging: opening %s", path)
	}

	return &Logger{
		Logger: zerolog.New(f).With().Timestamp().Logger(),
		file:   f,
	}, nil
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
