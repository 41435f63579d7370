package source

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

// FIFOSource reads a named pipe (spec.md §6: "FIFO, read-once, reopen on
// EOF when streaming"). A FIFO's writer closing its end delivers EOF to the
// reader even though more data may arrive later from a subsequent writer,
// so — unlike a regular file — "more data might still come" has to be
// modeled as "reopen and wait for a new writer to show up", not as
// "keep reading the same descriptor".
type FIFOSource struct {
	base
}

// NewFIFOSource opens path and starts reading. When streaming is false, EOF
// ends the source (Lines is closed). When streaming is true, EOF triggers a
// poll-and-reopen loop: the FIFO is reopened once a new writer connects.
func NewFIFOSource(path string, streaming bool) (*FIFOSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "source: opening fifo %s", path)
	}
	s := &FIFOSource{base: newBase()}
	go s.run(path, f, streaming)
	return s, nil
}

func (s *FIFOSource) run(path string, f *os.File, streaming bool) {
	defer close(s.closed)
	defer func() {
		if !streaming {
			close(s.lines)
		}
	}()

	for {
		r := bufio.NewReader(f)
		err := drainComplete(r, &s.base)
		f.Close()
		if err != nil && err != io.EOF {
			s.sendErr(err)
			return
		}
		if !streaming {
			return
		}

		select {
		case <-s.done:
			return
		case <-time.After(pollInterval):
		}

		nf, openErr := os.Open(path)
		if openErr != nil {
			s.sendErr(errors.Wrapf(openErr, "source: reopening fifo %s", path))
			return
		}
		f = nf
	}
}
