package config

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
)

// History is the search-pattern history file (spec.md §6: "Search history
// is appended line-per-entry, de-duped against the last entry"). This is
// the one deliberately stdlib-only corner of internal/config — a trivial
// append-only log with a single dedup rule has no business pulling in a
// config/log framework (see DESIGN.md).
type History struct {
	Path string
}

func NewHistory(path string) *History {
	return &History{Path: path}
}

// Load reads every pattern, oldest first.
func (h *History) Load() ([]string, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "config: opening %s", h.Path)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", h.Path)
	}
	return out, nil
}

// Append adds pattern to the end of the file unless it is identical to the
// most recently recorded entry.
func (h *History) Append(pattern string) error {
	existing, err := h.Load()
	if err != nil {
		return err
	}
	if len(existing) > 0 && existing[len(existing)-1] == pattern {
		return nil
	}

	f, err := os.OpenFile(h.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "config: opening %s", h.Path)
	}
	defer f.Close()

	if _, err := f.WriteString(pattern + "\n"); err != nil {
		return errors.Wrapf(err, "config: appending to %s", h.Path)
	}
	return nil
}
