package config

import (
	"bytes"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// whitelist lists the persisted keys Load/Save recognize. Anything not in
// this set found in an existing file is an unknown key — an older or newer
// version wrote it — and spec.md §6 says to warn and ignore it, never fail
// the load.
var whitelist = map[string]bool{
	"border":              true,
	"freezecols":          true,
	"vertical_cursor":     true,
	"no_cursor":           true,
	"no_scrollbar":        true,
	"no_highlight_search": true,
	"no_highlight_lines":  true,
	"ignore_case":         true,
	"hide_header_line":    true,
	"highlight_odd_rec":   true,
	"null_string":         true,
	"csv":                 true,
	"tsv":                 true,
	"watch":               true,
	"less_status_bar":     true,
	"no_mouse":            true,
}

// Store reads and writes the on-demand-saved key=value config file
// (spec.md §6 "Persisted state"). The file is always TOML regardless of
// its path's extension, read with viper's TOML decoder and written
// directly with go-toml/v2 so the round-trip format is never in doubt.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the config file into a fresh Defaults()-seeded Options. A
// missing file is not an error — there is simply nothing saved yet. Keys
// outside the whitelist are returned in unknown for the caller to log as a
// warning; they never block the load.
func (s *Store) Load() (opts *Options, unknown []string, err error) {
	opts = Defaults()

	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil, nil
		}
		return nil, nil, errors.Wrapf(err, "config: opening %s", s.Path)
	}
	defer f.Close()

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(f); err != nil {
		return nil, nil, errors.Wrapf(err, "config: parsing %s", s.Path)
	}

	for _, key := range v.AllKeys() {
		if !whitelist[key] {
			unknown = append(unknown, key)
			continue
		}
		switch key {
		case "border":
			opts.Border = v.GetInt(key)
		case "freezecols":
			opts.FreezeCols = v.GetInt(key)
		case "watch":
			opts.WatchSeconds = v.GetInt(key)
		case "vertical_cursor":
			opts.VerticalCursor = v.GetBool(key)
		case "no_cursor":
			opts.NoCursor = v.GetBool(key)
		case "no_scrollbar":
			opts.NoScrollbar = v.GetBool(key)
		case "no_highlight_search":
			opts.NoHighlightSrch = v.GetBool(key)
		case "no_highlight_lines":
			opts.NoHighlightLine = v.GetBool(key)
		case "ignore_case":
			opts.IgnoreCase = v.GetBool(key)
		case "hide_header_line":
			opts.HideHeaderLine = v.GetBool(key)
		case "highlight_odd_rec":
			opts.HighlightOddRec = v.GetBool(key)
		case "csv":
			opts.CSV = v.GetBool(key)
		case "tsv":
			opts.TSV = v.GetBool(key)
		case "less_status_bar":
			opts.LessStatusBar = v.GetBool(key)
		case "no_mouse":
			opts.NoMouse = v.GetBool(key)
		case "null_string":
			opts.NullString = v.GetString(key)
		}
	}

	return opts, unknown, nil
}

// Save writes every whitelisted key out of o, discarding nothing a future
// Load wouldn't also recognize.
func (s *Store) Save(o *Options) error {
	doc := map[string]any{
		"border":              o.Border,
		"freezecols":          o.FreezeCols,
		"vertical_cursor":     o.VerticalCursor,
		"no_cursor":           o.NoCursor,
		"no_scrollbar":        o.NoScrollbar,
		"no_highlight_search": o.NoHighlightSrch,
		"no_highlight_lines":  o.NoHighlightLine,
		"ignore_case":         o.IgnoreCase,
		"hide_header_line":    o.HideHeaderLine,
		"highlight_odd_rec":   o.HighlightOddRec,
		"null_string":         o.NullString,
		"csv":                 o.CSV,
		"tsv":                 o.TSV,
		"watch":               o.WatchSeconds,
		"less_status_bar":     o.LessStatusBar,
		"no_mouse":            o.NoMouse,
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return errors.Wrap(err, "config: encoding")
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "config: writing %s", s.Path)
	}
	return nil
}
