// Package config binds the CLI surface (spec.md §6 "CLI surface consumed")
// into an Options struct, loads and saves the persisted key=value config
// file, and appends to the search-history file. Argument parsing itself —
// which flag maps to which struct field — is the only place this package
// depends on cobra/pflag; everything downstream consumes the plain struct.
package config

import "github.com/spf13/pflag"

// Options holds every flag that affects core pager behavior. Only the
// flags spec.md §6 names, plus the handful original_source/src/args.c shows
// as siblings of that set (log file, mouse, locale, status bar density),
// are represented here — flags that control query execution, connection
// parameters, or display chrome outside the pager's own responsibility are
// a collaborator's concern and have no field.
type Options struct {
	FreezeCols      int
	Border          int
	NoCursor        bool
	VerticalCursor  bool
	NoScrollbar     bool
	NoHighlightSrch bool
	NoHighlightLine bool
	IgnoreCase      bool // -i: case-insensitive only when the pattern is all lowercase
	IgnoreCaseForce bool // -I: always case-insensitive
	HideHeaderLine  bool
	HighlightOddRec bool
	NullString      string
	CSV             bool
	TSV             bool
	WatchSeconds    int
	QuitIfOneScreen bool

	LogFile       string
	LessStatusBar bool
	NoMouse       bool
	LCCtype       string

	// OnSigintExit and NoSigintSearchReset govern spec.md §5's Cancellation
	// behavior: a first SIGINT clears search/selection unless
	// NoSigintSearchReset is set, and a second press only exits the program
	// when OnSigintExit is set.
	OnSigintExit        bool
	NoSigintSearchReset bool
}

// Defaults returns the option set pspg-compatible defaults: borders drawn,
// mouse and cursor enabled, no format forced.
func Defaults() *Options {
	return &Options{
		Border:       2,
		WatchSeconds: 0,
	}
}

// RegisterFlags binds every field in o to a long flag on fs, in the
// teacher's flat one-field-one-flag style — no env var merging, no flag
// groups, just direct pointers (main.go's flag.String/flag.Bool calls,
// generalized to pflag so cmd/tabpager can build one cobra.Command out of
// it).
func (o *Options) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.FreezeCols, "freezecols", o.FreezeCols, "number of leading columns to freeze")
	fs.IntVar(&o.Border, "border", o.Border, "border style (0-2)")
	fs.BoolVar(&o.NoCursor, "no-cursor", o.NoCursor, "disable the row cursor")
	fs.BoolVar(&o.VerticalCursor, "vertical-cursor", o.VerticalCursor, "enable the column cursor")
	fs.BoolVar(&o.NoScrollbar, "no-scrollbar", o.NoScrollbar, "disable the scrollbar")
	fs.BoolVar(&o.NoHighlightSrch, "no-highlight-search", o.NoHighlightSrch, "disable search match highlighting")
	fs.BoolVar(&o.NoHighlightLine, "no-highlight-lines", o.NoHighlightLine, "disable cursor row highlighting")
	fs.BoolVar(&o.IgnoreCase, "ignore-case", o.IgnoreCase, "case-insensitive search when pattern is lowercase")
	fs.BoolVar(&o.IgnoreCaseForce, "IGNORE-CASE", o.IgnoreCaseForce, "always case-insensitive search")
	fs.BoolVar(&o.HideHeaderLine, "hide-header-line", o.HideHeaderLine, "hide the header row")
	fs.BoolVar(&o.HighlightOddRec, "highlight-odd-rec", o.HighlightOddRec, "highlight odd data rows")
	fs.StringVar(&o.NullString, "null", o.NullString, "string that renders as NULL on export")
	fs.BoolVar(&o.CSV, "csv", o.CSV, "force CSV input parsing")
	fs.BoolVar(&o.TSV, "tsv", o.TSV, "force TSV input parsing")
	fs.IntVar(&o.WatchSeconds, "watch", o.WatchSeconds, "reload input every N seconds (0 disables)")
	fs.BoolVar(&o.QuitIfOneScreen, "quit-if-one-screen", o.QuitIfOneScreen, "exit immediately if the table fits on one screen")

	fs.StringVar(&o.LogFile, "log-file", o.LogFile, "write structured logs to this file")
	fs.BoolVar(&o.LessStatusBar, "less-status-bar", o.LessStatusBar, "use a condensed status bar")
	fs.BoolVar(&o.NoMouse, "no-mouse", o.NoMouse, "disable mouse reporting")
	fs.StringVar(&o.LCCtype, "lc-ctype", o.LCCtype, "override LC_CTYPE for width calculations")

	fs.BoolVar(&o.OnSigintExit, "on-sigint-exit", o.OnSigintExit, "exit on a second SIGINT instead of ignoring it")
	fs.BoolVar(&o.NoSigintSearchReset, "no-sigint-search-reset", o.NoSigintSearchReset, "do not clear search/selection on SIGINT")
}
