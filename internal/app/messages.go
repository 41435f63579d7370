package app

// NewLineMsg is sent for each complete line a Source produces, mirroring
// the teacher's model.NewLineMsg shape but carrying raw text rather than a
// pre-parsed entry — structure detection happens inside Update, not in the
// forwarding goroutine.
type NewLineMsg string

// SourceDoneMsg is sent once a Source's Lines channel closes: the input is
// fully read, which is what gates deferred commands (spec.md §5
// "Deferred commands").
type SourceDoneMsg struct{}

// SourceErrMsg is sent on a Source's Errors channel, mirroring the
// teacher's TailerErrMsg.
type SourceErrMsg struct{ Err error }

// watchTickMsg drives the periodic reload spec.md §5 "Timeouts" describes
// for --watch=SEC: a fresh structure-detection pass over whatever lines
// have accumulated since the last tick.
type watchTickMsg struct{}

// sigIntMsg and sigTermMsg carry the OS signals spec.md §5 "Cancellation"
// assigns dedicated behavior to; Run translates real signals into these so
// Update never touches os/signal directly.
type sigIntMsg struct{}
type sigTermMsg struct{}
