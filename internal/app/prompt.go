package app

// promptKind identifies which footer prompt is open, generalizing the
// teacher's single dedicated searchInput/searching pair (model.go) to the
// several single-line prompts this pager needs (search pattern, goto-line,
// save path) while keeping exactly one bubbles/textinput.Model live at a
// time, just as the teacher does for its IP-substring box.
type promptKind int

const (
	promptNone promptKind = iota
	promptSearchForward
	promptSearchBackward
	promptGoto
	promptSave
)
