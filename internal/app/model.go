// Package app hosts the root Bubble Tea model: it wires the line store,
// structure detector, navigation/mark/search state and the export
// pipeline into one tea.Model, mirroring the teacher's internal/model
// package (same Update/handleKey/View shape) generalized from a flat log
// list to a structure-detected table.
package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dbrowse/tabpager/internal/clipboard"
	"github.com/dbrowse/tabpager/internal/config"
	"github.com/dbrowse/tabpager/internal/detect"
	"github.com/dbrowse/tabpager/internal/export"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/dbrowse/tabpager/internal/logging"
	"github.com/dbrowse/tabpager/internal/mark"
	"github.com/dbrowse/tabpager/internal/nav"
	"github.com/dbrowse/tabpager/internal/render"
	"github.com/dbrowse/tabpager/internal/search"
)

// deferredFunc is a command stored in the one-slot queue spec.md §5
// describes for cursor-to-last-row, sort, save, copy, goto and forward
// search: these all need a fully loaded table, so they wait for
// SourceDoneMsg instead of running against a partial store.
type deferredFunc func(*Model)

// Model is the root tea.Model.
type Model struct {
	opts    *config.Options
	logger  *logging.Logger
	history *config.History

	store *lines.Store
	desc  *detect.DataDesc
	nav   *nav.State
	mark  *mark.State
	srch  *search.Engine
	theme render.Theme

	width, height int

	loaded  bool // true once the input Source has signaled completion
	pending *deferredFunc

	prompt      promptKind
	promptInput textinput.Model

	lastSearch string
	lastWasFwd bool

	sigintArmed bool // true once one SIGINT has already reset search/selection

	// dumpOnExit is set once, by checkQuitIfOneScreen, when
	// Options.QuitIfOneScreen is in effect and the fully loaded table fits
	// the terminal without scrolling (SPEC_FULL.md §12 item 3, grounded on
	// original_source/src/args.c's quit_if_one_screen flag): Run prints
	// RawDump() to stdout once the program exits instead of leaving the
	// pager's usual alternate-screen view up.
	dumpOnExit bool

	err      error
	quitting bool
}

// New builds the initial Model from a detection pass over whatever lines
// have already been appended to store (possibly none, for a streaming
// source).
func New(opts *config.Options, logger *logging.Logger, history *config.History, store *lines.Store) *Model {
	d := detectWithOptions(store, opts)
	n := nav.NewState(d, 1, 1, opts.FreezeCols)
	n.Quiet = false
	if opts.NoCursor {
		n.Quiet = true
	}
	if opts.VerticalCursor {
		n.VerticalCursorOn = true
		n.VerticalCursorColumn = opts.FreezeCols + 1
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return &Model{
		opts:        opts,
		logger:      logger,
		history:     history,
		store:       store,
		desc:        d,
		nav:         n,
		mark:        mark.New(),
		srch:        search.New(store),
		theme:       render.DefaultTheme(),
		promptInput: ti,
	}
}

func detectWithOptions(store *lines.Store, opts *config.Options) *detect.DataDesc {
	return detect.Detect(store, detect.Options{
		BorderHint: opts.Border,
		CSV:        opts.CSV,
		TSV:        opts.TSV,
	})
}

func (m *Model) redetect() {
	m.desc = detectWithOptions(m.store, m.opts)
	m.nav.SyncDesc(m.desc)
	totalRows := m.desc.LastDataRow - m.desc.FirstDataRow + 1
	if totalRows < 0 {
		totalRows = 0
	}
	m.mark.ClampToTable(totalRows, m.desc.Columns)
}

func (m Model) Init() tea.Cmd {
	if m.opts.WatchSeconds > 0 {
		return watchTick(m.opts.WatchSeconds)
	}
	return nil
}

func watchTick(seconds int) tea.Cmd {
	return tea.Tick(time.Duration(seconds)*time.Second, func(time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		visibleDataRows := msg.Height - 3
		if visibleDataRows < 0 {
			visibleDataRows = 0
		}
		m.nav.Resize(visibleDataRows, msg.Width)
		if cmd := m.checkQuitIfOneScreen(); cmd != nil {
			return m, cmd
		}
		return m, nil

	case NewLineMsg:
		m.store.Append(string(msg))
		m.redetect()
		m.runPending()
		return m, nil

	case SourceDoneMsg:
		m.loaded = true
		m.runPending()
		if cmd := m.checkQuitIfOneScreen(); cmd != nil {
			return m, cmd
		}
		return m, nil

	case SourceErrMsg:
		m.err = msg.Err
		return m, nil

	case watchTickMsg:
		m.redetect()
		return m, watchTick(m.opts.WatchSeconds)

	case sigIntMsg:
		return m.handleSigint()

	case sigTermMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m *Model) runPending() {
	if !m.loaded || m.pending == nil {
		return
	}
	fn := *m.pending
	m.pending = nil
	fn(m)
}

func (m *Model) defer_(fn deferredFunc) {
	if m.loaded {
		fn(m)
		return
	}
	m.pending = &fn
}

// handleSigint implements spec.md §5 "Cancellation": a first SIGINT clears
// search state and selection (unless NoSigintSearchReset), a second press
// exits only when OnSigintExit is set.
func (m Model) handleSigint() (tea.Model, tea.Cmd) {
	if m.sigintArmed && m.opts.OnSigintExit {
		m.quitting = true
		return m, tea.Quit
	}
	if !m.opts.NoSigintSearchReset {
		m.srch.Clear()
		m.mark.Unmark()
	}
	m.sigintArmed = true
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	m.sigintArmed = false

	key := msg.String()

	// spec.md §4.5: a Cursor-mode selection collapses on any non-motion
	// key, and any navigation key cancels an uncommitted mouse selection.
	if m.mark.Mode == mark.Cursor && key != "shift+up" && key != "shift+down" {
		m.mark.EndCursorSelection()
	}
	m.mark.CancelMouse()

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+c":
		return m.handleSigint()

	case "up", "k":
		m.nav.Dispatch(nav.CursorUp)
		m.mark.Extend(m.nav.CursorRow)
	case "down", "j":
		m.nav.Dispatch(nav.CursorDown)
		m.mark.Extend(m.nav.CursorRow)
	case "pgup":
		m.nav.Dispatch(nav.PageUp)
		m.mark.Extend(m.nav.CursorRow)
	case "pgdown":
		m.nav.Dispatch(nav.PageDown)
		m.mark.Extend(m.nav.CursorRow)
	case "ctrl+u":
		m.nav.Dispatch(nav.ScrollHalfPageUp)
	case "ctrl+d":
		m.nav.Dispatch(nav.ScrollHalfPageDown)
	case "home", "g":
		m.nav.Dispatch(nav.CursorFirstRow)
		m.mark.Extend(m.nav.CursorRow)
	case "end", "G":
		m.deferCursorLastRow()
	case "left", "h":
		m.nav.Dispatch(nav.MoveLeftChar)
	case "right", "l":
		m.nav.Dispatch(nav.MoveRightChar)
	case "shift+left":
		m.nav.Dispatch(nav.MoveLeftColumn)
	case "shift+right":
		m.nav.Dispatch(nav.MoveRightColumn)
	case "shift+up":
		if m.mark.Mode != mark.Cursor {
			m.mark.BeginCursorSelection(m.nav.CursorRow)
		}
		m.nav.Dispatch(nav.CursorUp)
		m.mark.Extend(m.nav.CursorRow)
	case "shift+down":
		if m.mark.Mode != mark.Cursor {
			m.mark.BeginCursorSelection(m.nav.CursorRow)
		}
		m.nav.Dispatch(nav.CursorDown)
		m.mark.Extend(m.nav.CursorRow)
	case "0":
		m.nav.Dispatch(nav.ShowFirstCol)
	case "$":
		m.nav.Dispatch(nav.ShowLastCol)

	case "v":
		m.nav.VerticalCursorOn = !m.nav.VerticalCursorOn
		if m.nav.VerticalCursorOn && m.nav.VerticalCursorColumn == 0 {
			m.nav.VerticalCursorColumn = m.nav.FreezedCols + 1
		}

	case "m":
		m.mark.Mark(m.nav.CursorRow)
	case "M":
		m.mark.MarkColumn(m.nav.CursorRow, m.nav.VerticalCursorColumn)
	case "u":
		m.mark.Unmark()
	case "ctrl+a":
		m.mark.SelectAll(m.desc.LastDataRow - m.desc.FirstDataRow + 1)

	case "b":
		m.nav.ToggleBookmark(m.store)
	case "]":
		m.nav.NextBookmark(m.store)
	case "[":
		m.nav.PrevBookmark(m.store)

	case "/":
		m.openPrompt(promptSearchForward, "")
		return m, textinput.Blink
	case "?":
		m.openPrompt(promptSearchBackward, "")
		return m, textinput.Blink
	case "n":
		m.searchStep(m.lastWasFwd)
	case "N":
		m.searchStep(!m.lastWasFwd)
	case "esc":
		m.srch.Clear()
		m.mark.Unmark()

	case "s":
		m.deferSort(false)
	case "S":
		m.deferSort(true)

	case "y":
		m.deferCopyCurrentLine()
	case "c":
		m.deferCopySelection()
	case "e":
		m.openPrompt(promptSave, "")
		return m, textinput.Blink
	case ":":
		m.openPrompt(promptGoto, "")
		return m, textinput.Blink
	}

	return m, nil
}

// headerHeight returns the number of screen rows render() draws above the
// scrolling body: border-top, names, and border-head rows, each only if
// present — mirrors render()'s own header block exactly so mouse
// coordinates map onto the same rows the user sees.
func (m Model) headerHeight() int {
	if m.desc == nil || m.opts.HideHeaderLine {
		return 0
	}
	h := 0
	if m.desc.BorderTopRow >= 0 {
		h++
	}
	if m.desc.NamesLine >= 0 {
		h++
	}
	if m.desc.BorderHeadRow >= 0 {
		h++
	}
	return h
}

// bodyRowCount returns how many body rows render() actually draws this
// frame — fewer than m.nav.VisibleDataRows near the end of the table.
func (m Model) bodyRowCount() int {
	if m.desc == nil {
		return 0
	}
	total := m.desc.LastDataRow - m.desc.FirstDataRow + 1
	remaining := total - m.nav.FirstRow
	if remaining < 0 {
		remaining = 0
	}
	if remaining > m.nav.VisibleDataRows {
		return m.nav.VisibleDataRows
	}
	return remaining
}

// screenToDataRow converts a mouse event's screen Y coordinate into the
// data-relative row unit m.nav.CursorRow and mark.State's row arguments
// already use (0-based, relative to FirstDataRow), clamped to the table.
func (m Model) screenToDataRow(y, header int) int {
	row := m.nav.FirstRow + (y - header)
	total := m.desc.LastDataRow - m.desc.FirstDataRow + 1
	if row < 0 {
		row = 0
	}
	if total > 0 && row > total-1 {
		row = total - 1
	}
	return row
}

// screenToColumn converts a mouse event's screen X coordinate into a
// 1-based logical column index, inverting the frozen/scrolling seam
// visibleColumns uses to lay out the body (spec.md §4.6).
func (m Model) screenToColumn(x int) int {
	if m.desc == nil || len(m.desc.CRanges) == 0 {
		return 1
	}
	frozen := m.nav.FrozenWidth()
	abs := x
	if x >= frozen {
		abs = x + m.nav.CursorCol
	}
	for i, cr := range m.desc.CRanges {
		if abs >= cr.XMin && abs <= cr.XMax {
			return i + 1
		}
	}
	if abs < m.desc.CRanges[0].XMin {
		return 1
	}
	return len(m.desc.CRanges)
}

// handleMouse implements spec.md §4.5's mouse-drag selection modes
// (ctrl+drag over the body begins Mouse or MouseBlock with alt held,
// ctrl+drag over the header band begins MouseColumns, button release
// commits) and §4.4's footer-focus drag (a plain drag past the last data
// row enters the footer viewport; back above it restores body focus).
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.desc == nil || m.desc.Unstructured() {
		return m, nil
	}

	header := m.headerHeight()
	bodyEnd := header + m.bodyRowCount()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Ctrl {
			row, col := m.screenToDataRow(msg.Y, header), m.screenToColumn(msg.X)
			switch {
			case msg.Y < header:
				m.mark.BeginMouseColumns(col)
			case msg.Y < bodyEnd:
				m.mark.BeginMouse(row, col, msg.Alt)
			}
			return m, nil
		}

	case tea.MouseActionMotion:
		switch m.mark.Mode {
		case mark.Mouse, mark.MouseBlock, mark.MouseColumns:
			row, col := m.screenToDataRow(msg.Y, header), m.screenToColumn(msg.X)
			m.mark.UpdateMouse(row, col)
			return m, nil
		}

	case tea.MouseActionRelease:
		m.mark.CommitMouse()
		return m, nil
	}

	if msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion {
		if msg.Y >= bodyEnd {
			m.nav.EnterFooter()
		} else {
			m.nav.LeaveFooter()
		}
	}
	return m, nil
}

func (m *Model) openPrompt(kind promptKind, initial string) {
	m.prompt = kind
	m.promptInput.SetValue(initial)
	m.promptInput.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.promptInput.Blur()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		kind := m.prompt
		m.closePrompt()
		if kind != promptNone {
			return m, nil
		}
	case "enter":
		kind := m.prompt
		value := m.promptInput.Value()
		m.closePrompt()
		m.commitPrompt(kind, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m *Model) commitPrompt(kind promptKind, value string) {
	switch kind {
	case promptSearchForward, promptSearchBackward:
		m.deferSearchCommit(value, kind == promptSearchForward)
	case promptGoto:
		if n, err := strconv.Atoi(value); err == nil {
			m.defer_(func(m *Model) { m.nav.GotoLine(n) })
		}
	case promptSave:
		m.deferSaveToFile(value)
	}
}

func (m *Model) casePolicy() search.CasePolicy {
	switch {
	case m.opts.IgnoreCaseForce:
		return search.IgnoreCase
	case m.opts.IgnoreCase:
		return search.IgnoreLowerCase
	default:
		return search.CaseSensitive
	}
}

func (m *Model) deferSearchCommit(pattern string, forward bool) {
	m.defer_(func(m *Model) {
		if pattern == "" {
			return
		}
		m.srch.SetPattern(pattern, m.casePolicy())
		m.lastSearch = pattern
		m.lastWasFwd = forward
		if m.history != nil {
			_ = m.history.Append(pattern)
		}
		m.searchStep(forward)
	})
}

func (m *Model) searchStep(forward bool) {
	if m.srch.Pattern() == "" {
		return
	}
	var match search.Match
	var ok bool
	if forward {
		match, ok = m.srch.SearchNext(m.nav.AbsoluteCursorLine(), 0)
	} else {
		match, ok = m.srch.SearchPrev(m.nav.AbsoluteCursorLine(), 0)
	}
	if !ok {
		return
	}
	m.nav.GotoLine(match.Line - m.desc.FirstDataRow + 1)
}

func (m *Model) deferCursorLastRow() {
	m.defer_(func(m *Model) { m.nav.Dispatch(nav.CursorLastRow) })
}

func (m *Model) deferSort(desc bool) {
	m.defer_(func(m *Model) {
		if m.nav.VerticalCursorColumn <= 0 {
			return
		}
		col := m.nav.VerticalCursorColumn - 1
		om := detect.Sort(m.store, m.desc, col, false, desc)
		m.store.ApplyOrderMap(om)
	})
}

func (m *Model) nullPolicy() export.NullPolicy {
	return export.NullPolicy{NullStr: m.opts.NullString}
}

func (m *Model) deferCopyCurrentLine() {
	m.defer_(func(m *Model) {
		body, err := export.Export(m.store, m.desc, m.nav, m.mark, export.Request{
			Scope:  export.ExtendedCurrentLine,
			Format: export.CopyLineExtended,
			Policy: m.nullPolicy(),
		})
		if err != nil {
			m.err = err
			return
		}
		_ = clipboard.SystemDestination{}.Write(context.Background(), body)
	})
}

func (m *Model) deferCopySelection() {
	m.defer_(func(m *Model) {
		scope := export.Selected
		if m.mark.Mode == mark.None {
			scope = export.CurrentLine
		}
		body, err := export.Export(m.store, m.desc, m.nav, m.mark, export.Request{
			Scope:  scope,
			Format: export.Csv,
			Policy: m.nullPolicy(),
		})
		if err != nil {
			m.err = err
			return
		}
		_ = clipboard.SystemDestination{}.Write(context.Background(), body)
	})
}

func (m *Model) deferSaveToFile(path string) {
	if path == "" {
		return
	}
	m.defer_(func(m *Model) {
		body, err := export.Export(m.store, m.desc, m.nav, m.mark, export.Request{
			Scope:  export.AllLines,
			Format: export.Text,
			Policy: m.nullPolicy(),
		})
		if err != nil {
			m.err = err
			return
		}
		dest := export.FileDestination{Path: path}
		if err := dest.Write(context.Background(), body); err != nil {
			m.err = err
		}
	})
}

// checkQuitIfOneScreen implements --quit-if-one-screen: once the table is
// fully loaded and the terminal size is known, if every border/header/data/
// footer row fits within m.height the program quits immediately and Run
// prints RawDump() to stdout instead of leaving the pager's view up.
func (m *Model) checkQuitIfOneScreen() tea.Cmd {
	if !m.opts.QuitIfOneScreen || m.dumpOnExit || !m.loaded || m.height == 0 || m.desc == nil {
		return nil
	}

	needed := m.desc.LastDataRow - m.desc.FirstDataRow + 1 + 1 // data rows + status line
	if m.desc.BorderTopRow >= 0 {
		needed++
	}
	if m.desc.NamesLine >= 0 {
		needed++
	}
	if m.desc.BorderHeadRow >= 0 {
		needed++
	}
	if m.desc.BorderBottomRow >= 0 {
		needed++
	}
	if m.desc.FooterRow >= 0 {
		needed++
	}
	if needed > m.height {
		return nil
	}

	m.dumpOnExit = true
	m.quitting = true
	return tea.Quit
}

// DumpedScreen reports whether checkQuitIfOneScreen fired, so Run knows to
// print RawDump() after the program exits.
func (m Model) DumpedScreen() bool { return m.dumpOnExit }

// RawDump renders every stored line verbatim, the same simple raw-dump
// fallback spec.md §1's Non-goals already allow for output that never
// needs the alternate screen at all.
func (m Model) RawDump() string {
	var b strings.Builder
	for i := 0; i < m.store.Len(); i++ {
		text, _, ok := m.store.Get(i)
		if !ok {
			break
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}
