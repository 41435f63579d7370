package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dbrowse/tabpager/internal/config"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/dbrowse/tabpager/internal/logging"
	"github.com/dbrowse/tabpager/internal/source"
)

// Run builds the model, forwards src's lines/errors and the process's
// SIGINT/SIGTERM into the Bubble Tea program exactly as the teacher's
// main() forwards tailer.Lines/tailer.Errors, and runs the program to
// completion. The only non-nil return is a fatal error; cmd/tabpager is
// the sole caller of os.Exit (SPEC_FULL §10.4).
func Run(src source.Source, opts *config.Options, logger *logging.Logger, history *config.History) error {
	store := lines.New()
	m := New(opts, logger, history, store)

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if !opts.NoMouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, progOpts...)

	go forwardSource(p, src)
	go forwardSignals(p)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := finalModel.(Model); ok && fm.DumpedScreen() {
		fmt.Print(fm.RawDump())
	}
	return nil
}

func forwardSource(p *tea.Program, src source.Source) {
	linesCh := src.Lines()
	errsCh := src.Errors()
	for linesCh != nil {
		select {
		case line, ok := <-linesCh:
			if !ok {
				linesCh = nil
				continue
			}
			p.Send(NewLineMsg(line))
		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			p.Send(SourceErrMsg{Err: err})
		}
	}
	for errsCh != nil {
		select {
		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			p.Send(SourceErrMsg{Err: err})
		default:
			errsCh = nil
		}
	}
	p.Send(SourceDoneMsg{})
}

func forwardSignals(p *tea.Program) {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	for sig := range ch {
		switch sig {
		case syscall.SIGINT:
			p.Send(sigIntMsg{})
		case syscall.SIGTERM:
			p.Send(sigTermMsg{})
			return
		}
	}
}
