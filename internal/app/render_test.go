package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dbrowse/tabpager/internal/config"
	"github.com/dbrowse/tabpager/internal/lines"
	"github.com/dbrowse/tabpager/internal/logging"
)

func newNopLogger(t *testing.T) (*logging.Logger, error) {
	t.Helper()
	return logging.New("")
}

func newUnstructuredStore(t *testing.T) *lines.Store {
	t.Helper()
	s := lines.New()
	s.Append("just some free text")
	s.Append("with no detectable table structure at all")
	return s
}

func TestRenderIncludesColumnNamesAndDataRows(t *testing.T) {
	opts := config.Defaults()
	m := newTestModel(t, opts)

	out := m.render()
	require.Contains(t, out, "id")
	require.Contains(t, out, "name")
	require.Contains(t, out, "aaa")
}

func TestRenderShowsPromptLabelWhenOpen(t *testing.T) {
	opts := config.Defaults()
	m := newTestModel(t, opts)
	m.openPrompt(promptSearchForward, "")

	out := m.render()
	require.True(t, strings.Contains(out, "/"))
}

func TestRenderShowsStatusLineWhenNoPromptOpen(t *testing.T) {
	opts := config.Defaults()
	m := newTestModel(t, opts)

	out := m.render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
}

func TestRenderFallsBackToPlainTextForUnstructuredInput(t *testing.T) {
	opts := config.Defaults()
	logger, err := newNopLogger(t)
	require.NoError(t, err)
	store := newUnstructuredStore(t)
	m := New(opts, logger, config.NewHistory(""), store)
	m.width, m.height = 80, 24
	m.nav.Resize(20, 80)

	out := m.render()
	require.Contains(t, out, "just some free text")
}

func TestScrollbarOmittedWhenDisabledOrTableFits(t *testing.T) {
	opts := config.Defaults()
	opts.NoScrollbar = true
	m := newTestModel(t, opts)

	sb := m.scrollbar(3)
	require.Equal(t, 0, sb.SliderSize)

	opts2 := config.Defaults()
	m2 := newTestModel(t, opts2)
	sb2 := m2.scrollbar(3)
	require.Equal(t, 0, sb2.SliderSize, "twenty visible rows already show the whole three-row table")
}
