package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boxtree/pkg/dag"
	"github.com/matzehuels/boxtree/pkg/pipeline"
)

func testViewModel(t *testing.T, edges ...dag.Edge) viewModel {
	t.Helper()
	g := dag.New()
	for _, e := range edges {
		g.EnsureNode(e.From)
		g.EnsureNode(e.To)
		require.NoError(t, g.AddEdge(e))
	}
	root, err := g.Root()
	require.NoError(t, err)

	opts := pipeline.Options{}
	require.NoError(t, opts.ValidateAndSetDefaults())
	m := newViewModel(context.Background(), g, root.ID, opts)
	require.NoError(t, m.err)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m viewModel, msgs ...tea.Msg) viewModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(viewModel)
	}
	return m
}

func TestViewModelLayout(t *testing.T) {
	m := testViewModel(t, dag.Edge{From: "a", To: "b"}, dag.Edge{From: "a", To: "c"})
	assert.Equal(t, []string{"  a  ", "┌─┴─┐", "b   c"}, m.lines)
	assert.Equal(t, 5, m.maxWidth)

	view := m.View()
	assert.Contains(t, view, "┌─┴─┐")
	assert.Contains(t, view, "vertical")
	assert.Contains(t, view, "3 nodes")
}

func TestViewModelToggleOrientation(t *testing.T) {
	m := testViewModel(t, dag.Edge{From: "a", To: "b"}, dag.Edge{From: "a", To: "c"})

	m = update(m, keyMsg("tab"))
	assert.True(t, m.opts.IsHorizontal())
	assert.Equal(t, []string{"  ┌b ", " a┤", "  └c "}, m.lines)

	m = update(m, keyMsg("o"))
	assert.False(t, m.opts.IsHorizontal())
	assert.Equal(t, "┌─┴─┐", m.lines[1])
}

func TestViewModelScroll(t *testing.T) {
	var edges []dag.Edge
	prev := "n0"
	for _, id := range []string{"n1", "n2", "n3", "n4", "n5", "n6", "n7", "n8", "n9"} {
		edges = append(edges, dag.Edge{From: prev, To: id})
		prev = id
	}
	m := testViewModel(t, edges...)
	m = update(m, tea.WindowSizeMsg{Width: 6, Height: 8})
	body := m.bodyHeight()
	require.Equal(t, 5, body)
	require.Greater(t, len(m.lines), body)

	m = update(m, keyMsg("j"), keyMsg("down"))
	assert.Equal(t, 2, m.top)

	m = update(m, keyMsg("k"), keyMsg("k"), keyMsg("k"))
	assert.Equal(t, 0, m.top, "scrolling stops at the top")

	m = update(m, keyMsg("G"))
	assert.Equal(t, len(m.lines)-body, m.top)

	m = update(m, keyMsg("j"))
	assert.Equal(t, len(m.lines)-body, m.top, "scrolling stops at the bottom")

	m = update(m, keyMsg("l"))
	assert.Equal(t, min(horizontalStep, m.maxWidth-m.width), m.left)

	m = update(m, keyMsg("g"))
	assert.Zero(t, m.top)
	assert.Zero(t, m.left)
}

func TestViewModelQuit(t *testing.T) {
	m := testViewModel(t, dag.Edge{From: "a", To: "b"})
	for _, k := range []string{"q", "esc"} {
		_, cmd := m.Update(keyMsg(k))
		require.NotNil(t, cmd, k)
		assert.Equal(t, tea.Quit(), cmd(), k)
	}
}

func TestVisibleSlice(t *testing.T) {
	tests := []struct {
		line  string
		left  int
		width int
		want  string
	}{
		{"┌─┴─┐", 0, 10, "┌─┴─┐"},
		{"┌─┴─┐", 0, 3, "┌─┴"},
		{"┌─┴─┐", 2, 2, "┴─"},
		{"b   c", 4, 10, "c"},
		{"abc", 5, 10, ""},
	}

	for _, tt := range tests {
		got := visibleSlice(tt.line, tt.left, tt.width)
		assert.Equal(t, tt.want, strings.TrimRight(got, " "), "visibleSlice(%q, %d, %d)", tt.line, tt.left, tt.width)
	}
}

func TestViewModelHelp(t *testing.T) {
	m := testViewModel(t, dag.Edge{From: "a", To: "b"})
	view := m.View()
	assert.Contains(t, view, "quit")
	assert.Contains(t, view, "orientation")

	assert.Len(t, m.keys.FullHelp(), 3)
	assert.NotEmpty(t, m.keys.ShortHelp())
}
