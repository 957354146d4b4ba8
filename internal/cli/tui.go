package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxtree/pkg/column"
	"github.com/matzehuels/boxtree/pkg/dag"
	"github.com/matzehuels/boxtree/pkg/pipeline"
)

var (
	viewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// viewChrome is the number of lines taken by the title and help bar.
const viewChrome = 3

// horizontalStep is how many columns h/l scroll at once.
const horizontalStep = 4

var viewWidth = &runewidth.Condition{EastAsianWidth: false}

type viewOpts struct {
	tree   treeFlags
	layout layoutFlags
}

// viewCommand creates the view command, an interactive pager for diagrams
// too large for the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a tree interactively",
		Long: `Open a tree in a full-screen viewer.

Keys: tab/o toggle orientation, arrows or hjkl scroll, g/G jump to top or
bottom, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			po := c.config.options()
			opts.tree.apply(cmd.Flags(), &po)
			if err := opts.layout.apply(cmd.Flags(), &po); err != nil {
				return err
			}
			return c.runView(cmd.Context(), args, po)
		},
	}

	opts.tree.register(cmd.Flags())
	opts.layout.register(cmd.Flags())

	completeFlagValues(cmd)
	return cmd
}

func (c *CLI) runView(ctx context.Context, args []string, po pipeline.Options) error {
	po.Logger = loggerFromContext(ctx)

	src, err := c.openInput(args, &po)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, po.Logger)
	g, err := runner.Parse(ctx, src, po)
	if err != nil {
		return err
	}
	res, err := runner.Prepare(ctx, g, po)
	if err != nil {
		return err
	}
	if err := po.ValidateAndSetDefaults(); err != nil {
		return err
	}

	m := newViewModel(ctx, res.Graph, res.Root, po)
	if m.err != nil {
		return m.err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// viewModel is the bubbletea model behind the view command.
type viewModel struct {
	ctx  context.Context
	g    *dag.DAG
	root string
	opts pipeline.Options

	lines    []string
	maxWidth int
	err      error

	width, height int
	top, left     int

	keys viewKeyMap
	help help.Model
}

func newViewModel(ctx context.Context, g *dag.DAG, root string, opts pipeline.Options) viewModel {
	m := viewModel{
		ctx:    ctx,
		g:      g,
		root:   root,
		opts:   opts,
		width:  80,
		height: 24,
		keys:   defaultViewKeyMap(),
		help:   help.New(),
	}
	m.layout()
	return m
}

// layout redraws the diagram in the current orientation.
func (m *viewModel) layout() {
	text, err := pipeline.Text(m.ctx, m.g, m.root, m.opts)
	if err != nil {
		m.err = err
		return
	}
	m.lines = strings.Split(text, "\n")
	m.maxWidth = 0
	for _, line := range m.lines {
		m.maxWidth = max(m.maxWidth, column.StringWidth(line))
	}
	m.top, m.left = 0, 0
}

func (m viewModel) bodyHeight() int {
	return max(m.height-viewChrome, 1)
}

func (m *viewModel) clamp() {
	m.top = min(m.top, len(m.lines)-m.bodyHeight())
	m.top = max(m.top, 0)
	m.left = min(m.left, m.maxWidth-m.width)
	m.left = max(m.left, 0)
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.opts.IsHorizontal() {
				m.opts.Orientation = pipeline.OrientationVertical
			} else {
				m.opts.Orientation = pipeline.OrientationHorizontal
			}
			m.layout()
		case key.Matches(msg, m.keys.Up):
			m.top--
		case key.Matches(msg, m.keys.Down):
			m.top++
		case key.Matches(msg, m.keys.PageUp):
			m.top -= m.bodyHeight()
		case key.Matches(msg, m.keys.PageDown):
			m.top += m.bodyHeight()
		case key.Matches(msg, m.keys.Left):
			m.left -= horizontalStep
		case key.Matches(msg, m.keys.Right):
			m.left += horizontalStep
		case key.Matches(msg, m.keys.Top):
			m.top, m.left = 0, 0
		case key.Matches(msg, m.keys.Bottom):
			m.top = len(m.lines)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	}
	m.clamp()
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.root))
	b.WriteString(viewHelpStyle.Render(fmt.Sprintf("  %s · %d nodes", m.opts.Orientation, m.g.NodeCount())))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(viewErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else {
		end := min(m.top+m.bodyHeight(), len(m.lines))
		for _, line := range m.lines[m.top:end] {
			b.WriteString(visibleSlice(line, m.left, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString(viewHelpStyle.Render(fmt.Sprintf("  [%d-%d/%d]",
		min(m.top+1, len(m.lines)), min(m.top+m.bodyHeight(), len(m.lines)), len(m.lines))))
	return b.String()
}

// visibleSlice returns the display columns [left, left+width) of line.
func visibleSlice(line string, left, width int) string {
	if left > 0 {
		line = viewWidth.TruncateLeft(line, left, "")
	}
	return viewWidth.Truncate(line, width, "")
}
