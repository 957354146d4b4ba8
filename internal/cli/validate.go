package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxtree/pkg/dag"
	"github.com/matzehuels/boxtree/pkg/pipeline"
)

type validateOpts struct {
	tree treeFlags
	list bool
}

// validateCommand creates the validate command. It runs the parse and prepare
// stages only, so it reports the same errors render would without drawing.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a tree can be drawn",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			po := c.config.options()
			opts.tree.apply(cmd.Flags(), &po)
			return c.runValidate(cmd.Context(), args, po, opts.list)
		},
	}

	opts.tree.register(cmd.Flags())
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list every node with its parents and children")

	completeFlagValues(cmd)
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, args []string, po pipeline.Options, list bool) error {
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

	printSuccess("%s is a valid tree", po.Source)
	printKeyValue("nodes", strconv.Itoa(res.Stats.NodeCount))
	printKeyValue("edges", strconv.Itoa(res.Stats.EdgeCount))
	printKeyValue("root", res.Root)
	if res.Stats.CycleEdges > 0 {
		printKeyValue("cycles", fmt.Sprintf("%d edges removed", res.Stats.CycleEdges))
	}
	if res.Stats.ReducedEdges > 0 {
		printKeyValue("reduced", fmt.Sprintf("%d edges removed", res.Stats.ReducedEdges))
	}
	if shared := sharedNodes(res.Graph); len(shared) > 0 {
		printKeyValue("shared", strings.Join(shared, ", "))
		printKeyValue("drawn", fmt.Sprintf("%d nodes", res.Stats.TreeNodes))
	}
	limit := po.MaxNodes
	if limit <= 0 {
		limit = pipeline.DefaultMaxNodes
	}
	if res.Stats.TreeNodes > limit {
		printWarning("text diagram expands to %d nodes (limit %d); use -f dot, svg or json", res.Stats.TreeNodes, limit)
	}

	if list {
		fmt.Fprintln(c.out, nodeTable(res.Graph))
	}
	return nil
}

// sharedNodes returns the IDs of nodes with more than one parent. The text
// diagram draws their subtrees once per parent.
func sharedNodes(g *dag.DAG) []string {
	var ids []string
	for _, n := range g.Nodes() {
		if len(g.Parents(n.ID)) > 1 {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func nodeTable(g *dag.DAG) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		rows = append(rows, []string{
			n.ID,
			n.Label,
			strings.Join(g.Parents(n.ID), ", "),
			strings.Join(g.Children(n.ID), ", "),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Parents", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
