// Package pkg holds the boxtree libraries.
//
// # Overview
//
// boxtree draws trees with box-drawing characters. The packages form a
// straight line from input to output:
//
//	edge list / JSON / YAML / TOML
//	         ↓
//	    [io] package (decode into a graph)
//	         ↓
//	    [dag] + [dag/transform] (validate, break cycles, reduce)
//	         ↓
//	    [tree] + [column] (lay out the text diagram)
//	         ↓
//	    text, or DOT/SVG via [render/nodelink], or JSON via [io]
//
// [pipeline] wires these stages together with caching from [cache] and
// timing hooks from [observability]. [errors] defines the error codes shared
// by the command line and the HTTP server.
//
// # Quick Start
//
//	g, err := io.Import("deps.edges", io.FormatAuto)
//	if err != nil {
//	    return err
//	}
//	root, err := g.Root()
//	if err != nil {
//	    return err
//	}
//	t, _ := g.Tree(root.ID)
//	fmt.Println(tree.Vertical(t, dag.TreeNode.Label))
package pkg
