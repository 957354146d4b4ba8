// Package nodelink renders graphs as node-link diagrams with Graphviz.
//
// The text layouts in package tree expand a node reached along several paths
// once per path. A node-link diagram draws every node exactly once with an
// arrow per edge, which is the better view when a graph shares many children.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] output can also be saved and processed with external Graphviz
// tools. [Options.Horizontal] switches rankdir to LR.
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process, so no system installation is needed.
package nodelink
