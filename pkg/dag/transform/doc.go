// Package transform rewrites a graph so it can be drawn as a tree.
//
// # Cycles
//
// Trees cannot contain cycles. [BreakCycles] removes the back edges found by a
// depth-first search that starts from the graph's sources, leaving every node
// reachable as before but with no way to loop.
//
// # Transitive Reduction
//
// In a dependency graph, app → lib → core often comes with a redundant
// app → core edge. Drawn as a tree, core then appears twice under app.
// [TransitiveReduction] removes every edge whose target is also reachable
// through another child, so each node hangs only from its nearest parents.
//
// Both transforms mutate the graph in place and keep the insertion order of
// the edges they leave alone.
package transform
