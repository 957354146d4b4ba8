// Package dag stores the parent/child graph that boxtree draws.
//
// # Overview
//
// Input formats (edge lists, JSON, YAML, TOML) all decode into a [DAG]: a set
// of uniquely identified nodes plus directed edges from parent to child. The
// graph keeps insertion order for nodes and for each node's children, so the
// same input always yields the same diagram.
//
// # Basic Usage
//
//	g := dag.New()
//	g.EnsureNode("app")
//	g.EnsureNode("lib")
//	_ = g.AddEdge(dag.Edge{From: "app", To: "lib"})
//
//	root, err := g.Root()
//	if err != nil {
//	    return err
//	}
//	t, _ := g.Tree(root.ID)
//	fmt.Println(tree.Vertical(t, dag.TreeNode.Label))
//
// # Trees
//
// The renderers in package tree need a value whose Children method lists its
// subtrees. [DAG.Tree] returns a [TreeNode] view for that purpose. The view
// follows edges lazily; a node reachable along two paths is drawn once per
// path.
//
// # Validation
//
// Rendering a graph with a cycle never terminates. [DAG.Validate] detects
// cycles with a white/gray/black depth-first search in O(N+E) and returns
// [ErrGraphHasCycle]; callers must validate before building trees, or break
// cycles first with transform.BreakCycles.
//
// # Concurrency
//
// A DAG is not safe for concurrent mutation. Concurrent reads, including
// rendering several TreeNode views, are safe once construction is finished.
package dag
