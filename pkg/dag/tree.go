package dag

import "math"

// TreeNode is a read-only view of a graph node as the root of a tree. It
// satisfies the Node constraint of package tree.
type TreeNode struct {
	g  *DAG
	id string
}

// Tree returns the tree rooted at id. It returns ErrUnknownNode if id is not
// in the graph.
func (d *DAG) Tree(id string) (TreeNode, error) {
	if _, ok := d.nodes[id]; !ok {
		return TreeNode{}, ErrUnknownNode
	}
	return TreeNode{g: d, id: id}, nil
}

// ID returns the ID of the underlying node.
func (t TreeNode) ID() string { return t.id }

// Label returns the node's display label.
func (t TreeNode) Label() string {
	if n, ok := t.g.nodes[t.id]; ok {
		return n.DisplayLabel()
	}
	return t.id
}

// Children returns views of the node's children in edge order.
func (t TreeNode) Children() []TreeNode {
	ids := t.g.outgoing[t.id]
	kids := make([]TreeNode, len(ids))
	for i, id := range ids {
		kids[i] = TreeNode{g: t.g, id: id}
	}
	return kids
}

// TreeSize returns the number of nodes in the tree rooted at id once shared
// children are expanded at every position, saturating at math.MaxInt. It
// runs in O(V+E). A cycle reachable from id counts as math.MaxInt. Unknown
// IDs have size 0.
func (d *DAG) TreeSize(id string) int {
	if _, ok := d.nodes[id]; !ok {
		return 0
	}
	sizes := make(map[string]int, len(d.nodes))
	var size func(id string) int
	size = func(id string) int {
		if s, ok := sizes[id]; ok {
			return s
		}
		sizes[id] = math.MaxInt // in progress; a cycle back here saturates
		s := 1
		for _, child := range d.outgoing[id] {
			c := size(child)
			if c > math.MaxInt-s {
				s = math.MaxInt
				break
			}
			s += c
		}
		sizes[id] = s
		return s
	}
	return size(id)
}
