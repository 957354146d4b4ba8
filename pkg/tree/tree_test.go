package tree

import (
	"math/rand/v2"
	"strconv"
)

type testNode struct {
	name string
	kids []*testNode
}

func (n *testNode) Children() []*testNode { return n.kids }

func node(name string, kids ...*testNode) *testNode {
	return &testNode{name: name, kids: kids}
}

func name(n *testNode) string { return n.name }

func names(ns []*testNode) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.name
	}
	return out
}

// randomTree builds a tree of size nodes where every node attaches to a
// random earlier node, so shapes range from chains to wide fans.
func randomTree(r *rand.Rand, size int) *testNode {
	all := []*testNode{node("n0")}
	for i := 1; i < size; i++ {
		parent := all[r.IntN(len(all))]
		child := node("n" + strconv.Itoa(i))
		parent.kids = append(parent.kids, child)
		all = append(all, child)
	}
	return all[0]
}

func countNodes(n *testNode) int {
	total := 1
	for _, c := range n.kids {
		total += countNodes(c)
	}
	return total
}
