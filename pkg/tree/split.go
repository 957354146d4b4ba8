package tree

import (
	"cmp"
	"slices"
)

// Node is satisfied by any type that exposes its ordered children.
type Node[N any] interface {
	Children() []N
}

// weighted mirrors a subtree with precomputed sizes so that a render pass
// weighs every node exactly once.
type weighted[N any] struct {
	node     N
	index    int // position among its siblings
	weight   int
	children []*weighted[N]
}

func weigh[N Node[N]](n N, index int) *weighted[N] {
	kids := n.Children()
	w := &weighted[N]{node: n, index: index, weight: 1, children: make([]*weighted[N], len(kids))}
	for i, c := range kids {
		w.children[i] = weigh(c, i)
		w.weight += w.children[i].weight
	}
	return w
}

// split partitions the children into a light left group and a heavy right
// group. Children are sorted by weight and the heaviest remaining one moves
// right until the right side weighs at least as much as the left.
func (w *weighted[N]) split() (left, right []*weighted[N]) {
	left = slices.Clone(w.children)
	slices.SortStableFunc(left, func(a, b *weighted[N]) int {
		return cmp.Compare(a.weight, b.weight)
	})

	lsum, rsum := 0, 0
	for _, c := range left {
		lsum += c.weight
	}
	for len(left) > 0 && rsum < lsum {
		last := left[len(left)-1]
		left = left[:len(left)-1]
		right = append(right, last)
		lsum -= last.weight
		rsum += last.weight
	}

	// Moving from the heavy end reverses siblings of equal weight.
	slices.SortStableFunc(right, func(a, b *weighted[N]) int {
		if c := cmp.Compare(b.weight, a.weight); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
	return left, right
}

// Weight returns the number of nodes in the subtree rooted at n, n included.
func Weight[N Node[N]](n N) int {
	return weigh(n, 0).weight
}

// Split partitions the children of n into a left and a right group.
//
// The left group holds the lightest children in ascending weight, the right
// group the heaviest in descending weight. The right group is the smallest
// set of heaviest children whose total weight is at least that of the left
// group. Children of equal weight keep their original order in both groups.
func Split[N Node[N]](n N) (left, right []N) {
	l, r := weigh(n, 0).split()
	return nodes(l), nodes(r)
}

func nodes[N any](ws []*weighted[N]) []N {
	out := make([]N, len(ws))
	for i, w := range ws {
		out[i] = w.node
	}
	return out
}
