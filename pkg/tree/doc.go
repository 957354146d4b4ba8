// Package tree draws ordered trees as box-drawing diagrams.
//
// Any type that can list its children satisfies [Node], so callers render their
// own tree types directly:
//
//	type Dir struct {
//	    Name string
//	    Subdirs []*Dir
//	}
//
//	func (d *Dir) Children() []*Dir { return d.Subdirs }
//
//	fmt.Println(tree.Vertical(root, func(d *Dir) string { return d.Name }))
//
// # Layouts
//
// [Vertical] puts every node above its children:
//
//	  A
//	┌─┴─┐
//	B   C
//
// [Horizontal] puts every node left of its children, one line per node:
//
//	  ┌B
//	 A┤
//	  └C
//
// Both layouts split the children of a node into two groups with [Split] so
// that the heavier subtrees sit on the right (vertical) or below (horizontal)
// and the diagram stays balanced.
//
// # Preconditions
//
// The input must be acyclic. Rendering recurses once per level, so a cycle
// never terminates and a very deep tree can exhaust the stack. Rendering has no
// side effects and keeps no state between calls: the same tree and stringify
// function always produce the same text.
package tree
