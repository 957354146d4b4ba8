package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the same
	// ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node does
	// not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node does
	// not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownNode is returned by [DAG.Tree] for an ID that is not in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a directed cycle is
	// detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrNoRoot is returned by [DAG.Root] when no node is free of incoming
	// edges (an empty graph, or every node sits on a cycle).
	ErrNoRoot = errors.New("graph has no root")

	// ErrMultipleRoots is returned by [DAG.Root] when more than one node has no
	// incoming edges.
	ErrMultipleRoots = errors.New("graph has more than one root")
)

// Metadata stores arbitrary key-value pairs attached to a node.
type Metadata map[string]any

// Node is a vertex of the graph.
type Node struct {
	ID    string   // Unique identifier
	Label string   // Display text; the ID is used when empty
	Meta  Metadata // Arbitrary metadata (never nil after AddNode)
}

// DisplayLabel returns Label, or ID when no label is set.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed parent → child connection.
type Edge struct {
	From string // Parent node ID
	To   string // Child node ID
}

// DAG is a directed graph of uniquely identified nodes that preserves
// insertion order. Despite the name it can hold cycles until [DAG.Validate]
// rejects them; importers build the graph first and validate afterwards.
//
// The zero value is not usable - use New.
type DAG struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	outgoing map[string][]string // nodeID -> children IDs
	incoming map[string][]string // nodeID -> parent IDs
}

// New creates an empty graph.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node. It returns ErrInvalidNodeID for an empty ID and
// ErrDuplicateNodeID if the ID is taken.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	d.nodes[n.ID] = &n
	d.order = append(d.order, n.ID)
	return nil
}

// EnsureNode returns the node with the given ID, adding a bare node first if
// it does not exist yet. It returns nil only for an empty ID.
func (d *DAG) EnsureNode(id string) *Node {
	if n, ok := d.nodes[id]; ok {
		return n
	}
	if err := d.AddNode(Node{ID: id}); err != nil {
		return nil
	}
	return d.nodes[id]
}

// AddEdge adds a directed edge between two existing nodes. The child is
// appended after the parent's existing children.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the first edge from→to if it exists.
func (d *DAG) RemoveEdge(from, to string) {
	if i := slices.Index(d.edges, Edge{From: from, To: to}); i >= 0 {
		d.edges = slices.Delete(d.edges, i, i+1)
	}
	if i := slices.Index(d.outgoing[from], to); i >= 0 {
		d.outgoing[from] = slices.Delete(d.outgoing[from], i, i+1)
	}
	if i := slices.Index(d.incoming[to], from); i >= 0 {
		d.incoming[to] = slices.Delete(d.incoming[to], i, i+1)
	}
}

// Node returns the node with the given ID and true, or nil and false.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the child IDs of a node in edge insertion order. The
// returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the parent IDs of a node. The returned slice should not be
// modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// Sources returns the nodes without incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Root returns the single node without incoming edges. It returns ErrNoRoot
// when there is none and ErrMultipleRoots when there are several.
func (d *DAG) Root() (*Node, error) {
	sources := d.Sources()
	switch len(sources) {
	case 0:
		return nil, ErrNoRoot
	case 1:
		return sources[0], nil
	default:
		return nil, ErrMultipleRoots
	}
}

// Validate returns ErrGraphHasCycle if the graph contains a directed cycle.
func (d *DAG) Validate() error {
	if len(d.FindCycle()) > 0 {
		return ErrGraphHasCycle
	}
	return nil
}

// FindCycle returns the node IDs of one directed cycle, first node repeated
// at the end, or nil if the graph is acyclic.
func (d *DAG) FindCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var stack, cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[start:]), child)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range d.order {
		if color[id] == white && dfs(id) {
			return cycle
		}
	}
	return nil
}
