package io

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxtree/pkg/dag"
	errs "github.com/matzehuels/boxtree/pkg/errors"
)

type tomlFile struct {
	Nodes []tomlNode `toml:"node"`
	Edges []tomlEdge `toml:"edge"`
}

type tomlNode struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
}

type tomlEdge struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// ReadTOML decodes [[node]] and [[edge]] tables. Edges may name nodes that
// were never declared; declaring a node is only needed to give it a label or
// to fix its position in the node order. Unknown keys are rejected.
func ReadTOML(r io.Reader) (*dag.DAG, error) {
	var data tomlFile
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}

	g := dag.New()
	for _, n := range data.Nodes {
		if _, ok := g.Node(n.ID); ok {
			return nil, fmt.Errorf("node %s: %w", n.ID, dag.ErrDuplicateNodeID)
		}
		if _, err := addNode(g, n.ID, n.Label); err != nil {
			return nil, err
		}
	}
	for _, e := range data.Edges {
		if _, err := addNode(g, e.From, ""); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
		if _, err := addNode(g, e.To, ""); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}
