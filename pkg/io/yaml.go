package io

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/boxtree/pkg/dag"
	errs "github.com/matzehuels/boxtree/pkg/errors"
)

type yamlNode struct {
	Name     string     `yaml:"name"`
	Label    string     `yaml:"label"`
	Children []yamlNode `yaml:"children"`
}

// ReadYAML decodes a nested YAML tree. Every mapping needs a "name"; "label"
// and "children" are optional. A name that appears more than once refers to
// the same node, so repeated subtrees become shared children.
func ReadYAML(r io.Reader) (*dag.DAG, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var root yamlNode
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "empty YAML document")
		}
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := dag.New()
	if err := addYAMLNode(g, root); err != nil {
		return nil, err
	}
	return g, nil
}

func addYAMLNode(g *dag.DAG, n yamlNode) error {
	if _, err := addNode(g, n.Name, n.Label); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := addYAMLNode(g, c); err != nil {
			return err
		}
		// A shared subtree written out again repeats its edges.
		if slices.Contains(g.Children(n.Name), c.Name) {
			continue
		}
		if err := g.AddEdge(dag.Edge{From: n.Name, To: c.Name}); err != nil {
			return fmt.Errorf("edge %s->%s: %w", n.Name, c.Name, err)
		}
	}
	return nil
}
