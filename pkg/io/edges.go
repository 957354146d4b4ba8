package io

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/matzehuels/boxtree/pkg/dag"
	errs "github.com/matzehuels/boxtree/pkg/errors"
)

var edgeSeparator = regexp.MustCompile(`\s*,\s*`)

// ReadEdges decodes an edge list: one "[parent,child]" pair per line.
//
// Brackets and the whitespace around the comma are optional. Blank lines and
// lines starting with # are skipped. Nodes are created the first time they are
// mentioned, and children keep the order of their lines. A line without
// exactly two non-empty IDs is an error that names the line number.
func ReadEdges(r io.Reader) (*dag.DAG, error) {
	g := dag.New()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
		fields := edgeSeparator.Split(line, -1)
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "line %d: want [parent,child], got %q", lineNo, sc.Text())
		}

		if _, err := addNode(g, fields[0], ""); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := addNode(g, fields[1], ""); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := g.AddEdge(dag.Edge{From: fields[0], To: fields[1]}); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return g, nil
}
