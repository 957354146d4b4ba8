package io

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/boxtree/pkg/dag"
	errs "github.com/matzehuels/boxtree/pkg/errors"
)

// Format names an input encoding.
type Format string

// Supported input formats.
const (
	FormatAuto  Format = "auto"
	FormatEdges Format = "edges"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// Formats lists the accepted format names in help-text order.
var Formats = []Format{FormatAuto, FormatEdges, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat converts a user-supplied name into a Format. The empty string
// means [FormatAuto]; "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case "yml":
		return FormatYAML, nil
	case FormatAuto, FormatEdges, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unknown input format %q (must be one of: auto, edges, json, yaml, toml)", s)
	}
}

// DetectFormat guesses the format of a file from its extension. It returns
// FormatAuto for unknown extensions so the content can be sniffed instead.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".edges", ".txt":
		return FormatEdges
	default:
		return FormatAuto
	}
}

// Read decodes r in the given format. FormatAuto sniffs the content.
// Read does not close r.
func Read(r io.Reader, f Format) (*dag.DAG, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if f == FormatAuto || f == "" {
		f = sniff(data)
	}

	src := bytes.NewReader(data)
	switch f {
	case FormatEdges:
		return ReadEdges(src)
	case FormatJSON:
		return ReadJSON(src)
	case FormatYAML:
		return ReadYAML(src)
	case FormatTOML:
		return ReadTOML(src)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown input format %q", f)
	}
}

// Import reads the file at path. With FormatAuto the extension decides, and
// the content is sniffed when the extension is not recognized.
func Import(path string, f Format) (*dag.DAG, error) {
	if f == FormatAuto || f == "" {
		f = DetectFormat(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	g, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// sniff inspects the first non-blank, non-comment line.
func sniff(data []byte) Format {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "{"):
			return FormatJSON
		case strings.HasPrefix(line, "[["):
			return FormatTOML
		case strings.HasPrefix(line, "---"), isYAMLKey(line):
			return FormatYAML
		default:
			return FormatEdges
		}
	}
	return FormatEdges
}

func isYAMLKey(line string) bool {
	key, _, ok := strings.Cut(line, ":")
	return ok && key != "" && !strings.ContainsAny(key, "[], \t")
}

// addNode adds or updates a node after validating its ID and label. A label
// given for a node that already has one is ignored.
func addNode(g *dag.DAG, id, label string) (*dag.Node, error) {
	if err := errs.ValidateNodeID(id); err != nil {
		return nil, err
	}
	if err := errs.ValidateLabel(label); err != nil {
		return nil, fmt.Errorf("node %s: %w", id, err)
	}
	n := g.EnsureNode(id)
	if n.Label == "" {
		n.Label = label
	}
	return n, nil
}
