package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boxtree/pkg/dag"
	errs "github.com/matzehuels/boxtree/pkg/errors"
)

// requireAppGraph checks the graph described by the testdata/app.* files.
func requireAppGraph(t *testing.T, g *dag.DAG) {
	t.Helper()
	require.Equal(t, 4, g.NodeCount())
	require.Equal(t, 4, g.EdgeCount())

	assert.Equal(t, []string{"lib", "cli"}, g.Children("app"))
	assert.Equal(t, []string{"util"}, g.Children("lib"))
	assert.Equal(t, []string{"util"}, g.Children("cli"))
	assert.Equal(t, []string{"lib", "cli"}, g.Parents("util"))

	app, ok := g.Node("app")
	require.True(t, ok)
	assert.Equal(t, "My App", app.Label)
	cli, ok := g.Node("cli")
	require.True(t, ok)
	assert.Equal(t, "command line", cli.Label)
	lib, ok := g.Node("lib")
	require.True(t, ok)
	assert.Equal(t, "lib", lib.DisplayLabel())

	root, err := g.Root()
	require.NoError(t, err)
	assert.Equal(t, "app", root.ID)
}

func TestImport_AllFormats(t *testing.T) {
	for _, name := range []string{"app.json", "app.yaml", "app.toml"} {
		t.Run(name, func(t *testing.T) {
			g, err := Import(filepath.Join("testdata", name), FormatAuto)
			require.NoError(t, err)
			requireAppGraph(t, g)
		})
	}
}

func TestImport_ExampleEdges(t *testing.T) {
	g, err := Import(filepath.Join("testdata", "example.edges"), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, 25, g.NodeCount())
	assert.Equal(t, 24, g.EdgeCount())
	assert.Equal(t, []string{"2000", "3000", "1140", "1150"}, g.Children("1000"))

	root, err := g.Root()
	require.NoError(t, err)
	assert.Equal(t, "1000", root.ID)
	require.NoError(t, g.Validate())
}

func TestImport_MissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.edges"), FormatAuto)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImport_ExplicitFormatOverridesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	g, err := Import(path, FormatEdges)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, g.Children("a"))
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"tree.json":  FormatJSON,
		"tree.YAML":  FormatYAML,
		"tree.yml":   FormatYAML,
		"tree.toml":  FormatTOML,
		"tree.edges": FormatEdges,
		"tree.txt":   FormatEdges,
		"tree":       FormatAuto,
		"tree.csv":   FormatAuto,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":      FormatAuto,
		"auto":  FormatAuto,
		"EDGES": FormatEdges,
		"json":  FormatJSON,
		"yml":   FormatYAML,
		" toml": FormatTOML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat))
}

func TestRead_Sniff(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{"json", `{"nodes":[{"id":"a"}],"edges":[]}`, FormatJSON},
		{"toml", "[[edge]]\nfrom = \"a\"\nto = \"b\"\n", FormatTOML},
		{"yaml", "name: a\nchildren:\n  - name: b\n", FormatYAML},
		{"yaml document marker", "---\nname: a\n", FormatYAML},
		{"edges", "[a,b]\n", FormatEdges},
		{"bare edges", "# deps\n\na, b\n", FormatEdges},
		{"empty", "", FormatEdges},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sniff([]byte(tt.input)))
			_, err := Read(strings.NewReader(tt.input), FormatAuto)
			require.NoError(t, err)
		})
	}
}

func TestRead_UnknownFormat(t *testing.T) {
	_, err := Read(strings.NewReader("a,b"), Format("xml"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat))
}
