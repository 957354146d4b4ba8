package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/boxtree/pkg/errors"
)

func TestReadEdges(t *testing.T) {
	input := `
# dependencies
[root,a]
[root , b]
  a,c

[b,c]
`
	g, err := ReadEdges(strings.NewReader(input))
	require.NoError(t, err)

	ids := make([]string, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"root", "a", "b", "c"}, ids)
	assert.Equal(t, []string{"a", "b"}, g.Children("root"))
	assert.Equal(t, []string{"a", "b"}, g.Parents("c"))
}

func TestReadEdges_Empty(t *testing.T) {
	g, err := ReadEdges(strings.NewReader("\n# nothing here\n"))
	require.NoError(t, err)
	assert.Zero(t, g.NodeCount())
}

func TestReadEdges_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"single field", "[a,b]\n[c]\n", "line 2"},
		{"three fields", "a,b,c\n", "line 1"},
		{"empty parent", "[,b]\n", "line 1"},
		{"empty child", "\n\n[a,]\n", "line 3"},
		{"control character", "a,b\x01c\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEdges(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.line)
			assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
		})
	}
}
