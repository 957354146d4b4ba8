package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/boxtree/pkg/errors"
)

func TestReadYAML_SharedChild(t *testing.T) {
	input := `
name: a
children:
  - name: b
    label: first
  - name: c
    children:
      - name: b
        label: second
`
	g, err := ReadYAML(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, []string{"a", "c"}, g.Parents("b"))
	b, ok := g.Node("b")
	require.True(t, ok)
	assert.Equal(t, "first", b.Label)
}

func TestReadYAML_RepeatedSubtree(t *testing.T) {
	input := `
name: root
children:
  - name: a
    children:
      - name: shared
        children:
          - name: leaf
  - name: b
    children:
      - name: shared
        children:
          - name: leaf
`
	g, err := ReadYAML(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 5, g.NodeCount())
	assert.Equal(t, 5, g.EdgeCount())
	assert.Equal(t, []string{"leaf"}, g.Children("shared"))
	assert.Equal(t, []string{"shared"}, g.Parents("leaf"))
	assert.Equal(t, []string{"a", "b"}, g.Parents("shared"))
}

func TestReadYAML_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errs.Code
	}{
		{"empty document", "", errs.ErrCodeInvalidInput},
		{"missing name", "label: x\n", errs.ErrCodeInvalidInput},
		{"missing child name", "name: a\nchildren:\n  - label: x\n", errs.ErrCodeInvalidInput},
		{"multiline label", "name: a\nlabel: \"x\\ny\"\n", errs.ErrCodeInvalidLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadYAML(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errs.Is(err, tt.code), err.Error())
		})
	}
}

func TestReadYAML_UnknownField(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("name: a\nkids: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kids")
}
