package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/boxtree/pkg/dag"
	errs "github.com/matzehuels/boxtree/pkg/errors"
)

func TestReadTOML_EdgesOnly(t *testing.T) {
	input := `
[[edge]]
from = "a"
to = "b"

[[edge]]
from = "a"
to = "c"
`
	g, err := ReadTOML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, g.Children("a"))
}

func TestReadTOML_Errors(t *testing.T) {
	t.Run("duplicate node", func(t *testing.T) {
		_, err := ReadTOML(strings.NewReader("[[node]]\nid = \"a\"\n[[node]]\nid = \"a\"\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, dag.ErrDuplicateNodeID)
	})
	t.Run("unknown key", func(t *testing.T) {
		_, err := ReadTOML(strings.NewReader("[[node]]\nid = \"a\"\ncolor = \"red\"\n"))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
		assert.Contains(t, err.Error(), "color")
	})
	t.Run("empty endpoint", func(t *testing.T) {
		_, err := ReadTOML(strings.NewReader("[[edge]]\nfrom = \"a\"\n"))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput))
	})
	t.Run("syntax", func(t *testing.T) {
		_, err := ReadTOML(strings.NewReader("[[edge\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})
}
