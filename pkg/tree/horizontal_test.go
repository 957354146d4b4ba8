package tree

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestHorizontal(t *testing.T) {
	tests := []struct {
		name string
		root *testNode
		want []string
	}{
		{
			name: "leaf",
			root: node("X"),
			want: []string{" X "},
		},
		{
			name: "two leaves",
			root: node("A", node("B"), node("C")),
			want: []string{
				"  ┌B ",
				" A┤",
				"  └C ",
			},
		},
		{
			name: "single child",
			root: node("A", node("B")),
			want: []string{
				" A┐",
				"  └B ",
			},
		},
		{
			name: "three leaves",
			root: node("A", node("B"), node("C"), node("D")),
			want: []string{
				"  ┌B ",
				" A┤",
				"  ├C ",
				"  └D ",
			},
		},
		{
			name: "chain",
			root: node("A", node("B", node("C"))),
			want: []string{
				" A┐",
				"  └B┐",
				"    └C ",
			},
		},
		{
			name: "rail continues past nested brackets",
			root: node("A", node("B", node("C"), node("D")), node("E")),
			want: []string{
				"  ┌E ",
				" A┤",
				"  │ ┌C ",
				"  └B┤",
				"    └D ",
			},
		},
		{
			name: "indent follows label width",
			root: node("root", node("a"), node("bb")),
			want: []string{
				"     ┌a ",
				" root┤",
				"     └bb ",
			},
		},
		{
			name: "empty label",
			root: node("", node("B"), node("C")),
			want: []string{
				" ┌B ",
				" ┤",
				" └C ",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := strings.Join(tt.want, "\n")
			if got := Horizontal(tt.root, name); got != want {
				t.Errorf("Horizontal() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestHorizontalOneLinePerNode(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 5))
	for range 40 {
		root := randomTree(r, 1+r.IntN(60))
		lines := HorizontalLines(root, name)
		if want := countNodes(root); len(lines) != want {
			t.Errorf("HorizontalLines() returned %d lines, want %d", len(lines), want)
		}
		if got := strings.Count(Horizontal(root, name), "\n") + 1; got != len(lines) {
			t.Errorf("Horizontal() has %d lines, want %d", got, len(lines))
		}
	}
}

func TestHorizontalDeterministic(t *testing.T) {
	root := randomTree(rand.New(rand.NewPCG(2, 2)), 25)
	first := Horizontal(root, name)
	for range 5 {
		if got := Horizontal(root, name); got != first {
			t.Fatalf("Horizontal() changed between calls:\n%s\nthen\n%s", first, got)
		}
	}
}
