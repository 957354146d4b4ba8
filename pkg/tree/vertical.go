package tree

import (
	"strings"

	"github.com/matzehuels/boxtree/pkg/column"
)

// Vertical draws root above its children and returns the diagram as text.
// Lines are padded to a common width and joined with "\n".
func Vertical[N Node[N]](root N, stringify func(N) string) string {
	return VerticalColumn(root, stringify).String()
}

// VerticalColumn is like [Vertical] but returns the diagram as a column so it
// can be combined with other blocks.
func VerticalColumn[N Node[N]](root N, stringify func(N) string) column.Column {
	return vertical(weigh(root, 0), stringify)
}

func vertical[N Node[N]](w *weighted[N], stringify func(N) string) column.Column {
	l, r := w.split()

	var lc, rc column.Column
	if len(l) > 0 {
		lc = column.Left(verticalAll(l, stringify))
	}
	if len(r) > 0 {
		rc = column.Right(verticalAll(r, stringify))
	}
	children := column.Connect(lc, rc)

	label := stringify(w.node)
	half := column.StringWidth(label) / 2
	label = strings.Repeat(" ", max(lc.Width()-half, 0)) + label + strings.Repeat(" ", max(rc.Width()-half, 0))

	block := make(column.Column, 0, len(children)+1)
	block = append(block, label)
	block = append(block, children...)
	return column.Combine([]column.Column{block})
}

func verticalAll[N Node[N]](ws []*weighted[N], stringify func(N) string) []column.Column {
	out := make([]column.Column, len(ws))
	for i, w := range ws {
		out[i] = vertical(w, stringify)
	}
	return out
}
