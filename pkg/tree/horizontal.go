package tree

import (
	"strings"

	"github.com/matzehuels/boxtree/pkg/column"
)

// position tells a node where it sits in its parent's bracket.
type position int

const (
	positionRoot   position = iota
	positionTop             // first child of the upper group
	positionMiddle          // neither first nor last
	positionBottom          // last child of the lower group
)

const (
	rail      = "│"
	railTee   = "├"
	railMerge = "┤"
)

// Horizontal draws root left of its children and returns the diagram as text,
// one line per node joined with "\n".
func Horizontal[N Node[N]](root N, stringify func(N) string) string {
	return strings.Join(HorizontalLines(root, stringify), "\n")
}

// HorizontalLines is like [Horizontal] but returns the individual lines.
// The result always has exactly one line per node.
func HorizontalLines[N Node[N]](root N, stringify func(N) string) []string {
	h := &horizontal[N]{stringify: stringify}
	h.walk(weigh(root, 0), "", positionRoot)
	return h.lines
}

type horizontal[N any] struct {
	stringify func(N) string
	lines     []string
}

// walk emits the upper group, the node itself, then the lower group. A child
// indent continues the parent's rail unless the parent's own bracket ends on
// that side.
func (h *horizontal[N]) walk(w *weighted[N], indent string, pos position) {
	label := h.stringify(w.node)
	up, down := w.split()
	gap := strings.Repeat(" ", column.StringWidth(label))

	upIndent := indent + railOrBlank(pos != positionTop && pos != positionRoot) + gap
	for i, c := range up {
		p := positionMiddle
		if i == 0 {
			p = positionTop
		}
		h.walk(c, upIndent, p)
	}

	h.lines = append(h.lines, indent+leftGlyph(pos)+label+rightGlyph(len(up) > 0, len(down) > 0))

	downIndent := indent + railOrBlank(pos != positionBottom && pos != positionRoot) + gap
	for i, c := range down {
		p := positionMiddle
		if i == len(down)-1 {
			p = positionBottom
		}
		h.walk(c, downIndent, p)
	}
}

func railOrBlank(continued bool) string {
	if continued {
		return rail
	}
	return string(column.Null)
}

func leftGlyph(pos position) string {
	switch pos {
	case positionTop:
		return string(column.LCorner)
	case positionBottom:
		return string(column.RBranch)
	case positionRoot:
		return string(column.Null)
	default:
		return railTee
	}
}

func rightGlyph(up, down bool) string {
	switch {
	case up:
		return railMerge
	case down:
		return string(column.RCorner)
	default:
		return string(column.Null)
	}
}
