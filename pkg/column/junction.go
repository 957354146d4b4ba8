package column

import "strings"

// Link adds a connector row above c with g placed under the midpoint of the
// visible part of c's first line. A blank or missing first line centers g over
// the full width.
func Link(g Glyph, c Column) Column {
	span := max(c.Width()-1, 0)
	left := span / 2
	if first, last, ok := c.span(); ok {
		left = (first + last) / 2
	}
	return LinkPadded(g, c, left, span-left)
}

// LinkPadded adds a connector row above c made of left fill cells, g, and right
// fill cells. The fill is blank on the open side of a corner and a rail
// everywhere else. Negative padding counts as zero.
func LinkPadded(g Glyph, c Column, left, right int) Column {
	lfill, rfill := Edge, Edge
	switch g {
	case LCorner:
		lfill = Null
	case RCorner:
		rfill = Null
	}

	head := strings.Repeat(string(lfill), max(left, 0)) + string(g) + strings.Repeat(string(rfill), max(right, 0))
	linked := make(Column, 0, len(c)+1)
	linked = append(linked, head)
	linked = append(linked, c...)
	return Combine([]Column{linked})
}

// Branches hangs every column from a shared rail with a [DownTee].
func Branches(columns []Column) Column {
	linked := make([]Column, len(columns))
	for i, c := range columns {
		linked[i] = Link(DownTee, c)
	}
	return Combine(linked, Edge)
}

// Left draws a left-hand sibling group: the first column is the outermost and
// gets an [LCorner], the rest become [Branches].
func Left(columns []Column) Column {
	if len(columns) == 0 {
		return Column{}
	}
	return Combine([]Column{Link(LCorner, columns[0]), Branches(columns[1:])}, Edge)
}

// Right draws a right-hand sibling group: the last column is the outermost and
// gets an [RCorner], the rest become [Branches].
func Right(columns []Column) Column {
	if len(columns) == 0 {
		return Column{}
	}
	n := len(columns) - 1
	return Combine([]Column{Branches(columns[:n]), Link(RCorner, columns[n])}, Edge)
}

// Connect joins a left and a right group under their parent. The merge glyph
// is an [UpTee] when both groups exist, [LBranch] for a left group alone and
// [RBranch] for a right group alone. Two empty groups give an empty column.
func Connect(left, right Column) Column {
	var joiner Glyph
	switch {
	case len(left) == 0 && len(right) == 0:
		return Column{}
	case len(left) == 0:
		joiner = RBranch
	case len(right) == 0:
		joiner = LBranch
	default:
		joiner = UpTee
	}
	return Combine([]Column{left, right}, joiner)
}
