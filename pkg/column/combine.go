package column

import "strings"

// Combine lays columns out side by side.
//
// The result has as many rows as the tallest input; missing rows count as
// empty lines. Every segment is centered within its own column's width, and
// the segments of row i are joined by joiners[i], or [Null] once joiners is
// exhausted. Combining no columns yields an empty column.
func Combine(columns []Column, joiners ...Glyph) Column {
	widths := make([]int, len(columns))
	rows := 0
	for i, c := range columns {
		widths[i] = c.Width()
		rows = max(rows, len(c))
	}

	out := make(Column, rows)
	var b strings.Builder
	for i := range rows {
		joiner := Null
		if i < len(joiners) {
			joiner = joiners[i]
		}

		b.Reset()
		for j, c := range columns {
			if j > 0 {
				b.WriteString(string(joiner))
			}
			var line string
			if i < len(c) {
				line = c[i]
			}
			b.WriteString(center(line, widths[j]))
		}
		out[i] = b.String()
	}
	return out
}
