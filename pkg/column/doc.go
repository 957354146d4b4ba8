// Package column composes rectangular blocks of text into box-drawing diagrams.
//
// A [Column] is an ordered list of text lines. Columns are never mutated once
// built: every operation in this package returns a fresh column.
//
// # Combining
//
// [Combine] places columns side by side. Each input line is centered inside
// its own column's width, then the segments of one row are joined with the
// joiner glyph for that row (falling back to [Null]):
//
//	Combine([]Column{{"a"}, {"bbb", "c"}}, Edge)
//	// "a─bbb"
//	// "   c "
//
// # Junctions
//
// [Link] puts a connector glyph above a column, aligned with the visible part
// of its first line. [Left], [Right] and [Branches] attach sibling columns to a
// shared horizontal rail, and [Connect] merges a left and a right group under
// their parent:
//
//	Connect(Left([]Column{{"a"}, {"b"}}), Right([]Column{{"c"}, {"d"}}))
//	// "┌─┬┴┬─┐"
//	// "a b c d"
//
// Widths are display widths (see [StringWidth]), so labels containing East
// Asian wide runes stay aligned.
package column
