package column

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Glyph is a single box-drawing token used to join columns.
type Glyph string

// Connector glyphs. The set is closed: every junction in a diagram is drawn
// with one of these.
const (
	Null    Glyph = " " // blank filler
	Edge    Glyph = "─" // horizontal rail
	LCorner Glyph = "┌" // outermost child of a left group
	RCorner Glyph = "┐" // outermost child of a right group
	LBranch Glyph = "┘" // parent joins a left group only
	RBranch Glyph = "└" // parent joins a right group only
	DownTee Glyph = "┬" // inner sibling hanging from the rail
	UpTee   Glyph = "┴" // parent joins both groups
)

// Column is a rectangular block of text lines.
type Column []string

// widthCondition pins runewidth to narrow ambiguous runes so box glyphs are
// always one cell wide, whatever the locale.
var widthCondition = &runewidth.Condition{EastAsianWidth: false}

// StringWidth returns the display width of s in terminal cells.
func StringWidth(s string) int {
	return widthCondition.StringWidth(s)
}

// Width returns the widest line of c, or 0 for an empty column.
func (c Column) Width() int {
	w := 0
	for _, line := range c {
		w = max(w, StringWidth(line))
	}
	return w
}

// String joins the lines of c with newlines.
func (c Column) String() string {
	return strings.Join(c, "\n")
}

// span returns the display offsets of the first and last non-blank runes of
// the first line. ok is false when the column is empty or its first line is
// blank.
func (c Column) span() (first, last int, ok bool) {
	if len(c) == 0 {
		return 0, 0, false
	}
	first = -1
	pos := 0
	for _, r := range c[0] {
		if !unicode.IsSpace(r) {
			if first < 0 {
				first = pos
			}
			last = pos
		}
		pos += widthCondition.RuneWidth(r)
	}
	if first < 0 {
		return 0, 0, false
	}
	return first, last, true
}

// center pads s with blanks to width w. Odd leftover padding goes right.
func center(s string, w int) string {
	pad := w - StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
