package detect

import "strings"

// verticalRunes are glyphs that act as a vertical separator/junction
// between columns — they classify as L/R/I depending on position.
// horizontalRunes are glyphs that fill a border line's data columns —
// they classify as 'd' like any other data character.
var verticalRunes = map[rune]bool{
	'+': true, '|': true,
	'│': true, '║': true, // U+2502, U+2551
	'┌': true, '┐': true, '└': true, '┘': true, // corners
	'├': true, '┤': true, '┬': true, '┴': true, '┼': true, // junctions
	'╔': true, '╗': true, '╚': true, '╝': true,
	'╠': true, '╣': true, '╦': true, '╩': true, '╬': true,
}

var horizontalRunes = map[rune]bool{
	'-': true, '─': true, '═': true, // ASCII dash, U+2500, U+2550
}

// isBorderChar reports whether r may appear in a border line: space, a
// horizontal rule rune, or a vertical/junction rune.
func isBorderChar(r rune) bool {
	return r == ' ' || horizontalRunes[r] || verticalRunes[r]
}

// isBorderLine reports whether line consists only of border characters and
// contains at least one non-space border character (spec.md §4.2 rule 1).
func isBorderLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	for _, r := range line {
		if !isBorderChar(r) {
			return false
		}
	}
	return true
}

// hasJunction reports whether line contains a vertical/junction rune,
// signaling a bordered head line rather than a plain (gap-mode) rule.
func hasJunction(line string) bool {
	for _, r := range line {
		if verticalRunes[r] {
			return true
		}
	}
	return false
}

// lineStyleOf inspects line's runes to decide ASCII vs. Unicode styling.
func lineStyleOf(line string) LineStyle {
	for _, r := range line {
		switch r {
		case '│', '║', '─', '═', '┌', '┐', '└', '┘', '├', '┤', '┬', '┴', '┼',
			'╔', '╗', '╚', '╝', '╠', '╣', '╦', '╩', '╬':
			return StyleUnicode
		}
	}
	return StyleASCII
}

// classify returns the ClassifierChar for rune r occurring at display
// column x of a headline_transl string of total width w (spec.md §4.2
// rule 2): a vertical/junction rune at the very first or last column is
// the outer border (L/R); elsewhere it is an interior separator (I);
// anything else — including a horizontal-rule rune at the edge — is plain
// data ('d').
func classify(r rune, x, w int) ClassifierChar {
	if verticalRunes[r] {
		switch {
		case x == 0:
			return ClassLeft
		case x == w-1:
			return ClassRight
		default:
			return ClassInterior
		}
	}
	return ClassData
}
