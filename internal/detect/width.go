package detect

import "github.com/mattn/go-runewidth"

// displayWidth returns the terminal display width of s, honoring
// East-Asian wide and zero-width runes. Grounded in sadopc-gotermsql's use
// of mattn/go-runewidth for exactly this purpose.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// runeCell is one rune of a line paired with the display column it starts
// at and its display width (0, 1 or 2).
type runeCell struct {
	r     rune
	col   int
	width int
	start int // byte offset
	size  int // byte size
}

// explode decomposes a line into its rune cells, assigning each rune a
// display column. Used by the headline translator (one classifier symbol
// per display column) and by byte<->column conversions elsewhere.
func explode(s string) []runeCell {
	cells := make([]runeCell, 0, len(s))
	col := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		size := len(string(r))
		cells = append(cells, runeCell{r: r, col: col, width: w, start: i, size: size})
		col += w
	}
	return cells
}

// ByteRangeForDisplayCols is byteRangeForDisplayCols exported for use by
// other packages (render, export) that need to slice a line by the same
// display-column arithmetic structure detection uses internally.
func ByteRangeForDisplayCols(s string, xmin, xmax int) (start, end int) {
	return byteRangeForDisplayCols(s, xmin, xmax)
}

// byteRangeForDisplayCols returns the [start,end) byte offsets in s that
// cover display columns [xmin, xmax] inclusive.
func byteRangeForDisplayCols(s string, xmin, xmax int) (start, end int) {
	cells := explode(s)
	start = len(s)
	end = len(s)
	found := false
	for _, c := range cells {
		if c.col >= xmin && c.col <= xmax {
			if !found {
				start = c.start
				found = true
			}
			end = c.start + c.size
		}
	}
	if !found {
		return 0, 0
	}
	return start, end
}
