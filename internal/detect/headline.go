package detect

import "strings"

// classifyHeadline builds the classifier string for a border-head line and
// reports the border type it implies (spec.md §4.2 rule 1). A line with no
// vertical/junction glyph at all is classified in "gap mode": runs of
// interior whitespace between dash groups become interior separators, the
// SQLcl-style heuristic spec.md §4.2 rule 4 and §9's documented footer
// carve-out both assume.
func classifyHeadline(line string) (string, BorderType) {
	if !hasJunction(line) {
		return gapModeTransl(line), BorderNone
	}
	transl := translate(line)
	bt := BorderOuter
	if len(transl) > 0 &&
		ClassifierChar(transl[0]) == ClassLeft &&
		ClassifierChar(transl[len(transl)-1]) == ClassRight {
		bt = BorderFull
	}
	return transl, bt
}

// gapModeTransl classifies a junction-free border line (pure dashes and
// spaces): dash runs are data, and any run of spaces strictly between two
// dash runs is an interior separator.
func gapModeTransl(line string) string {
	cells := explode(line)
	w := 0
	for _, c := range cells {
		if c.col+c.width > w {
			w = c.col + c.width
		}
	}
	out := make([]byte, w)
	for i := range out {
		out[i] = byte(ClassData)
	}
	n := len(cells)
	for i := 0; i < n; i++ {
		if cells[i].r != ' ' {
			continue
		}
		j := i
		for j < n && cells[j].r == ' ' {
			j++
		}
		interior := i > 0 && j < n
		if interior {
			for k := i; k < j; k++ {
				for b := 0; b < cells[k].width; b++ {
					if cells[k].col+b < w {
						out[cells[k].col+b] = byte(ClassInterior)
					}
				}
			}
		}
		i = j - 1
	}
	return string(out)
}

// translate converts a header-separator line into its classifier string,
// one ClassifierChar per display column (spec.md §4.2 rule 2). The
// returned string's length in characters equals the line's display width.
func translate(borderHeadLine string) string {
	cells := explode(borderHeadLine)
	w := 0
	for _, c := range cells {
		if c.col+c.width > w {
			w = c.col + c.width
		}
	}
	out := make([]byte, w)
	for i := range out {
		out[i] = byte(ClassData)
	}
	for _, c := range cells {
		cls := classify(c.r, c.col, w)
		for k := 0; k < c.width; k++ {
			if c.col+k < w {
				out[c.col+k] = byte(cls)
			}
		}
	}
	return string(out)
}

// columnRanges walks a headline_transl string and splits it into column
// extents at each non-data (L/R/I) position (spec.md §4.2 rule 2, "Column
// ranges").
func columnRanges(transl string) []CRange {
	var out []CRange
	start := -1
	flush := func(end int) {
		if start >= 0 && end >= start {
			out = append(out, CRange{XMin: start, XMax: end})
		}
		start = -1
	}
	for i := 0; i < len(transl); i++ {
		if ClassifierChar(transl[i]) == ClassData {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i - 1)
	}
	flush(len(transl) - 1)
	return out
}

// fillNames reads the names line and, for each CRange, extracts the
// trimmed column name plus its byte offset/size/display width within
// namesline (spec.md §4.2 rule 3).
func fillNames(cranges []CRange, namesLine string) []CRange {
	out := make([]CRange, len(cranges))
	for i, cr := range cranges {
		start, end := byteRangeForDisplayCols(namesLine, cr.XMin, cr.XMax)
		raw := ""
		if end >= start && start <= len(namesLine) && end <= len(namesLine) {
			raw = namesLine[start:end]
		}
		trimmed := strings.TrimSpace(raw)
		// Recompute the trimmed substring's own byte offset within namesLine,
		// not just within raw, so NameOffset is absolute.
		var nameOffset, nameSize int
		if trimmed != "" {
			lead := strings.Index(raw, trimmed)
			if lead < 0 {
				lead = 0
			}
			nameOffset = start + lead
			nameSize = len(trimmed)
		}
		out[i] = CRange{
			XMin:       cr.XMin,
			XMax:       cr.XMax,
			NameOffset: nameOffset,
			NameSize:   nameSize,
			NameWidth:  displayWidth(trimmed),
		}
	}
	return out
}
