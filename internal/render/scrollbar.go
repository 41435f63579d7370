package render

// Scrollbar is a computed vertical scrollbar slider position and size, in
// track cells (spec.md §4.6 "Scrollbar").
type Scrollbar struct {
	SliderY    int
	SliderSize int
}

// minSliderSize is the minimum slider height spec.md names, "unless a
// single glyph is configured" — the single-glyph variant is a rendering
// choice the caller makes by clamping trackHeight to 1 itself, not
// something this function special-cases.
const minSliderSize = 2

// ComputeScrollbar derives the slider's position and size from the
// current scroll offset. firstRow/maxFirstRow describe vertical scroll
// progress; trackHeight is the number of track cells available;
// totalDataRows and viewportHeight describe how much of the table is
// visible at once.
func ComputeScrollbar(firstRow, maxFirstRow, trackHeight, viewportHeight, totalDataRows int) Scrollbar {
	if trackHeight <= 0 || totalDataRows <= 0 || viewportHeight <= 0 {
		return Scrollbar{SliderY: 0, SliderSize: trackHeight}
	}
	size := trackHeight * viewportHeight / totalDataRows
	if size < minSliderSize {
		size = minSliderSize
	}
	if size > trackHeight {
		size = trackHeight
	}

	maxSliderY := trackHeight - size
	var y int
	if maxFirstRow <= 0 {
		y = 0
	} else {
		y = firstRow * maxSliderY / maxFirstRow
	}
	if y < 0 {
		y = 0
	}
	if y > maxSliderY {
		y = maxSliderY
	}
	return Scrollbar{SliderY: y, SliderSize: size}
}

// FirstRowForSliderY is ComputeScrollbar's inverse: dragging the slider to
// track position y maps back to a first_row (spec.md: "Dragging the
// slider maps its y-position back to first_row via the inverse mapping").
func FirstRowForSliderY(y, trackHeight, viewportHeight, totalDataRows, maxFirstRow int) int {
	if maxFirstRow <= 0 {
		return 0
	}
	size := trackHeight * viewportHeight / totalDataRows
	if size < minSliderSize {
		size = minSliderSize
	}
	if size > trackHeight {
		size = trackHeight
	}
	maxSliderY := trackHeight - size
	if maxSliderY <= 0 {
		return 0
	}
	row := y * maxFirstRow / maxSliderY
	if row < 0 {
		row = 0
	}
	if row > maxFirstRow {
		row = maxFirstRow
	}
	return row
}
