package headlessterm

// ScreenWindow is a fixed-size moving viewport over a Terminal's active
// screen plus its attached history. It is the layer a renderer talks to:
// it assembles frames, tracks auto-follow behavior, and reports scroll
// deltas so the renderer can blit rather than fully repaint.
type ScreenWindow struct {
	terminal *Terminal

	currentLine int  // top visible absolute line (0 == oldest history line)
	windowLines int  // viewport height in rows
	trackOutput bool // if true, the viewport follows new output
}

// NewScreenWindow creates a viewport of windowLines rows over terminal,
// initially following output.
func NewScreenWindow(terminal *Terminal, windowLines int) *ScreenWindow {
	if windowLines <= 0 {
		windowLines = terminal.Rows()
	}
	w := &ScreenWindow{
		terminal:    terminal,
		windowLines: windowLines,
		trackOutput: true,
	}
	w.currentLine = w.maxScroll()
	return w
}

// absoluteLineCount is history_lines + screen_lines, the total number of
// addressable absolute lines.
func (w *ScreenWindow) absoluteLineCount() int {
	return w.terminal.ScrollbackLen() + w.terminal.Rows()
}

// maxScroll is the largest valid value for currentLine.
func (w *ScreenWindow) maxScroll() int {
	m := w.absoluteLineCount() - w.windowLines
	if m < 0 {
		m = 0
	}
	return m
}

// WindowLines returns the viewport height in rows.
func (w *ScreenWindow) WindowLines() int { return w.windowLines }

// SetWindowLines changes the viewport height, clamping currentLine if it
// falls outside the valid range after the resize.
func (w *ScreenWindow) SetWindowLines(n int) {
	if n <= 0 {
		return
	}
	w.windowLines = n
	w.clampCurrentLine()
}

func (w *ScreenWindow) clampCurrentLine() {
	max := w.maxScroll()
	if w.currentLine > max {
		w.currentLine = max
	}
	if w.currentLine < 0 {
		w.currentLine = 0
	}
}

// ScrollTo moves the viewport so its top row is line, clamped to
// [0, max_scroll]. Disables track_output unless the new position is exactly
// at the end of output.
func (w *ScreenWindow) ScrollTo(line int) {
	max := w.maxScroll()
	if line < 0 {
		line = 0
	}
	if line > max {
		line = max
	}
	w.currentLine = line
	w.trackOutput = line == max
}

// ScrollBy moves the viewport by a relative number of lines (positive
// scrolls toward newer output).
func (w *ScreenWindow) ScrollBy(delta int) {
	w.ScrollTo(w.currentLine + delta)
}

// AtEndOfOutput reports whether the viewport's top row is the last
// possible scroll position, i.e. the live screen is fully visible.
func (w *ScreenWindow) AtEndOfOutput() bool {
	return w.currentLine == w.maxScroll()
}

// SetTrackOutput enables or disables auto-follow. When enabling, the
// viewport immediately snaps to the end of output.
func (w *ScreenWindow) SetTrackOutput(track bool) {
	w.trackOutput = track
	if track {
		w.currentLine = w.maxScroll()
	}
}

// TrackOutput reports whether the viewport currently auto-follows output.
func (w *ScreenWindow) TrackOutput() bool { return w.trackOutput }

// NotifyOutput must be called after new data has been written to the
// terminal and before the next GetImage, so a tracking window advances by
// the same amount the live screen scrolled.
func (w *ScreenWindow) NotifyOutput() {
	if w.trackOutput {
		w.currentLine = w.maxScroll()
	} else {
		w.clampCurrentLine()
	}
}

// GetImage returns exactly WindowLines()*Terminal.Cols() cells, assembled
// from history for rows above the live screen and from the live screen
// otherwise. Rows past the end of available content are blank.
func (w *ScreenWindow) GetImage() []Cell {
	cols := w.terminal.Cols()
	historyLines := w.terminal.ScrollbackLen()
	out := make([]Cell, w.windowLines*cols)

	for r := 0; r < w.windowLines; r++ {
		absolute := w.currentLine + r
		var src []Cell

		switch {
		case absolute < historyLines:
			src = w.terminal.ScrollbackLine(absolute)
		case absolute < historyLines+w.terminal.Rows():
			screenRow := absolute - historyLines
			src = make([]Cell, cols)
			for c := 0; c < cols; c++ {
				if cell := w.terminal.Cell(screenRow, c); cell != nil {
					src[c] = *cell
				} else {
					src[c] = NewCell()
				}
			}
		default:
			src = nil
		}

		for c := 0; c < cols; c++ {
			if c < len(src) {
				out[r*cols+c] = src[c]
			} else {
				out[r*cols+c] = NewCell()
			}
		}
	}

	if w.terminal.CursorVisible() {
		cursorRow, cursorCol := w.terminal.CursorPos()
		viewportRow := historyLines + cursorRow - w.currentLine
		if viewportRow >= 0 && viewportRow < w.windowLines && cursorCol >= 0 && cursorCol < cols {
			out[viewportRow*cols+cursorCol].SetFlag(CellFlagCursorOverlay)
		}
	}

	return out
}

// IsLineWrapped reports whether the viewport row r continues onto the next
// physical line without an intervening newline.
func (w *ScreenWindow) IsLineWrapped(r int) bool {
	historyLines := w.terminal.ScrollbackLen()
	absolute := w.currentLine + r
	if absolute < historyLines {
		return w.terminal.activeBufferWrapped(absolute)
	}
	return w.terminal.IsWrapped(absolute - historyLines)
}

// ConsumeScrollDelta forwards the terminal's accumulated scroll count and
// region, resetting it, so the renderer can memmove-blit existing content
// rather than repaint every cell.
func (w *ScreenWindow) ConsumeScrollDelta() (count int, region [2]int) {
	return w.terminal.consumeScrollDelta()
}

// SetSelectionViewport sets the terminal's selection from viewport-relative
// coordinates (row 0 is the window's top visible line), translating them
// into the absolute line space Terminal.SetSelection addresses.
func (w *ScreenWindow) SetSelectionViewport(startRow, startCol, endRow, endCol int) {
	w.terminal.SetSelection(
		Position{Row: w.currentLine + startRow, Col: startCol},
		Position{Row: w.currentLine + endRow, Col: endCol},
	)
}

// IsSelected reports whether viewport row r, column c falls within the
// terminal's active selection.
func (w *ScreenWindow) IsSelected(r, c int) bool {
	return w.terminal.IsSelected(w.currentLine+r, c)
}

// GetSelectedText forwards to Terminal.GetSelectedText; the selection itself
// is already in absolute coordinates regardless of the viewport's scroll
// position.
func (w *ScreenWindow) GetSelectedText(preserveLineBreaks bool) string {
	return w.terminal.GetSelectedText(preserveLineBreaks)
}

// ViewportRowToAbsolute converts a viewport-relative row (0 is the window's
// top visible line) to the absolute line space used by Terminal's selection
// and prompt marks.
func (w *ScreenWindow) ViewportRowToAbsolute(viewportRow int) int {
	return w.currentLine + viewportRow
}

// AbsoluteRowToViewport converts an absolute line back to a viewport row,
// or -1 if it currently falls outside the visible window (scrolled into
// history above it, or not yet scrolled into view below it).
func (w *ScreenWindow) AbsoluteRowToViewport(absRow int) int {
	r := absRow - w.currentLine
	if r < 0 || r >= w.windowLines {
		return -1
	}
	return r
}
