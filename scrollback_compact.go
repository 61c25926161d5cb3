package headlessterm

import "image/color"

// colorKey is a comparable, resolved stand-in for a color.Color value so
// compact runs can be grouped by value equality. Resolution to concrete RGB
// happens at scroll-off time, which is acceptable here: scrollback is
// already a record of what was rendered, not of the original color-space
// tag (IndexedColor vs NamedColor vs TrueColor all become their resolved
// RGBA for the purpose of replaying history).
type colorKey color.RGBA

func colorKeyOf(c color.Color, fg bool) colorKey {
	return colorKey(ResolveDefaultColor(c, fg))
}

func (k colorKey) color() color.Color {
	return color.RGBA(k)
}

// compactRun is a maximal span of consecutive cells sharing foreground,
// background, and rendition flags.
type compactRun struct {
	fg, bg colorKey
	flags  CellFlags
	runes  []rune
}

// CompactScrollback is the History::Compact strategy: bounded by line
// count, cells are run-length-compressed by format (consecutive cells
// sharing foreground/background/rendition collapse into one run plus a
// codepoint sequence), evicted FIFO once over capacity.
type CompactScrollback struct {
	lines    []compactLine
	capacity int
}

type compactLine struct {
	runs    []compactRun
	wrapped bool
}

// NewCompactScrollback creates a compact scrollback bounded to capacity lines.
func NewCompactScrollback(capacity int) *CompactScrollback {
	if capacity < 0 {
		capacity = 0
	}
	return &CompactScrollback{capacity: capacity}
}

func compactEncode(line []Cell) []compactRun {
	var runs []compactRun
	for _, c := range line {
		fg := colorKeyOf(c.Fg, true)
		bg := colorKeyOf(c.Bg, false)
		if len(runs) > 0 {
			last := &runs[len(runs)-1]
			if last.fg == fg && last.bg == bg && last.flags == c.Flags {
				last.runes = append(last.runes, c.Char)
				continue
			}
		}
		runs = append(runs, compactRun{fg: fg, bg: bg, flags: c.Flags, runes: []rune{c.Char}})
	}
	return runs
}

func compactDecode(runs []compactRun) []Cell {
	var cells []Cell
	for _, run := range runs {
		for _, r := range run.runes {
			cells = append(cells, Cell{
				Char:  r,
				Fg:    run.fg.color(),
				Bg:    run.bg.color(),
				Flags: run.flags,
			})
		}
	}
	return cells
}

// Push appends a run-length-encoded line, evicting the oldest if at capacity.
func (c *CompactScrollback) Push(line []Cell, wrapped bool) {
	if c.capacity == 0 {
		return
	}
	c.lines = append(c.lines, compactLine{runs: compactEncode(line), wrapped: wrapped})
	if len(c.lines) > c.capacity {
		c.lines = c.lines[len(c.lines)-c.capacity:]
	}
}

// Len returns the number of stored lines.
func (c *CompactScrollback) Len() int { return len(c.lines) }

// Line decodes and returns the line at index, 0 being the oldest.
func (c *CompactScrollback) Line(index int) []Cell {
	if index < 0 || index >= len(c.lines) {
		return nil
	}
	return compactDecode(c.lines[index].runs)
}

// LineLen returns the number of cells the line at index expands to.
func (c *CompactScrollback) LineLen(index int) int {
	if index < 0 || index >= len(c.lines) {
		return 0
	}
	n := 0
	for _, run := range c.lines[index].runs {
		n += len(run.runes)
	}
	return n
}

// IsWrapped reports the wrap flag of the line at index.
func (c *CompactScrollback) IsWrapped(index int) bool {
	if index < 0 || index >= len(c.lines) {
		return false
	}
	return c.lines[index].wrapped
}

// Cells copies up to count decoded cells from the line at index starting at col.
func (c *CompactScrollback) Cells(index, col, count int, dst []Cell) int {
	line := c.Line(index)
	if line == nil || col < 0 || col >= len(line) {
		return 0
	}
	end := col + count
	if end > len(line) {
		end = len(line)
	}
	return copy(dst, line[col:end])
}

// Clear removes all stored lines.
func (c *CompactScrollback) Clear() {
	c.lines = nil
}

// SetMaxLines resizes capacity, dropping the oldest lines if shrinking.
func (c *CompactScrollback) SetMaxLines(max int) {
	if max < 0 {
		max = 0
	}
	c.capacity = max
	if len(c.lines) > c.capacity {
		c.lines = c.lines[len(c.lines)-c.capacity:]
	}
}

// MaxLines returns the current capacity.
func (c *CompactScrollback) MaxLines() int { return c.capacity }

var _ ScrollbackProvider = (*CompactScrollback)(nil)
