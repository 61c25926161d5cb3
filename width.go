package headlessterm

import "github.com/unilibs/uniwidth"

// runeWidth returns the display width: 2 for wide characters (CJK, emoji), 1 for normal, 0 for zero-width (combining marks, control chars).
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune returns true if the rune occupies 2 columns (CJK ideographs, fullwidth forms, emoji).
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// StringWidth returns the total display width of a string (sum of rune widths).
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}

// cellWidth returns the display width a cell occupies: 0 for the spacer
// half of a wide character, 2 for the leading half, 1 otherwise. Extended
// grapheme-cluster cells (CellFlagExtendedChar) report the width of their
// base rune: the codepoints beyond it are zero-width combining marks by
// construction, so they never change the cell's own column footprint.
func cellWidth(cell *Cell) int {
	switch {
	case cell.IsWideSpacer():
		return 0
	case cell.IsWide():
		return 2
	default:
		return 1
	}
}
