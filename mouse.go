package headlessterm

import "fmt"

// MouseEventType distinguishes press, release, and motion mouse events.
type MouseEventType int

const (
	MouseEventPress MouseEventType = iota
	MouseEventRelease
	MouseEventMotion
)

// MouseButton identifies which button a mouse event concerns. Motion
// events with no button held use MouseButtonNone.
type MouseButton int

const (
	MouseButtonNone MouseButton = -1
	MouseButtonLeft MouseButton = iota - 1
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonWheelUp
	MouseButtonWheelDown
)

// SendMouseEvent encodes a mouse event per the terminal's currently
// enabled mouse modes and writes it via the response provider. col and row
// are 1-based, matching the wire protocols below; non-positive values are
// dropped.
//
// Encoding preference order, matching xterm's own precedence: SGR (1006)
// first, then UTF-8 (1005), falling back to legacy X10 encoding. Motion
// events are only reported when ModeReportAllMouseMotion is set, or when
// ModeReportCellMouseMotion is set and a button is held.
func (t *Terminal) SendMouseEvent(button MouseButton, col, row int, kind MouseEventType) {
	if col <= 0 || row <= 0 {
		return
	}

	t.mu.RLock()
	modes := t.modes
	t.mu.RUnlock()

	anyMouseMode := modes&(ModeReportMouseClicks|ModeReportCellMouseMotion|ModeReportAllMouseMotion) != 0
	if !anyMouseMode {
		return
	}

	if kind == MouseEventMotion {
		reportAll := modes&ModeReportAllMouseMotion != 0
		reportDrag := modes&ModeReportCellMouseMotion != 0 && button != MouseButtonNone
		if !reportAll && !reportDrag {
			return
		}
	}

	sgr := modes&ModeSGRMouse != 0
	cb := mouseButtonCode(button, kind, sgr)

	var text string
	switch {
	case sgr:
		final := byte('M')
		if kind == MouseEventRelease {
			final = 'm'
		}
		text = fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, col, row, final)
	case modes&ModeUTF8Mouse != 0:
		cx, cy := col, row
		if cx > 2015 {
			cx = 2015
		}
		if cy > 2015 {
			cy = 2015
		}
		text = string([]rune{0x1b, '[', 'M', rune(32 + cb), rune(32 + cx), rune(32 + cy)})
	default:
		// Legacy X10: single-byte coordinates, only valid up to 223.
		cx, cy := col, row
		if cx > 223 {
			cx = 223
		}
		if cy > 223 {
			cy = 223
		}
		text = string([]byte{0x1b, '[', 'M', byte(32 + cb), byte(32 + cx), byte(32 + cy)})
	}

	t.writeResponseString(text)
}

// mouseButtonCode computes the button portion of the wire encoding. In
// legacy/UTF-8 encoding a release carries no button identity and always
// reports code 3; SGR mode instead keeps the real button number and
// distinguishes release via the trailing 'm' terminator, per spec.
func mouseButtonCode(button MouseButton, kind MouseEventType, sgr bool) int {
	var code int
	switch button {
	case MouseButtonLeft:
		code = 0
	case MouseButtonMiddle:
		code = 1
	case MouseButtonRight:
		code = 2
	case MouseButtonWheelUp:
		code = 64
	case MouseButtonWheelDown:
		code = 65
	default:
		code = 3
	}

	if kind == MouseEventRelease && code < 64 && !sgr {
		code = 3
	}
	if kind == MouseEventMotion {
		code |= 32
	}

	return code
}
