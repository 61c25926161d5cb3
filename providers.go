package headlessterm

import "io"

// ResponseProvider writes terminal responses (e.g., cursor position reports) back to the PTY.
// Typically an io.Writer connected to the PTY input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data (useful when responses are not needed).
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// --- Bell Provider ---

// BellProvider handles bell/beep events triggered by BEL (0x07) characters.
type BellProvider interface {
	// Ring is called when a bell character is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window title changes (OSC 0, 1, 2).
type TitleProvider interface {
	// SetTitle is called when the title changes.
	SetTitle(title string)
	// PushTitle saves the current title to the stack.
	PushTitle()
	// PopTitle restores the title from the stack.
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// --- APC Provider ---

// APCProvider handles Application Program Command sequences (OSC _).
type APCProvider interface {
	// Receive is called with the payload of an APC sequence.
	Receive(data []byte)
}

// NoopAPC ignores all APC sequences.
type NoopAPC struct{}

func (NoopAPC) Receive(data []byte) {}

// --- PM Provider ---

// PMProvider handles Privacy Message sequences (OSC ^).
type PMProvider interface {
	// Receive is called with the payload of a PM sequence.
	Receive(data []byte)
}

// NoopPM ignores all PM sequences.
type NoopPM struct{}

func (NoopPM) Receive(data []byte) {}

// --- SOS Provider ---

// SOSProvider handles Start of String sequences (OSC X).
type SOSProvider interface {
	// Receive is called with the payload of a SOS sequence.
	Receive(data []byte)
}

// NoopSOS ignores all SOS sequences.
type NoopSOS struct{}

func (NoopSOS) Receive(data []byte) {}

// Ensure implementations satisfy their interfaces
var _ ResponseProvider = NoopResponse{}

// ClipboardProvider handles clipboard read/write operations (OSC 52).
type ClipboardProvider interface {
	// Read returns content from the specified clipboard ('c' for clipboard, 'p' for primary selection).
	Read(clipboard byte) string
	// Write stores content to the specified clipboard.
	Write(clipboard byte, data []byte)
}

// ScrollbackProvider stores lines scrolled off the top of the primary buffer.
// Implementations can use in-memory storage, disk, database, etc.
//
// Every line carries a wrap flag recording whether it continues into the
// next physical line without an intervening explicit newline, so selection
// and copy-paste can reassemble logical lines that were split only because
// they overflowed the screen width.
type ScrollbackProvider interface {
	// Push appends a line to scrollback with its wrap flag. Oldest lines
	// should be removed if MaxLines is exceeded.
	Push(line []Cell, wrapped bool)
	// Len returns the current number of stored lines.
	Len() int
	// Line returns the line at index, where 0 is the oldest line. Returns nil if out of range.
	Line(index int) []Cell
	// LineLen returns the number of cells stored for the line at index.
	LineLen(index int) int
	// IsWrapped reports whether the line at index continues onto the next line.
	IsWrapped(index int) bool
	// Cells copies up to count cells starting at col from the line at
	// index into the result; returns the number of cells copied.
	Cells(index, col, count int, dst []Cell) int
	// Clear removes all stored lines.
	Clear()
	// SetMaxLines sets the maximum capacity. Implementations should trim oldest lines if needed.
	SetMaxLines(max int)
	// MaxLines returns the current maximum capacity.
	MaxLines() int
}

// --- Clipboard Implementations ---

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(clipboard byte) string  { return "" }
func (NoopClipboard) Write(clipboard byte, data []byte) {}

// --- Scrollback Implementations ---

// NoopScrollback discards all scrollback lines (useful for alternate buffer which has no scrollback).
// This is the History::None strategy from the spec.
type NoopScrollback struct{}

func (NoopScrollback) Push(line []Cell, wrapped bool)            {}
func (NoopScrollback) Len() int                                  { return 0 }
func (NoopScrollback) Line(index int) []Cell                     { return nil }
func (NoopScrollback) LineLen(index int) int                     { return 0 }
func (NoopScrollback) IsWrapped(index int) bool                  { return false }
func (NoopScrollback) Cells(index, col, count int, dst []Cell) int { return 0 }
func (NoopScrollback) Clear()                                    {}
func (NoopScrollback) SetMaxLines(max int)                       {}
func (NoopScrollback) MaxLines() int                             { return 0 }

// --- Recording Provider ---

// RecordingProvider captures raw input bytes before ANSI parsing for replay or debugging.
type RecordingProvider interface {
	// Record appends raw bytes to the recording.
	Record(data []byte)
	// Data returns all captured bytes since the last Clear call.
	Data() []byte
	// Clear discards all recorded data.
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// --- Keypress Output Provider ---

// KeypressOutputProvider is notified whenever a non-paste key event
// produces output, so a ScreenWindow viewing this terminal can auto-scroll
// back to the end of output.
type KeypressOutputProvider interface {
	NotifyKeypressOutput()
}

// NoopKeypressOutput ignores keypress-output notifications.
type NoopKeypressOutput struct{}

func (NoopKeypressOutput) NotifyKeypressOutput() {}

// --- Diagnostic Provider ---

// DiagnosticProvider receives non-fatal conditions surfaced during input
// processing that never propagate as errors: a malformed escape sequence,
// a key event with no matching translator entry, a scrollback backend I/O
// failure. kind identifies the category; detail is a short human-readable
// description.
type DiagnosticProvider interface {
	Report(kind, detail string)
}

// NoopDiagnostic discards all diagnostics.
type NoopDiagnostic struct{}

func (NoopDiagnostic) Report(kind, detail string) {}

// --- Flow Control Provider ---

// FlowControlProvider is notified when the embedder should pause or resume
// sending PTY output, triggered by Ctrl-S/Ctrl-Q (XON/XOFF) and Ctrl-C key events.
type FlowControlProvider interface {
	// FlowControl is called with resume=false on Ctrl-S (halt) and
	// resume=true on Ctrl-Q or Ctrl-C (resume).
	FlowControl(resume bool)
}

// NoopFlowControl ignores flow control requests.
type NoopFlowControl struct{}

func (NoopFlowControl) FlowControl(resume bool) {}

// --- Paste Confirmation Provider ---

// PasteConfirmationProvider is asked whether a multi-line paste should be
// delivered to the PTY as-is, giving embedders a hook to warn the user
// before a paste with embedded newlines runs as multiple commands.
type PasteConfirmationProvider interface {
	// ConfirmPaste returns true if text should be sent.
	ConfirmPaste(text string) bool
}

// NoopPasteConfirmation always confirms, delivering every paste unchanged.
type NoopPasteConfirmation struct{}

func (NoopPasteConfirmation) ConfirmPaste(text string) bool { return true }

// --- Notification Provider ---

// NotificationPayload holds a parsed desktop notification request (OSC 9/99).
// Fields beyond ID/PayloadType/Data follow the kitty desktop notifications
// protocol's metadata keys (d, e, a, c, w, n, t, i, g, s, u, o).
type NotificationPayload struct {
	ID          string
	Done        bool
	PayloadType string
	Encoding    string
	Actions     []string
	TrackClose  bool
	Timeout     int
	AppName     string
	Type        string
	IconName    string
	IconCacheID string
	Sound       string
	Urgency     int
	Occasion    string
	Data        []byte
}

// NotificationProvider handles desktop notification requests. Notify's
// return value is written back to the PTY verbatim when non-empty, for
// query responses (PayloadType "?") that must report capabilities.
type NotificationProvider interface {
	Notify(payload *NotificationPayload) string
}

// NoopNotification discards all notifications and never replies.
type NoopNotification struct{}

func (NoopNotification) Notify(payload *NotificationPayload) string { return "" }

// Ensure implementations satisfy their interfaces
var _ BellProvider = (*NoopBell)(nil)
var _ TitleProvider = (*NoopTitle)(nil)
var _ APCProvider = (*NoopAPC)(nil)
var _ PMProvider = (*NoopPM)(nil)
var _ SOSProvider = (*NoopSOS)(nil)
var _ ClipboardProvider = (*NoopClipboard)(nil)
var _ ScrollbackProvider = (*NoopScrollback)(nil)
var _ RecordingProvider = (*NoopRecording)(nil)
var _ KeypressOutputProvider = (*NoopKeypressOutput)(nil)
var _ DiagnosticProvider = (*NoopDiagnostic)(nil)
var _ FlowControlProvider = (*NoopFlowControl)(nil)
var _ PasteConfirmationProvider = (*NoopPasteConfirmation)(nil)
var _ NotificationProvider = (*NoopNotification)(nil)
