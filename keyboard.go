package headlessterm

import (
	"strconv"
	"strings"
)

// ModifierMask is a bitmask of held keyboard modifiers at the moment a key
// was pressed.
type ModifierMask uint8

const (
	ModShift ModifierMask = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// TranslatorState is a bitmask of emulator-state flags a KeyboardTranslator
// entry can be conditioned on. The seven states and their bit positions
// mirror the translator state model of the system this emulator core was
// modeled after, combined freely by bitwise OR.
type TranslatorState uint8

const (
	StateNone TranslatorState = 0
	StateNewLine TranslatorState = 1 << (iota - 1)
	StateAnsi
	StateCursorKeys
	StateAlternateScreen
	StateAnyModifier
	StateApplicationKeypad
)

// KeyCode identifies a physical/logical key independent of modifiers.
// Printable characters are carried on KeyEvent.Text rather than as a
// KeyCode; KeyCode covers the keys that need special encoding.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyTab
	KeyBacktab
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyKeypad0
	KeyKeypadDecimal
	KeyKeypadEnter
)

// KeyEvent describes a single key press delivered by the embedder.
type KeyEvent struct {
	Code      KeyCode
	Modifiers ModifierMask
	// Text is the printable text the key would normally insert (used when
	// Code == KeyUnknown and no translator entry matches).
	Text string
}

// Entry is one row of a KeyboardTranslator's lookup table: a key sequence
// definition matching a keycode when the held modifiers and active
// emulator state agree with Modifiers/State under their respective masks.
type Entry struct {
	Modifiers     ModifierMask
	ModifiersMask ModifierMask
	State         TranslatorState
	StateMask     TranslatorState
	// Command holds the name of a host command (e.g. "NewTab") when the
	// table defines one. SendKeyEvent does not act on Command: it sends
	// the entry's Text as for any other entry.
	Command string
	// Text is the byte sequence to send, already escape-unescaped and
	// with any wildcard byte ('*') left in place for FindEntry's caller to
	// expand via ExpandWildcard.
	Text string
}

func (e Entry) matches(modifiers ModifierMask, state TranslatorState) bool {
	if modifiers&e.ModifiersMask != e.Modifiers&e.ModifiersMask {
		return false
	}
	if state&e.StateMask != e.State&e.StateMask {
		return false
	}
	return true
}

// KeyboardTranslator maps (keycode, modifiers, emulator-state) to an Entry.
// Lookup is linear over all entries registered for a keycode; the first
// whose masked modifiers and state agree with the query is returned.
type KeyboardTranslator struct {
	name    string
	entries map[KeyCode][]Entry
}

// NewKeyboardTranslator creates an empty, named translator.
func NewKeyboardTranslator(name string) *KeyboardTranslator {
	return &KeyboardTranslator{name: name, entries: make(map[KeyCode][]Entry)}
}

// Name returns the translator's display name.
func (kt *KeyboardTranslator) Name() string { return kt.name }

// AddEntry registers an entry for a keycode. text is escape-unescaped
// (\E \b \t \n \r \f \xHH) before storage, matching the spec's "unescaped
// at load time" rule.
func (kt *KeyboardTranslator) AddEntry(code KeyCode, e Entry) {
	e.Text = UnescapeKeyText(e.Text)
	kt.entries[code] = append(kt.entries[code], e)
}

// FindEntry returns the first entry registered for code whose modifiers and
// state masks agree with the supplied values.
func (kt *KeyboardTranslator) FindEntry(code KeyCode, modifiers ModifierMask, state TranslatorState) (Entry, bool) {
	for _, e := range kt.entries[code] {
		if e.matches(modifiers, state) {
			return e, true
		}
	}
	return Entry{}, false
}

// UnescapeKeyText expands \E \b \t \n \r \f and \xHH escapes in a
// translator table's text field.
func UnescapeKeyText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			out = append(out, s[i])
			continue
		}
		switch s[i+1] {
		case 'E':
			out = append(out, 0x1B)
			i++
		case 'b':
			out = append(out, 0x08)
			i++
		case 't':
			out = append(out, 0x09)
			i++
		case 'n':
			out = append(out, 0x0A)
			i++
		case 'r':
			out = append(out, 0x0D)
			i++
		case 'f':
			out = append(out, 0x0C)
			i++
		case 'x':
			if i+3 < len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					out = append(out, byte(v))
					i += 3
					continue
				}
			}
			out = append(out, s[i])
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}

// ExpandWildcard replaces every '*' byte in text with '0' + the modifier
// bitset value (Shift=1, Alt=2, Ctrl=4, base 1), as xterm-style modifyOtherKeys
// sequences require.
func ExpandWildcard(text string, modifiers ModifierMask) string {
	value := byte(1)
	if modifiers&ModShift != 0 {
		value += 1
	}
	if modifiers&ModAlt != 0 {
		value += 2
	}
	if modifiers&ModCtrl != 0 {
		value += 4
	}

	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '*' {
			out = append(out, '0'+value)
		} else {
			out = append(out, text[i])
		}
	}
	return string(out)
}

// NewDefaultKeyboardTranslator returns the built-in minimal fallback
// translator the spec requires when no translator has been configured: it
// supports Tab, Enter, and Backspace at minimum, plus application-mode
// aware arrow keys.
func NewDefaultKeyboardTranslator() *KeyboardTranslator {
	kt := NewKeyboardTranslator("Fallback Key Translator")

	kt.AddEntry(KeyTab, Entry{Text: "\t"})
	kt.AddEntry(KeyEnter, Entry{Text: "\r"})
	kt.AddEntry(KeyBackspace, Entry{Text: "\x7f"})

	kt.AddEntry(KeyUp, Entry{State: StateCursorKeys, StateMask: StateCursorKeys, Text: "\x1bOA"})
	kt.AddEntry(KeyUp, Entry{Text: "\x1b[A"})
	kt.AddEntry(KeyDown, Entry{State: StateCursorKeys, StateMask: StateCursorKeys, Text: "\x1bOB"})
	kt.AddEntry(KeyDown, Entry{Text: "\x1b[B"})
	kt.AddEntry(KeyRight, Entry{State: StateCursorKeys, StateMask: StateCursorKeys, Text: "\x1bOC"})
	kt.AddEntry(KeyRight, Entry{Text: "\x1b[C"})
	kt.AddEntry(KeyLeft, Entry{State: StateCursorKeys, StateMask: StateCursorKeys, Text: "\x1bOD"})
	kt.AddEntry(KeyLeft, Entry{Text: "\x1b[D"})

	kt.AddEntry(KeyHome, Entry{Text: "\x1b[H"})
	kt.AddEntry(KeyEnd, Entry{Text: "\x1b[F"})
	kt.AddEntry(KeyInsert, Entry{Text: "\x1b[2~"})
	kt.AddEntry(KeyDelete, Entry{Text: "\x1b[3~"})
	kt.AddEntry(KeyPageUp, Entry{Text: "\x1b[5~"})
	kt.AddEntry(KeyPageDown, Entry{Text: "\x1b[6~"})

	return kt
}

// stateMask builds the TranslatorState bitset reflecting the terminal's
// current mode settings plus whether any non-keypad modifier is held for
// this event, for use as the query state in FindEntry. Must be called
// with t.mu already held.
func (t *Terminal) stateMask(modifiers ModifierMask) TranslatorState {
	var s TranslatorState = StateAnsi
	if t.modes&ModeLineFeedNewLine != 0 {
		s |= StateNewLine
	}
	if t.modes&ModeCursorKeys != 0 {
		s |= StateCursorKeys
	}
	if t.activeBuffer == t.alternateBuffer {
		s |= StateAlternateScreen
	}
	if t.modes&ModeKeypadApplication != 0 {
		s |= StateApplicationKeypad
	}
	if modifiers&(ModShift|ModAlt|ModCtrl) != 0 {
		s |= StateAnyModifier
	}
	return s
}

// SendKeyEvent translates a key press into the byte sequence the connected
// program expects and writes it via the response provider. fromPaste
// should be true when the event originates from a bracketed paste rather
// than a direct key press, which suppresses flow-control interpretation.
func (t *Terminal) SendKeyEvent(evt KeyEvent, fromPaste bool) {
	t.mu.Lock()
	translator := t.keyboardTranslator
	state := t.stateMask(evt.Modifiers)
	flowProvider := t.flowControlProvider
	diagnostics := t.diagnosticProvider
	keypressOutput := t.keypressOutputProvider
	t.mu.Unlock()

	if !fromPaste && len(evt.Text) == 1 && evt.Modifiers&ModCtrl != 0 {
		switch evt.Text[0] | 0x20 {
		case 's':
			flowProvider.FlowControl(false)
		case 'q', 'c':
			flowProvider.FlowControl(true)
		}
	}

	text, ok := translator.resolve(evt, state)
	if !ok {
		diagnostics.Report("keyboard", "no translator entry for key event")
		return
	}

	t.writeResponseString(text)

	if !fromPaste {
		keypressOutput.NotifyKeypressOutput()
	}
}

// resolve finds the translator entry for evt under state and applies the
// Alt/Meta/Ctrl prefix rules and wildcard expansion, falling back to
// evt.Text or a hardcoded sequence for keys with no registered entry.
func (kt *KeyboardTranslator) resolve(evt KeyEvent, state TranslatorState) (string, bool) {
	var text string
	entry, found := kt.FindEntry(evt.Code, evt.Modifiers, state)

	switch {
	case found:
		text = ExpandWildcard(entry.Text, evt.Modifiers)
	case evt.Code == KeyUnknown && evt.Text != "":
		text = evt.Text
		if evt.Modifiers&ModCtrl != 0 && len(text) == 1 {
			c := text[0]
			switch {
			case c >= 'a' && c <= 'z':
				text = string(rune(c - 'a' + 1))
			case c >= 0x40 && c <= 0x5f:
				// '@'..'_' (includes 'A'-'Z'): Ctrl maps the whole row to 0x00-0x1f.
				text = string(rune(c & 0x1f))
			}
		}
	case evt.Code == KeyPageUp:
		text = "\x1b[5~"
	case evt.Code == KeyPageDown:
		text = "\x1b[6~"
	case evt.Code == KeyTab:
		text = "\t"
	default:
		return "", false
	}

	// An entry that matches on modifiers or declares AnyModifier has
	// already accounted for Alt/Meta in its Text; only add the prefix
	// convention when the entry (or fallback path) did not.
	consumesAlt := found && (entry.ModifiersMask&ModAlt != 0 || entry.State&StateAnyModifier != 0)
	if evt.Modifiers&ModMeta != 0 && !consumesAlt {
		text = "\x1b@s" + text
	} else if evt.Modifiers&ModAlt != 0 && !consumesAlt {
		text = "\x1b" + text
	}

	return text, true
}

// Paste sends pasted text to the PTY, wrapping it in bracketed-paste markers
// when ModeBracketedPaste is enabled. Multi-line text is first offered to
// the PasteConfirmationProvider, which can veto the paste.
func (t *Terminal) Paste(text string) {
	t.mu.RLock()
	bracketed := t.modes&ModeBracketedPaste != 0
	confirmer := t.pasteConfirmationProvider
	t.mu.RUnlock()

	if strings.ContainsAny(text, "\n\r") && !confirmer.ConfirmPaste(text) {
		return
	}

	if bracketed {
		t.writeResponseString("\x1b[200~")
		t.writeResponseString(text)
		t.writeResponseString("\x1b[201~")
	} else {
		t.writeResponseString(text)
	}
}
