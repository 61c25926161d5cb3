package headlessterm

import (
	"sync"

	"github.com/google/uuid"
)

// extendedCharBase is the first handle value returned by the table.
// Handles live above any valid Unicode scalar value so a Cell.Char field
// can hold either a codepoint or a handle without an extra discriminator,
// as long as CellFlagExtendedChar is also consulted.
const extendedCharBase = 0x110000

// extendedCharTableSize bounds the table to a 16-bit handle space, per spec.
const extendedCharTableSize = 1 << 16

// ExtendedCharTable interns multi-codepoint grapheme clusters (e.g. emoji
// with variation selectors, combining character sequences) behind a
// fixed-size handle so every Cell stays the same size regardless of how
// many codepoints a displayed glyph is made of.
//
// Collisions are resolved by linear probing over a fixed-size slot array;
// lookups reproduce the stored sequence for replay during rendering.
type ExtendedCharTable struct {
	mu    sync.Mutex
	slots []extendedCharSlot
	seed  uint32
}

type extendedCharSlot struct {
	used  bool
	hash  uint32
	runes []rune
}

// NewExtendedCharTable creates an empty table. Each Terminal owns one
// instance rather than sharing a package-level singleton.
func NewExtendedCharTable() *ExtendedCharTable {
	return &ExtendedCharTable{
		slots: make([]extendedCharSlot, extendedCharTableSize),
		seed:  randomSeed(),
	}
}

// randomSeed derives a per-table hash seed so adversarial input can't force
// a predictable collision chain across all tables in a process.
func randomSeed() uint32 {
	id := uuid.New()
	var v uint32
	for _, b := range id[:4] {
		v = v<<8 | uint32(b)
	}
	return v
}

func (t *ExtendedCharTable) hash(runes []rune) uint32 {
	h := t.seed
	for _, r := range runes {
		h = h*31 + uint32(r)
	}
	return h
}

// CreateExtendedChar interns the given rune sequence and returns its handle
// as a pseudo-codepoint suitable for storage in Cell.Char (combined with
// CellFlagExtendedChar). If an identical sequence is already interned its
// existing handle is returned.
//
// If the table is completely full (exhausted the 16-bit handle space after
// probing every slot) the first rune of the sequence is returned instead,
// matching the spec's documented degradation for that impossible-in-practice
// case.
func (t *ExtendedCharTable) CreateExtendedChar(runes []rune) rune {
	if len(runes) == 0 {
		return ' '
	}
	if len(runes) == 1 {
		return runes[0]
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.hash(runes)
	start := int(h % uint32(len(t.slots)))

	for i := 0; i < len(t.slots); i++ {
		idx := (start + i) % len(t.slots)
		slot := &t.slots[idx]
		if !slot.used {
			slot.used = true
			slot.hash = h
			slot.runes = append([]rune(nil), runes...)
			return rune(extendedCharBase + idx)
		}
		if slot.hash == h && runeSliceEqual(slot.runes, runes) {
			return rune(extendedCharBase + idx)
		}
	}

	return runes[0]
}

// LookupExtendedChar returns the rune sequence stored under handle, or nil
// if handle does not refer to a live slot.
func (t *ExtendedCharTable) LookupExtendedChar(handle rune) []rune {
	idx := int(handle) - extendedCharBase
	if idx < 0 || idx >= len(t.slots) {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	slot := &t.slots[idx]
	if !slot.used {
		return nil
	}
	return append([]rune(nil), slot.runes...)
}

// IsExtendedCharHandle reports whether r falls in the handle range this
// table allocates from, as opposed to being a plain Unicode scalar value.
func IsExtendedCharHandle(r rune) bool {
	return int(r) >= extendedCharBase
}

func runeSliceEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
