package headlessterm

import (
	"encoding/binary"
	"io"
	"os"
)

func createAndUnlink(dir string) (*os.File, error) {
	f, err := os.CreateTemp(dir, "headlessterm-history-*")
	if err != nil {
		return nil, err
	}
	os.Remove(f.Name())
	return f, nil
}

// fileIndexRecord is the fixed-width on-disk representation of one line's
// location in the text file, per spec §6: (text_offset uint64, wrap_flag
// uint8, padding).
type fileIndexRecord struct {
	Offset uint64
	Wrap   uint8
	_      [7]byte // padding to a 16-byte record
}

const fileIndexRecordSize = 16

// FileScrollback is the History::File strategy: an append-only store
// backed by two unlinked temporary files — an index file of fixed-size
// (offset, wrap_flag) records and a text file of packed cell bytes. It is
// bounded by maxLines like the in-memory backends: once more than maxLines
// lines are stored the oldest is evicted, and a maxLines of 0 stores
// nothing.
//
// I/O failures degrade the backend to dropping new lines rather than
// failing the caller's write, per spec §7 ("History backend I/O failure ...
// the backend degrades to dropping new lines rather than failing upstream
// writes").
type FileScrollback struct {
	indexFile *os.File
	textFile  *os.File

	cumulativeOffset uint64
	lineCount        int
	maxLines         int
	broken           bool
}

// NewFileScrollback creates a File-backed scrollback using dir as the
// directory to create (and immediately unlink) its backing files in. An
// empty dir uses the OS default temp directory.
func NewFileScrollback(dir string, maxLines int) (*FileScrollback, error) {
	idx, err := openUnlinkedTempFile(dir)
	if err != nil {
		return nil, err
	}
	text, err := openUnlinkedTempFile(dir)
	if err != nil {
		idx.Close()
		return nil, err
	}
	return &FileScrollback{
		indexFile: idx,
		textFile:  text,
		maxLines:  maxLines,
	}, nil
}

// Close releases the two open file handles. Safe to call more than once.
func (f *FileScrollback) Close() error {
	var err error
	if f.indexFile != nil {
		err = f.indexFile.Close()
		f.indexFile = nil
	}
	if f.textFile != nil {
		if e := f.textFile.Close(); err == nil {
			err = e
		}
		f.textFile = nil
	}
	return err
}

func encodeCell(c Cell) []byte {
	// A compact, fixed-width packing: rune (4 bytes) + flags (4 bytes) +
	// foreground resolved to RGBA (4 bytes). The background is not
	// persisted; decodeCell restores the default background.
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(c.Char))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(c.Flags))
	rgba := colorKeyOf(c.Fg, true)
	buf[8] = rgba.R
	buf[9] = rgba.G
	buf[10] = rgba.B
	buf[11] = rgba.A
	return buf
}

func decodeCell(buf []byte) Cell {
	r := rune(binary.LittleEndian.Uint32(buf[0:4]))
	flags := CellFlags(binary.LittleEndian.Uint32(buf[4:8]))
	return Cell{
		Char:  r,
		Flags: flags,
		Fg:    colorKey{R: buf[8], G: buf[9], B: buf[10], A: buf[11]}.color(),
		Bg:    &NamedColor{Name: NamedColorBackground},
	}
}

const fileCellSize = 12

// Push appends a line's cells to the text file and a new record to the
// index file. On any I/O error the backend marks itself broken and
// silently discards this and all subsequent writes.
func (f *FileScrollback) Push(line []Cell, wrapped bool) {
	if f.broken || f.maxLines == 0 {
		return
	}

	buf := make([]byte, 0, len(line)*fileCellSize)
	for _, c := range line {
		buf = append(buf, encodeCell(c)...)
	}

	if _, err := f.textFile.WriteAt(buf, int64(f.cumulativeOffset)); err != nil {
		f.broken = true
		return
	}

	rec := make([]byte, fileIndexRecordSize)
	binary.LittleEndian.PutUint64(rec[0:8], f.cumulativeOffset)
	if wrapped {
		rec[8] = 1
	}
	if _, err := f.indexFile.WriteAt(rec, int64(f.lineCount)*fileIndexRecordSize); err != nil {
		f.broken = true
		return
	}

	f.cumulativeOffset += uint64(len(buf))
	f.lineCount++

	if f.maxLines > 0 && f.lineCount > f.maxLines {
		f.evictOldest()
	}
}

// evictOldest drops the oldest index record by shifting the remaining
// records down. The text file is left with an unreferenced gap at its
// start; this trades disk space for avoiding a full text-file rewrite on
// every eviction.
func (f *FileScrollback) evictOldest() {
	if f.lineCount <= 1 {
		f.lineCount = 0
		return
	}
	remaining := f.lineCount - 1
	buf := make([]byte, remaining*fileIndexRecordSize)
	if _, err := f.indexFile.ReadAt(buf, fileIndexRecordSize); err != nil && err != io.EOF {
		f.broken = true
		return
	}
	if _, err := f.indexFile.WriteAt(buf, 0); err != nil {
		f.broken = true
		return
	}
	f.lineCount = remaining
}

func (f *FileScrollback) readIndex(lineno int) (offset uint64, wrapped bool, ok bool) {
	if f.broken || lineno < 0 || lineno >= f.lineCount {
		return 0, false, false
	}
	rec := make([]byte, fileIndexRecordSize)
	if _, err := f.indexFile.ReadAt(rec, int64(lineno)*fileIndexRecordSize); err != nil {
		return 0, false, false
	}
	return binary.LittleEndian.Uint64(rec[0:8]), rec[8] != 0, true
}

func (f *FileScrollback) lineByteRange(lineno int) (start, end uint64, ok bool) {
	start, _, ok = f.readIndex(lineno)
	if !ok {
		return 0, 0, false
	}
	if lineno+1 < f.lineCount {
		end, _, _ = f.readIndex(lineno + 1)
	} else {
		end = f.cumulativeOffset
	}
	return start, end, true
}

// Len returns the number of stored lines.
func (f *FileScrollback) Len() int { return f.lineCount }

// Line reads and decodes the full line at index, 0 being the oldest.
func (f *FileScrollback) Line(index int) []Cell {
	start, end, ok := f.lineByteRange(index)
	if !ok || end <= start {
		return nil
	}
	buf := make([]byte, end-start)
	if _, err := f.textFile.ReadAt(buf, int64(start)); err != nil {
		return nil
	}
	n := len(buf) / fileCellSize
	cells := make([]Cell, n)
	for i := 0; i < n; i++ {
		cells[i] = decodeCell(buf[i*fileCellSize : (i+1)*fileCellSize])
	}
	return cells
}

// LineLen returns the number of cells stored for the line at index.
func (f *FileScrollback) LineLen(index int) int {
	start, end, ok := f.lineByteRange(index)
	if !ok || end <= start {
		return 0
	}
	return int((end - start) / fileCellSize)
}

// IsWrapped reports the wrap flag of the line at index.
func (f *FileScrollback) IsWrapped(index int) bool {
	_, wrapped, ok := f.readIndex(index)
	return ok && wrapped
}

// Cells copies up to count cells from the line at index starting at col.
func (f *FileScrollback) Cells(index, col, count int, dst []Cell) int {
	line := f.Line(index)
	if line == nil || col < 0 || col >= len(line) {
		return 0
	}
	end := col + count
	if end > len(line) {
		end = len(line)
	}
	return copy(dst, line[col:end])
}

// Clear truncates both backing files and resets bookkeeping.
func (f *FileScrollback) Clear() {
	if f.indexFile != nil {
		f.indexFile.Truncate(0)
	}
	if f.textFile != nil {
		f.textFile.Truncate(0)
	}
	f.cumulativeOffset = 0
	f.lineCount = 0
	f.broken = false
}

// SetMaxLines adjusts capacity, evicting from the front if shrinking below
// the current line count.
func (f *FileScrollback) SetMaxLines(max int) {
	if max < 0 {
		max = 0
	}
	f.maxLines = max
	for f.maxLines > 0 && f.lineCount > f.maxLines {
		f.evictOldest()
	}
}

// MaxLines returns the current capacity.
func (f *FileScrollback) MaxLines() int { return f.maxLines }

var _ ScrollbackProvider = (*FileScrollback)(nil)
