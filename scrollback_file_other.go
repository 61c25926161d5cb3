//go:build !linux

package headlessterm

import "os"

// openUnlinkedTempFile falls back to create-then-remove on platforms
// without O_TMPFILE. The descriptor stays valid after the directory entry
// is removed, which is the same end state O_TMPFILE gives on Linux.
func openUnlinkedTempFile(dir string) (*os.File, error) {
	return createAndUnlink(dir)
}
