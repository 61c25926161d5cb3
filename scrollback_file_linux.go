//go:build linux

package headlessterm

import (
	"os"

	"golang.org/x/sys/unix"
)

// openUnlinkedTempFile opens a file in dir that is never visible under any
// name — created via O_TMPFILE where the kernel supports it (tmpfs, ext4,
// xfs, btrfs), so the spec's "unlinked immediately" requirement holds from
// the moment the file is created rather than relying on a later os.Remove
// racing against a crash.
func openUnlinkedTempFile(dir string) (*os.File, error) {
	fd, err := unix.Open(dir, unix.O_TMPFILE|unix.O_RDWR, 0o600)
	if err != nil {
		return createAndUnlink(dir)
	}
	return os.NewFile(uintptr(fd), dir+"/(unlinked)"), nil
}
