//go:build unix

package filesystem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DiskSpace reports the free and total bytes of the volume holding
// path. Used for the end-of-run report only; failures here never affect
// the mirror run itself.
func DiskSpace(path string) (free, total uint64, err error) {
	var stat unix.Statfs_t

	err = unix.Statfs(path, &stat)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to stat filesystem at %s: %w", path, err)
	}

	blockSize := uint64(stat.Bsize)

	return stat.Bavail * blockSize, stat.Blocks * blockSize, nil
}
