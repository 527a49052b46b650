//go:build !unix

package filesystem

import "errors"

// DiskSpace is unavailable on this platform; the report omits the
// free-space lines when it fails.
func DiskSpace(string) (free, total uint64, err error) {
	return 0, 0, errors.New("disk space query not supported on this platform")
}
