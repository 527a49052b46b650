package errors_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/joe/backup-files/pkg/errors"
)

func TestPatternMatcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		errorMsg string
		want     errors.ErrorCategory
	}{
		{
			name:     "permission denied",
			errorMsg: "open /etc/shadow: permission denied",
			want:     errors.CategoryPermission,
		},
		{
			name:     "access denied uppercase",
			errorMsg: "Access Denied by remote server",
			want:     errors.CategoryPermission,
		},
		{
			name:     "operation not permitted",
			errorMsg: "chtimes /mnt/backup/a.txt: operation not permitted",
			want:     errors.CategoryPermission,
		},
		{
			name:     "no space left",
			errorMsg: "write /mnt/backup/big.bin: no space left on device",
			want:     errors.CategoryDiskSpace,
		},
		{
			name:     "quota exceeded",
			errorMsg: "write failed: quota exceeded",
			want:     errors.CategoryDiskSpace,
		},
		{
			name:     "missing file",
			errorMsg: "stat /home/user/photos: no such file or directory",
			want:     errors.CategoryPath,
		},
		{
			name:     "listing failure",
			errorMsg: "failed to list directory /home/user/docs: input rejected",
			want:     errors.CategoryListing,
		},
		{
			name:     "not a directory",
			errorMsg: "open /home/user/file.txt/sub: not a directory",
			want:     errors.CategoryListing,
		},
		{
			name:     "io error",
			errorMsg: "read /mnt/usb/data.bin: input/output error",
			want:     errors.CategoryCopy,
		},
		{
			name:     "short write",
			errorMsg: "copy failed: short write",
			want:     errors.CategoryCopy,
		},
		{
			name:     "unrecognized",
			errorMsg: "something inexplicable happened",
			want:     errors.CategoryUnknown,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			g := NewWithT(t)

			matcher := errors.NewPatternMatcher()

			g.Expect(matcher.Match(test.errorMsg)).To(Equal(test.want))
		})
	}
}
