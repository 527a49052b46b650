package mirror_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/joe/backup-files/internal/mirror"
)

func TestSummaryRender(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	summary := &mirror.Summary{
		Stats: mirror.RunStats{
			FilesChecked:   10,
			FoldersChecked: 3,
			ShouldCopy:     4,
			CopySuccess:    3,
			Errors:         1,
			BytesCopied:    2048,
		},
		Elapsed:        1500 * time.Millisecond,
		FreeBytes:      50 * 1024 * 1024 * 1024,
		TotalBytes:     100 * 1024 * 1024 * 1024,
		DiskSpaceKnown: true,
	}

	text := summary.Render()

	g.Expect(text).To(ContainSubstring("Backup complete in 1.5s"))
	g.Expect(text).To(ContainSubstring("Files checked:   10"))
	g.Expect(text).To(ContainSubstring("Folders checked: 3"))
	g.Expect(text).To(ContainSubstring("Copied:          3 out of 4 files (2.0 KB)"))
	g.Expect(text).To(ContainSubstring("Errors:          1"))
	g.Expect(text).To(ContainSubstring("Destination free space: 50.0 GB of 100.0 GB"))
}

func TestSummaryRenderOmitsOptionalLines(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	summary := &mirror.Summary{Stats: mirror.RunStats{FilesChecked: 1}}

	text := summary.Render()

	g.Expect(text).NotTo(ContainSubstring("Files filtered"))
	g.Expect(text).NotTo(ContainSubstring("free space"))
}
