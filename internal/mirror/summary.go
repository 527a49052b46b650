package mirror

import (
	"fmt"
	"strings"
	"time"
)

// Summary is the end-of-run report: the final counters, elapsed time,
// and the destination volume's free space when it could be queried.
type Summary struct {
	Stats          RunStats
	Elapsed        time.Duration
	FreeBytes      uint64
	TotalBytes     uint64
	DiskSpaceKnown bool
}

// Render returns the report as display text, shared by the TUI summary
// screen, the headless run, and the run log's closing block.
func (s *Summary) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Backup complete in %s\n\n", s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "  Files checked:   %d\n", s.Stats.FilesChecked)
	fmt.Fprintf(&b, "  Folders checked: %d\n", s.Stats.FoldersChecked)

	if s.Stats.FilesFiltered > 0 {
		fmt.Fprintf(&b, "  Files filtered:  %d\n", s.Stats.FilesFiltered)
	}

	fmt.Fprintf(&b, "  Copied:          %d out of %d files (%s)\n",
		s.Stats.CopySuccess, s.Stats.ShouldCopy, formatBytes(s.Stats.BytesCopied))
	fmt.Fprintf(&b, "  Errors:          %d\n", s.Stats.Errors)

	if s.DiskSpaceKnown {
		fmt.Fprintf(&b, "\n  Destination free space: %s of %s\n",
			formatBytes(int64(s.FreeBytes)), formatBytes(int64(s.TotalBytes)))
	}

	return b.String()
}

// formatBytes renders a byte count in human-readable units.
func formatBytes(bytes int64) string {
	const unit = 1024

	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
