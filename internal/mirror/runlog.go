package mirror

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// logTimestampFormat names the log file after the moment the run
// started, one file per run.
const logTimestampFormat = "01-02-2006_15-04-05"

// RunLog is the per-run log file. One line per structural error and
// per reconciled copy failure, plus start/end banners and the final
// stats block. Safe for concurrent use.
type RunLog struct {
	file *os.File
	path string
	mu   sync.Mutex
}

// NewRunLog creates the logs directory if needed and opens a fresh
// log file named after the current time.
func NewRunLog(dir string) (*RunLog, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, "log_"+time.Now().Format(logTimestampFormat)+".txt")

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", path, err)
	}

	return &RunLog{file: file, path: path}, nil
}

// Printf writes one timestamped line to the log.
func (l *RunLog) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	_, _ = fmt.Fprintf(l.file, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// Path returns the log file's location.
func (l *RunLog) Path() string {
	return l.path
}

// Close flushes and closes the log file.
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.file.Close()
	if err != nil {
		return fmt.Errorf("failed to close log file %s: %w", l.path, err)
	}

	return nil
}
