package mirror

import (
	stderrors "errors"
	"io/fs"
	"time"

	"github.com/joe/backup-files/pkg/errors"
	"github.com/joe/backup-files/pkg/fileops"
	"github.com/joe/backup-files/pkg/filesystem"
)

// Logger receives run log lines. Satisfied by *RunLog; tests pass a
// no-op.
type Logger interface {
	Printf(format string, args ...any)
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// nopEmitter discards events when no listener is attached.
type nopEmitter struct{}

func (nopEmitter) Emit(Event) {}

// sentinel occupies the child slot of the current level so every entry
// can be placed with the same pop-then-push pair.
const sentinel = "*"

// dirPerm is the mode for created destination directories.
const dirPerm = fs.FileMode(0o755)

// isExist reports whether err means "already exists", which the
// walker treats as benign when creating destination directories.
func isExist(err error) bool {
	return stderrors.Is(err, fs.ErrExist)
}

// walker mirrors one directory tree into another. It mutates the two
// cursors in place as it descends and restores them before returning;
// nothing it encounters during the walk is fatal.
type walker struct {
	src       filesystem.FileSystem
	dst       filesystem.FileSystem
	ops       *fileops.Ops
	filter    *GlobFilter
	threshold time.Duration
	log       Logger
	emitter   EventEmitter
	enricher  errors.Enricher
}

// walkLevel mirrors one directory level: ensures the destination
// directory exists, lists the source, handles each child, then counts
// the level itself. Mkdir or listing failures skip the whole subtree
// with a single error.
func (w *walker) walkLevel(srcCur, dstCur *Cursor, stats *RunStats) {
	err := w.dst.Mkdir(dstCur.String(), dirPerm)
	if err != nil && !isExist(err) {
		w.skipSubtree(srcCur.String(), err, stats)

		return
	}

	entries, err := w.src.ReadDir(srcCur.String())
	if err != nil {
		w.skipSubtree(srcCur.String(), err, stats)

		return
	}

	srcCur.PushSegment(sentinel)
	dstCur.PushSegment(sentinel)

	defer func() {
		srcCur.PopLevel()
		dstCur.PopLevel()
	}()

	for _, entry := range entries {
		// Some listings include the directory itself and its parent.
		if entry.Name == "." || entry.Name == ".." {
			continue
		}

		srcCur.PopLastSegment()
		srcCur.PushSegment(entry.Name)
		dstCur.PopLastSegment()
		dstCur.PushSegment(entry.Name)

		if entry.IsDir {
			w.walkLevel(srcCur, dstCur, stats)

			continue
		}

		if !w.filter.Matches(entry.Name) {
			stats.FilesFiltered++

			continue
		}

		w.mirrorFile(srcCur, dstCur, entry, stats)
	}

	stats.FoldersChecked++
}

// mirrorFile applies the copy decision to a single file and performs
// the copy when warranted, falling back to a byte comparison when the
// copy fails.
func (w *walker) mirrorFile(srcCur, dstCur *Cursor, entry filesystem.DirEntry, stats *RunStats) {
	stats.FilesChecked++
	w.emitter.Emit(FileChecked{Path: srcCur.String()})

	if !w.copyWarranted(entry.ModTime, dstCur.String()) {
		return
	}

	stats.ShouldCopy++

	written, err := w.ops.CopyFile(srcCur.String(), dstCur.String())
	if err == nil {
		stats.CopySuccess++
		stats.BytesCopied += written
		w.emitter.Emit(FileCopied{Path: srcCur.String(), Size: written})

		return
	}

	// The copy failed; if both sides already hold identical bytes the
	// file needs no copy after all, so the attempt is retracted rather
	// than counted as an error.
	identical, cmpErr := w.ops.CompareFiles(srcCur.String(), dstCur.String())
	if cmpErr == nil && identical {
		stats.ShouldCopy--
		w.log.Printf("reconciled %s: copy failed but contents already match (%v)", srcCur.String(), err)
		w.emitter.Emit(CopyReconciled{Path: srcCur.String()})

		return
	}

	stats.Errors++
	enriched := w.enricher.Enrich(err, srcCur.String())
	w.log.Printf("failed to copy %s: %v", srcCur.String(), enriched)

	if suggestions := errors.FormatSuggestions(enriched); suggestions != "" {
		w.log.Printf("suggestions for %s:\n%s", srcCur.String(), suggestions)
	}

	w.emitter.Emit(FileFailed{Path: srcCur.String(), Err: enriched})
}

// copyWarranted reports whether the source file's timestamp differs
// from the destination's by strictly more than the threshold. A
// destination that cannot be statted counts as zero time, so new files
// are always copied.
func (w *walker) copyWarranted(srcMod time.Time, dstPath string) bool {
	var dstMod time.Time

	if info, err := w.dst.Stat(dstPath); err == nil {
		dstMod = info.ModTime()
	}

	diff := srcMod.Sub(dstMod)
	if diff < 0 {
		diff = -diff
	}

	return diff > w.threshold
}

// skipSubtree records a structural failure: one error, one log line,
// one event, and the subtree is not descended into.
func (w *walker) skipSubtree(path string, err error, stats *RunStats) {
	stats.Errors++
	enriched := w.enricher.Enrich(err, path)
	w.log.Printf("skipped subtree %s: %v", path, enriched)

	if suggestions := errors.FormatSuggestions(enriched); suggestions != "" {
		w.log.Printf("suggestions for %s:\n%s", path, suggestions)
	}

	w.emitter.Emit(SubtreeSkipped{Path: path, Err: enriched})
}
