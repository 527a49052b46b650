package mirror

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joe/backup-files/pkg/errors"
	"github.com/joe/backup-files/pkg/fileops"
	"github.com/joe/backup-files/pkg/filesystem"
)

// Options configures a mirror run.
type Options struct {
	Source    string // local path or sftp:// endpoint
	Dest      string // local path or sftp:// endpoint
	LogDir    string
	Pattern   string // glob limiting which files are examined; empty examines all
	Threshold time.Duration
	Workers   int // root subtrees walked in parallel when > 1
	MaxPath   int
}

// Engine owns a mirror run: the filesystem pair, the run log, and the
// walk itself.
type Engine struct {
	src     filesystem.FileSystem
	dst     filesystem.FileSystem
	srcPath string
	dstPath string
	closer  func()
	runLog  *RunLog
	filter  *GlobFilter
	opts    Options
	emitter EventEmitter
}

// NewEngine connects to both endpoints and opens the run log. Failures
// here are fatal to the run; nothing after Run starts is.
func NewEngine(opts Options) (*Engine, error) {
	filter, err := NewGlobFilter(opts.Pattern)
	if err != nil {
		return nil, err
	}

	src, dst, srcPath, dstPath, closer, err := filesystem.CreatePair(opts.Source, opts.Dest)
	if err != nil {
		return nil, fmt.Errorf("failed to connect endpoints: %w", err)
	}

	runLog, err := NewRunLog(opts.LogDir)
	if err != nil {
		closer()

		return nil, err
	}

	return &Engine{
		src:     src,
		dst:     dst,
		srcPath: srcPath,
		dstPath: dstPath,
		closer:  closer,
		runLog:  runLog,
		filter:  filter,
		opts:    opts,
		emitter: nopEmitter{},
	}, nil
}

// SetEventEmitter attaches a listener for run events. The emitter must
// be safe for concurrent use when Workers > 1.
func (e *Engine) SetEventEmitter(emitter EventEmitter) {
	if emitter != nil {
		e.emitter = emitter
	}
}

// LogPath returns the run log file's location.
func (e *Engine) LogPath() string {
	return e.runLog.Path()
}

// Estimate walks the source tree without copying anything and returns
// file/folder/byte totals, for sizing progress display.
func (e *Engine) Estimate() (filesystem.Estimate, error) {
	e.emitter.Emit(EstimateStarted{})

	estimate, err := filesystem.EstimateTree(e.src, e.srcPath, func(path string, files int) {
		e.emitter.Emit(EstimateProgress{Path: path, Files: files})
	})
	if err != nil {
		return estimate, err
	}

	e.emitter.Emit(EstimateComplete{
		Files:   estimate.Files,
		Folders: estimate.Folders,
		Bytes:   estimate.Bytes,
	})

	return estimate, nil
}

// Run performs the mirror walk and returns the summary. Errors inside
// the walk are counted and logged, never returned; the error value
// covers only the run's bookkeeping.
func (e *Engine) Run() (*Summary, error) {
	start := time.Now()

	e.runLog.Printf("=== Backup started ===")
	e.runLog.Printf("Source: %s", e.opts.Source)
	e.runLog.Printf("Destination: %s", e.opts.Dest)
	e.runLog.Printf("Threshold: %s, Workers: %d", e.opts.Threshold, e.opts.Workers)

	if e.filter.Pattern() != "" {
		e.runLog.Printf("Pattern: %s", e.filter.Pattern())
	}

	maxPath := e.opts.MaxPath
	if maxPath <= 0 {
		maxPath = DefaultMaxPath
	}

	srcCur := NewCursor(e.srcPath, maxPath)
	dstCur := NewCursor(e.dstPath, maxPath)

	// The backup lands in a destination subfolder named after the
	// source, so one backup root can hold several mirrored trees.
	dstCur.PushSegment(srcCur.Base())

	e.emitter.Emit(WalkStarted{Source: srcCur.String(), Destination: dstCur.String()})

	w := &walker{
		src:       e.src,
		dst:       e.dst,
		ops:       fileops.NewOps(e.src, e.dst),
		filter:    e.filter,
		threshold: e.opts.Threshold,
		log:       e.runLog,
		emitter:   e.emitter,
		enricher:  errors.NewEnricher(),
	}

	var stats RunStats

	if e.opts.Workers > 1 {
		e.walkParallel(w, srcCur, dstCur, &stats)
	} else {
		w.walkLevel(srcCur, dstCur, &stats)
	}

	if srcCur.Clamped() || dstCur.Clamped() {
		e.runLog.Printf("warning: some paths exceeded %d bytes and were truncated", maxPath)
	}

	summary := &Summary{Stats: stats, Elapsed: time.Since(start)}

	// Free-space figures only make sense for a local destination.
	if _, ok := e.dst.(*filesystem.LocalFileSystem); ok {
		if free, total, err := filesystem.DiskSpace(e.dstPath); err == nil {
			summary.FreeBytes = free
			summary.TotalBytes = total
			summary.DiskSpaceKnown = true
		}
	}

	e.runLog.Printf("=== Backup finished ===")
	e.runLog.Printf("%s", summary.Render())

	e.emitter.Emit(WalkComplete{Summary: summary})

	return summary, nil
}

// Close releases the filesystem connections and the run log.
func (e *Engine) Close() error {
	e.closer()

	return e.runLog.Close()
}

// walkParallel handles the root level itself (files serially, on the
// calling goroutine) and fans each child directory out to the group,
// each task with cloned cursors and its own stats merged at the end.
func (e *Engine) walkParallel(w *walker, srcCur, dstCur *Cursor, stats *RunStats) {
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

	var group errgroup.Group

	group.SetLimit(e.opts.Workers)

	subStats := make([]RunStats, len(entries))

	type taskCursors struct {
		src *Cursor
		dst *Cursor
	}

	tasks := make([]taskCursors, 0, len(entries))

	srcCur.PushSegment(sentinel)
	dstCur.PushSegment(sentinel)

	defer func() {
		srcCur.PopLevel()
		dstCur.PopLevel()
	}()

	for i, entry := range entries {
		if entry.Name == "." || entry.Name == ".." {
			continue
		}

		srcCur.PopLastSegment()
		srcCur.PushSegment(entry.Name)
		dstCur.PopLastSegment()
		dstCur.PushSegment(entry.Name)

		if entry.IsDir {
			taskSrc := srcCur.Clone()
			taskDst := dstCur.Clone()
			taskStats := &subStats[i]
			tasks = append(tasks, taskCursors{src: taskSrc, dst: taskDst})

			group.Go(func() error {
				w.walkLevel(taskSrc, taskDst, taskStats)

				return nil
			})

			continue
		}

		if !w.filter.Matches(entry.Name) {
			stats.FilesFiltered++

			continue
		}

		w.mirrorFile(srcCur, dstCur, entry, stats)
	}

	_ = group.Wait()

	for _, sub := range subStats {
		stats.Merge(sub)
	}

	for _, task := range tasks {
		srcCur.absorbClamp(task.src)
		dstCur.absorbClamp(task.dst)
	}

	stats.FoldersChecked++
}
