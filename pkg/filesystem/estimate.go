package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	krfs "github.com/kr/fs"
)

// Estimate holds pre-walk totals for a directory tree, used to size
// progress reporting before the mirror run starts.
type Estimate struct {
	Files   int
	Folders int
	Bytes   int64
}

// EstimateProgressFunc receives periodic progress during estimation.
type EstimateProgressFunc func(path string, count int)

// estimateProgressEvery controls how often the progress callback fires.
const estimateProgressEvery = 25

// EstimateTree walks the tree under root and returns file/folder/byte
// totals. The walk runs over the FileSystem interface via kr/fs, so it
// works identically for local and SFTP sources. The root itself is not
// counted.
func EstimateTree(fsys FileSystem, root string, progress EstimateProgressFunc) (Estimate, error) {
	var estimate Estimate

	walker := krfs.WalkFS(root, &walkAdapter{fsys: fsys})

	for walker.Step() {
		if err := walker.Err(); err != nil {
			return estimate, fmt.Errorf("failed to estimate tree under %s: %w", root, err)
		}

		if walker.Path() == root {
			continue
		}

		if walker.Stat().IsDir() {
			estimate.Folders++
		} else {
			estimate.Files++
			estimate.Bytes += walker.Stat().Size()
		}

		if progress != nil && (estimate.Files+estimate.Folders)%estimateProgressEvery == 0 {
			progress(walker.Path(), estimate.Files)
		}
	}

	return estimate, nil
}

// walkAdapter exposes a FileSystem through the interface kr/fs wants.
type walkAdapter struct {
	fsys FileSystem
}

func (a *walkAdapter) ReadDir(dirname string) ([]os.FileInfo, error) {
	entries, err := a.fsys.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		infos = append(infos, entryInfo{entry: entry})
	}

	return infos, nil
}

func (a *walkAdapter) Lstat(name string) (os.FileInfo, error) {
	return a.fsys.Stat(name)
}

func (a *walkAdapter) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// entryInfo adapts a DirEntry to os.FileInfo for the walker.
type entryInfo struct {
	entry DirEntry
}

func (e entryInfo) Name() string       { return e.entry.Name }
func (e entryInfo) Size() int64        { return e.entry.Size }
func (e entryInfo) ModTime() time.Time { return e.entry.ModTime }
func (e entryInfo) IsDir() bool        { return e.entry.IsDir }
func (e entryInfo) Sys() any           { return nil }

func (e entryInfo) Mode() fs.FileMode {
	if e.entry.IsDir {
		return fs.ModeDir
	}

	return 0
}
