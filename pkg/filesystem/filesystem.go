// Package filesystem provides an abstraction layer over the backends a
// backup can read from or write to (local disk, SFTP), so the mirror
// walker and tests can run against any of them.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"time"
)

// File abstracts an open file on any backend.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Stat() (os.FileInfo, error)
}

// DirEntry is one child of a directory listing. ModTime and Size are
// populated for files; directories only need Name and IsDir.
type DirEntry struct {
	Name    string
	IsDir   bool
	ModTime time.Time
	Size    int64
}

// FileSystem is the capability the mirror walker consumes. Mkdir is
// single-level on purpose: a failure to create a directory whose parent
// is missing is how the walker detects a structurally broken subtree.
// Implementations must map their backend's "already exists" condition
// onto fs.ErrExist so errors.Is(err, fs.ErrExist) holds.
type FileSystem interface {
	Open(path string) (File, error)
	Create(path string) (File, error)
	Mkdir(path string, perm os.FileMode) error
	ReadDir(path string) ([]DirEntry, error)
	Stat(path string) (os.FileInfo, error)
	Chtimes(path string, atime, mtime time.Time) error
	Remove(path string) error
}

// LocalFileSystem implements FileSystem with the os package.
type LocalFileSystem struct{}

// NewLocalFileSystem creates a new LocalFileSystem.
func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{}
}

// Chtimes changes the access and modification times of a file.
func (fs *LocalFileSystem) Chtimes(path string, atime, mtime time.Time) error {
	err := os.Chtimes(path, atime, mtime)
	if err != nil {
		return fmt.Errorf("failed to change times for %s: %w", path, err)
	}

	return nil
}

// Create creates (or truncates) a file for writing.
func (fs *LocalFileSystem) Create(path string) (File, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return file, nil
}

// Mkdir creates a single directory level.
func (fs *LocalFileSystem) Mkdir(path string, perm os.FileMode) error {
	return os.Mkdir(path, perm)
}

// Open opens a file for reading.
func (fs *LocalFileSystem) Open(path string) (File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return file, nil
}

// ReadDir lists the immediate children of a directory.
func (fs *LocalFileSystem) ReadDir(path string) ([]DirEntry, error) {
	osEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	entries := make([]DirEntry, 0, len(osEntries))

	for _, osEntry := range osEntries {
		entry := DirEntry{
			Name:  osEntry.Name(),
			IsDir: osEntry.IsDir(),
		}

		// Info can fail if the entry vanished between the listing and
		// the stat; a zero ModTime then forces a copy, which is safe.
		if info, infoErr := osEntry.Info(); infoErr == nil {
			entry.ModTime = info.ModTime()
			entry.Size = info.Size()
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Remove removes a file or empty directory.
func (fs *LocalFileSystem) Remove(path string) error {
	err := os.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

// Stat returns file information.
func (fs *LocalFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}
