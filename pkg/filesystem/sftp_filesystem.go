package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pkg/sftp"
)

// SFTPFileSystem implements FileSystem for a remote SFTP endpoint.
// A single sftp.Client serves all calls; the client is safe for
// concurrent use by multiple goroutines.
type SFTPFileSystem struct {
	client *sftp.Client
}

// NewSFTPFileSystem creates an SFTP filesystem on an established
// connection. The connection stays owned by the caller.
func NewSFTPFileSystem(conn *SFTPConnection) *SFTPFileSystem {
	return &SFTPFileSystem{client: conn.Client()}
}

// Chtimes changes the access and modification times of a remote file.
func (s *SFTPFileSystem) Chtimes(path string, atime, mtime time.Time) error {
	err := s.client.Chtimes(path, atime, mtime)
	if err != nil {
		return fmt.Errorf("failed to change times for remote file %s: %w", path, err)
	}

	return nil
}

// Create creates (or truncates) a remote file for writing.
func (s *SFTPFileSystem) Create(path string) (File, error) {
	file, err := s.client.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote file %s: %w", path, err)
	}

	return file, nil
}

// Mkdir creates a single remote directory level. SFTP servers report a
// bare failure status for an existing directory, so the error is mapped
// onto fs.ErrExist by statting the path, keeping the walker's
// benign-exists rule intact across backends.
func (s *SFTPFileSystem) Mkdir(path string, _ os.FileMode) error {
	err := s.client.Mkdir(path)
	if err == nil {
		return nil
	}

	if info, statErr := s.client.Stat(path); statErr == nil && info.IsDir() {
		return fmt.Errorf("remote directory %s: %w", path, fs.ErrExist)
	}

	return fmt.Errorf("failed to create remote directory %s: %w", path, err)
}

// Open opens a remote file for reading.
func (s *SFTPFileSystem) Open(path string) (File, error) {
	file, err := s.client.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file %s: %w", path, err)
	}

	return file, nil
}

// ReadDir lists the immediate children of a remote directory.
func (s *SFTPFileSystem) ReadDir(path string) ([]DirEntry, error) {
	infos, err := s.client.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote directory %s: %w", path, err)
	}

	entries := make([]DirEntry, 0, len(infos))

	for _, info := range infos {
		entries = append(entries, DirEntry{
			Name:    info.Name(),
			IsDir:   info.IsDir(),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	return entries, nil
}

// Remove removes a remote file or empty directory.
func (s *SFTPFileSystem) Remove(path string) error {
	err := s.client.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove remote file %s: %w", path, err)
	}

	return nil
}

// Stat returns file information for a remote path.
func (s *SFTPFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := s.client.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote path %s: %w", path, err)
	}

	return info, nil
}
