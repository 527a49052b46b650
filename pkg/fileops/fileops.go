// Package fileops provides the copy and comparison primitives the
// mirror walker builds on. All operations go through the filesystem
// abstraction so source and destination may live on different backends.
package fileops

import (
	"errors"
	"fmt"
	"io"

	"github.com/joe/backup-files/pkg/filesystem"
)

// BufferSize is the chunk size for copy and comparison loops (32KB).
const BufferSize = 32 * 1024

// Ops performs file operations across a source/destination filesystem
// pair.
type Ops struct {
	src filesystem.FileSystem
	dst filesystem.FileSystem
}

// NewOps creates an Ops over the given filesystems.
func NewOps(src, dst filesystem.FileSystem) *Ops {
	return &Ops{src: src, dst: dst}
}

// CopyFile copies srcPath on the source filesystem to dstPath on the
// destination filesystem, overwriting any existing file and preserving
// the source modification time (the mirror's copy decision depends on
// it). A partially written destination is removed on failure.
func (o *Ops) CopyFile(srcPath, dstPath string) (int64, error) {
	srcFile, err := o.src.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file %s: %w", srcPath, err)
	}

	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat source file %s: %w", srcPath, err)
	}

	dstFile, err := o.dst.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination file %s: %w", dstPath, err)
	}

	copyCompleted := false

	defer func() {
		_ = dstFile.Close()

		if !copyCompleted {
			_ = o.dst.Remove(dstPath)
		}
	}()

	written, err := copyLoop(srcFile, dstFile)
	if err != nil {
		return written, fmt.Errorf("failed to copy %s to %s: %w", srcPath, dstPath, err)
	}

	// Close before setting the modification time; some backends (SMB,
	// SFTP) apply times at close otherwise.
	err = dstFile.Close()
	if err != nil {
		return written, fmt.Errorf("failed to close destination file %s: %w", dstPath, err)
	}

	err = o.dst.Chtimes(dstPath, srcInfo.ModTime(), srcInfo.ModTime())
	if err != nil {
		return written, fmt.Errorf("failed to preserve modification time for %s: %w", dstPath, err)
	}

	copyCompleted = true

	return written, nil
}

// CompareFiles reports whether srcPath and dstPath have identical
// contents. Sizes are compared first as a fast inequality check, then
// contents in fixed-size chunks. Buffers are per-call so concurrent
// comparisons never alias.
func (o *Ops) CompareFiles(srcPath, dstPath string) (bool, error) {
	srcFile, err := o.src.Open(srcPath)
	if err != nil {
		return false, fmt.Errorf("failed to open %s for comparison: %w", srcPath, err)
	}

	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := o.dst.Open(dstPath)
	if err != nil {
		return false, fmt.Errorf("failed to open %s for comparison: %w", dstPath, err)
	}

	defer func() {
		_ = dstFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", srcPath, err)
	}

	dstInfo, err := dstFile.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", dstPath, err)
	}

	if srcInfo.Size() != dstInfo.Size() {
		return false, nil
	}

	identical, err := compareContents(srcFile, dstFile)
	if err != nil {
		return false, fmt.Errorf("failed to compare %s and %s: %w", srcPath, dstPath, err)
	}

	return identical, nil
}

// compareContents compares two readers chunk by chunk until a mismatch
// or both hit EOF together.
func compareContents(file1, file2 filesystem.File) (bool, error) {
	buf1 := make([]byte, BufferSize)
	buf2 := make([]byte, BufferSize)

	for {
		n1, err1 := io.ReadFull(file1, buf1)
		n2, err2 := io.ReadFull(file2, buf2)

		if err := readFullError(err1); err != nil {
			return false, err
		}

		if err := readFullError(err2); err != nil {
			return false, err
		}

		if n1 != n2 {
			return false, nil
		}

		for i := range n1 {
			if buf1[i] != buf2[i] {
				return false, nil
			}
		}

		if errors.Is(err1, io.EOF) && errors.Is(err2, io.EOF) {
			return true, nil
		}
	}
}

// readFullError normalizes io.ReadFull errors: EOF and a short final
// chunk are expected, anything else is a real failure.
func readFullError(err error) error {
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}

	return err
}

// copyLoop copies src to dst in fixed-size chunks.
func copyLoop(src, dst filesystem.File) (int64, error) {
	var written int64

	buf := make([]byte, BufferSize)

	for {
		nr, err := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[0:nr])
			if writeErr != nil {
				return written, fmt.Errorf("failed to write to destination: %w", writeErr)
			}

			if nr != nw {
				return written, fmt.Errorf("short write: %w", io.ErrShortWrite)
			}

			written += int64(nw)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return written, fmt.Errorf("failed to read from source: %w", err)
		}
	}

	return written, nil
}
