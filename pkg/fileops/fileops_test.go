package fileops_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/joe/backup-files/pkg/fileops"
	"github.com/joe/backup-files/pkg/filesystem"
)

func newLocalOps() *fileops.Ops {
	fsys := filesystem.NewLocalFileSystem()

	return fileops.NewOps(fsys, fsys)
}

func TestCopyFileCopiesContents(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.txt")
	dstPath := filepath.Join(dir, "dest.txt")
	content := []byte("hello, mirror")

	g.Expect(os.WriteFile(srcPath, content, 0o644)).To(Succeed())

	written, err := newLocalOps().CopyFile(srcPath, dstPath)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(written).To(Equal(int64(len(content))))

	copied, err := os.ReadFile(dstPath)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(copied).To(Equal(content))
}

func TestCopyFilePreservesModTime(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.txt")
	dstPath := filepath.Join(dir, "dest.txt")

	g.Expect(os.WriteFile(srcPath, []byte("timestamped"), 0o644)).To(Succeed())

	past := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	g.Expect(os.Chtimes(srcPath, past, past)).To(Succeed())

	_, err := newLocalOps().CopyFile(srcPath, dstPath)
	g.Expect(err).NotTo(HaveOccurred())

	info, err := os.Stat(dstPath)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(info.ModTime().Truncate(time.Second)).To(Equal(past))
}

func TestCopyFileOverwritesExistingDestination(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.txt")
	dstPath := filepath.Join(dir, "dest.txt")

	g.Expect(os.WriteFile(srcPath, []byte("new"), 0o644)).To(Succeed())
	g.Expect(os.WriteFile(dstPath, []byte("old and much longer"), 0o644)).To(Succeed())

	_, err := newLocalOps().CopyFile(srcPath, dstPath)
	g.Expect(err).NotTo(HaveOccurred())

	copied, err := os.ReadFile(dstPath)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(copied)).To(Equal("new"))
}

func TestCopyFileLargeFile(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "large.bin")
	dstPath := filepath.Join(dir, "large-copy.bin")

	// Spans multiple copy chunks with a ragged tail.
	content := make([]byte, fileops.BufferSize*3+17)
	for i := range content {
		content[i] = byte(i % 251)
	}

	g.Expect(os.WriteFile(srcPath, content, 0o644)).To(Succeed())

	written, err := newLocalOps().CopyFile(srcPath, dstPath)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(written).To(Equal(int64(len(content))))

	copied, err := os.ReadFile(dstPath)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(copied).To(Equal(content))
}

func TestCopyFileMissingSourceFails(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir := t.TempDir()

	_, err := newLocalOps().CopyFile(
		filepath.Join(dir, "does-not-exist.txt"),
		filepath.Join(dir, "dest.txt"),
	)

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("failed to open source file"))
}

func TestCopyFileMissingDestinationDirFails(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.txt")

	g.Expect(os.WriteFile(srcPath, []byte("content"), 0o644)).To(Succeed())

	_, err := newLocalOps().CopyFile(srcPath, filepath.Join(dir, "missing", "dest.txt"))

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("failed to create destination file"))
}

func TestCompareFiles(t *testing.T) {
	t.Parallel()

	longA := make([]byte, fileops.BufferSize*2+5)
	longB := make([]byte, fileops.BufferSize*2+5)

	for i := range longA {
		longA[i] = byte(i % 101)
		longB[i] = byte(i % 101)
	}

	// Mismatch in the final ragged chunk.
	longB[len(longB)-1] ^= 0xFF

	tests := []struct {
		name      string
		src       []byte
		dst       []byte
		identical bool
	}{
		{name: "identical small files", src: []byte("same"), dst: []byte("same"), identical: true},
		{name: "different sizes", src: []byte("short"), dst: []byte("rather longer"), identical: false},
		{name: "same size different contents", src: []byte("aaaa"), dst: []byte("aaab"), identical: false},
		{name: "both empty", src: []byte{}, dst: []byte{}, identical: true},
		{name: "multi-chunk identical", src: longA, dst: longA, identical: true},
		{name: "multi-chunk late mismatch", src: longA, dst: longB, identical: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			g := NewWithT(t)

			dir := t.TempDir()
			srcPath := filepath.Join(dir, "src.bin")
			dstPath := filepath.Join(dir, "dst.bin")

			g.Expect(os.WriteFile(srcPath, test.src, 0o644)).To(Succeed())
			g.Expect(os.WriteFile(dstPath, test.dst, 0o644)).To(Succeed())

			identical, err := newLocalOps().CompareFiles(srcPath, dstPath)

			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(identical).To(Equal(test.identical))
		})
	}
}

func TestCompareFilesMissingFileFails(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.txt")

	g.Expect(os.WriteFile(srcPath, []byte("content"), 0o644)).To(Succeed())

	_, err := newLocalOps().CompareFiles(srcPath, filepath.Join(dir, "missing.txt"))

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("for comparison"))
}
