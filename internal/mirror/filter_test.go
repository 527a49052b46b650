package mirror_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/joe/backup-files/internal/mirror"
)

func TestGlobFilterMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		file    string
		want    bool
	}{
		{name: "empty pattern matches everything", pattern: "", file: "anything.bin", want: true},
		{name: "extension match", pattern: "*.txt", file: "notes.txt", want: true},
		{name: "extension mismatch", pattern: "*.txt", file: "photo.jpg", want: false},
		{name: "case-insensitive pattern", pattern: "*.TXT", file: "notes.txt", want: true},
		{name: "case-insensitive name", pattern: "*.txt", file: "NOTES.TXT", want: true},
		{name: "brace alternatives", pattern: "*.{jpg,png}", file: "photo.png", want: true},
		{name: "question mark", pattern: "report-?.csv", file: "report-7.csv", want: true},
		{name: "prefix", pattern: "inv*", file: "invoice.pdf", want: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			g := NewWithT(t)

			filter, err := mirror.NewGlobFilter(test.pattern)
			g.Expect(err).NotTo(HaveOccurred())

			g.Expect(filter.Matches(test.file)).To(Equal(test.want))
		})
	}
}

func TestGlobFilterRejectsBadPattern(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	_, err := mirror.NewGlobFilter("[unclosed")

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("invalid filter pattern"))
}
