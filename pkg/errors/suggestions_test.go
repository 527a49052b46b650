package errors_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/joe/backup-files/pkg/errors"
)

func TestSuggestionsIncludePathWhenKnown(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	generator := errors.NewSuggestionGenerator()

	suggestions := generator.Generate(errors.CategoryPermission, "/mnt/backup/file.txt")

	g.Expect(suggestions).NotTo(BeEmpty())
	g.Expect(suggestions).To(ContainElement(ContainSubstring("/mnt/backup/file.txt")))
}

func TestSuggestionsWithoutPathStayGeneric(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	generator := errors.NewSuggestionGenerator()

	for _, category := range []errors.ErrorCategory{
		errors.CategoryPermission,
		errors.CategoryDiskSpace,
		errors.CategoryPath,
		errors.CategoryListing,
		errors.CategoryCopy,
		errors.CategoryUnknown,
	} {
		suggestions := generator.Generate(category, "")

		g.Expect(suggestions).NotTo(BeEmpty(), "category %s", category)
	}
}

func TestListingSuggestionsExplainSkip(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	suggestions := errors.NewSuggestionGenerator().Generate(errors.CategoryListing, "/home/user/docs")

	g.Expect(suggestions[0]).To(ContainSubstring("subtree was skipped"))
}
