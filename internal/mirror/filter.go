package mirror

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobFilter limits which files a run examines by matching their base
// names against a glob pattern. Matching is case-insensitive; an empty
// pattern matches everything.
type GlobFilter struct {
	pattern string
}

// NewGlobFilter creates a filter for the given pattern, validating it
// up front so a bad pattern fails the run before the walk starts.
func NewGlobFilter(pattern string) (*GlobFilter, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	return &GlobFilter{pattern: strings.ToLower(pattern)}, nil
}

// Matches reports whether a file with the given base name should be
// examined.
func (f *GlobFilter) Matches(name string) bool {
	if f.pattern == "" {
		return true
	}

	// Pattern was validated at construction; Match cannot fail here.
	matched, _ := doublestar.Match(f.pattern, strings.ToLower(name))

	return matched
}

// Pattern returns the original (lowercased) pattern, empty when the
// filter matches everything.
func (f *GlobFilter) Pattern() string {
	return f.pattern
}
