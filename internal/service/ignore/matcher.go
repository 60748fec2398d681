package ignore

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher decides which paths of a volume listing to skip, using gitignore syntax.
type Matcher struct {
	matcher gitignore.Matcher
}

// NewMatcher compiles exclude patterns. Blank lines and '#' comments are skipped.
// With no usable patterns the matcher never excludes anything.
func NewMatcher(patterns []string) *Matcher {
	var parsed []gitignore.Pattern
	for _, line := range patterns {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parsed = append(parsed, gitignore.ParsePattern(line, nil))
	}
	if len(parsed) == 0 {
		return &Matcher{}
	}
	return &Matcher{matcher: gitignore.NewMatcher(parsed)}
}

// ShouldIgnore checks a path relative to the listing root.
func (m *Matcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	var segments []string
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
