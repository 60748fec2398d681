package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldIgnore(t *testing.T) {
	m := NewMatcher([]string{
		"lost+found/",
		"$RECYCLE.BIN/",
		"System Volume Information/",
		"# comment",
		"",
		"*.tmp",
		"!keep.tmp",
	})

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"lost+found", true, true},
		{"lost+found/#12345", false, true},
		{"$RECYCLE.BIN", true, true},
		{"System Volume Information", true, true},
		{"System Volume Information/tracking.log", false, true},
		{"photos/lost+found", true, true},
		{"lost+found", false, false}, // a plain file with that name is kept
		{"photos/holiday.jpg", false, false},
		{"scratch.tmp", false, true},
		{"docs/draft.tmp", false, true},
		{"keep.tmp", false, false},
		{"", true, false},
		{".", true, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.ShouldIgnore(tt.path, tt.isDir), "path %q dir=%v", tt.path, tt.isDir)
	}
}

func TestNoPatterns_NeverIgnores(t *testing.T) {
	m := NewMatcher(nil)
	assert.False(t, m.ShouldIgnore("lost+found", true))

	m = NewMatcher([]string{"  ", "# only comments"})
	assert.False(t, m.ShouldIgnore("anything", false))
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c.txt"}, splitPath("./a//b/c.txt"))
	assert.Nil(t, splitPath(""))
}
