package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerWorthy(t *testing.T) {
	f := NewFilter(t.TempDir())

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"entry file", "styles.css", true},
		{"partial triggers too", "_base.css", true},
		{"build artifact", "styles.compiled.css", false},
		{"source map", "styles.css.map", false},
		{"non-css", "notes.txt", false},
		{"nested artifact", filepath.Join("dist", "app.compiled.css"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.TriggerWorthy(tt.path), "TriggerWorthy(%q)", tt.path)
		})
	}
}

func TestFilterGitignoreLayer(t *testing.T) {
	dir := t.TempDir()
	gitignore := "vendor/\nignored.css\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0644))

	f := NewFilter(dir)

	assert.True(t, f.TriggerWorthy(filepath.Join(dir, "styles.css")))
	assert.False(t, f.TriggerWorthy(filepath.Join(dir, "ignored.css")))
	assert.False(t, f.TriggerWorthy(filepath.Join(dir, "vendor", "lib.css")))

	assert.True(t, f.Ignored(filepath.Join(dir, "ignored.css")))
	assert.False(t, f.Ignored(filepath.Join(dir, "styles.css")))
}

func TestFilterWithoutGitignore(t *testing.T) {
	// No .gitignore degrades gracefully: nothing is ignored.
	f := NewFilter(t.TempDir())
	assert.False(t, f.Ignored("anything.css"))
	assert.True(t, f.TriggerWorthy("anything.css"))
}
