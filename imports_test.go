package csswatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImports(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "double quoted",
			content:  `@import "_base.css";`,
			expected: []string{"_base.css"},
		},
		{
			name:     "single quoted",
			content:  `@import '_mixins.css';`,
			expected: []string{"_mixins.css"},
		},
		{
			name:     "url form",
			content:  `@import url("_tokens.css");`,
			expected: []string{"_tokens.css"},
		},
		{
			name: "multiple imports in order",
			content: `@import "_base.css";
@import "_components.css";
.btn { color: red; }`,
			expected: []string{"_base.css", "_components.css"},
		},
		{
			name:     "import with media query",
			content:  `@import "_print.css" print;`,
			expected: []string{"_print.css"},
		},
		{
			name:     "no imports",
			content:  `.btn { color: red; }`,
			expected: nil,
		},
		{
			name:     "string outside import is not collected",
			content:  `.btn { content: "@import fake"; font-family: "Inter"; }`,
			expected: nil,
		},
		{
			name:     "other at-rules ignored",
			content:  `@media (min-width: 600px) { .btn { color: red; } }`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseImports(tt.content))
		})
	}
}

func TestImportedPartials(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "app.css")
	content := "@import \"_base.css\";\n@import url(_theme.css);\nbody { margin: 0; }\n"
	require.NoError(t, os.WriteFile(entry, []byte(content), 0644))

	imports, err := ImportedPartials(entry)
	require.NoError(t, err)
	assert.Equal(t, []string{"_base.css", "_theme.css"}, imports)
}

func TestImportedPartialsMissingFile(t *testing.T) {
	_, err := ImportedPartials(filepath.Join(t.TempDir(), "missing.css"))
	require.Error(t, err)
}
