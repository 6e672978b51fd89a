package watch

import (
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// artifactSuffix marks compiler output; artifacts never trigger a compile.
const artifactSuffix = ".compiled.css"

// Filter decides which paths are trigger-worthy source changes.
//
// Two-layer filtering:
//  1. Pattern check (fast): CSS files only, excluding build artifacts and
//     source maps. Partials are trigger-worthy — editing one recompiles the
//     entry that imports it.
//  2. Gitignore check: paths matched by the project .gitignore never
//     trigger. Gracefully degrades when no .gitignore exists.
type Filter struct {
	dir string
	gi  *ignore.GitIgnore
}

// NewFilter builds the filter for a working directory, loading its
// .gitignore if present.
func NewFilter(dir string) *Filter {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		// No .gitignore is fine
		gi = nil
	}
	return &Filter{dir: dir, gi: gi}
}

// TriggerWorthy reports whether a change to path should cause a compile.
func (f *Filter) TriggerWorthy(path string) bool {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".css") {
		return false
	}
	if strings.HasSuffix(base, artifactSuffix) {
		return false
	}
	return !f.Ignored(path)
}

// Ignored reports whether path is excluded by the project .gitignore.
func (f *Filter) Ignored(path string) bool {
	if f.gi == nil {
		return false
	}
	rel, err := filepath.Rel(f.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return f.gi.MatchesPath(rel)
}
