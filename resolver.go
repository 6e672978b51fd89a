package csswatch

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ArtifactSuffix marks previously compiled output. Output files always carry
// this suffix, which keeps them out of the entry-file predicate and prevents
// recompile loops when the output directory is inside the watched directory.
const ArtifactSuffix = ".compiled.css"

// ErrNoEntry is returned by Resolve when the working directory contains no
// eligible entry file. It is a project-state condition, not transient; the
// caller reports it without retrying.
var ErrNoEntry = errors.New("no eligible CSS entry file found")

// IsPartial reports whether path names a partial: a CSS file whose basename
// starts with "_". Partials are imported by the entry file and are never
// compiled directly.
func IsPartial(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, "_") && strings.HasSuffix(base, ".css")
}

// IsArtifact reports whether path names a build artifact (*.compiled.css).
func IsArtifact(path string) bool {
	return strings.HasSuffix(filepath.Base(path), ArtifactSuffix)
}

// isEntryCandidate reports whether path names a CSS file that may serve as a
// compilation entry point.
func isEntryCandidate(path string) bool {
	return strings.HasSuffix(path, ".css") && !IsPartial(path) && !IsArtifact(path)
}

// Resolver determines the single compilation entry file for a working
// directory. Ignore, when set, excludes additional paths from the directory
// scan (the CLI wires the project .gitignore here).
type Resolver struct {
	Dir    string
	Ignore func(path string) bool
}

// Resolve returns the entry file for a change to changedPath. When
// changedPath itself is an eligible entry it is returned directly, skipping
// the directory scan on every save. When it is empty, a partial, or an
// artifact, the directory's immediate children are scanned in sorted order
// and the first eligible file wins. Editing a partial therefore still
// recompiles the unchanged entry that imports it.
func (r *Resolver) Resolve(changedPath string) (string, error) {
	if changedPath != "" && isEntryCandidate(changedPath) && !r.ignored(changedPath) {
		return changedPath, nil
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(r.Dir, "*.css"))
	if err != nil {
		return "", err
	}
	sort.Strings(matches)

	for _, m := range matches {
		if isEntryCandidate(m) && !r.ignored(m) {
			return m, nil
		}
	}
	return "", ErrNoEntry
}

func (r *Resolver) ignored(path string) bool {
	return r.Ignore != nil && r.Ignore(path)
}
