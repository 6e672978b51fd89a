package csswatch

import "os"

// DefaultBrowserTargets is the browserslist query passed to the compiler
// when neither the --targets flag nor BROWSER_TARGETS is set.
const DefaultBrowserTargets = ">= 0.25%"

// CompileOptions holds the per-process compilation settings. It is built
// once from the parsed CLI configuration and read-only afterwards.
type CompileOptions struct {
	Bundle          bool   // always true; kept explicit for the argv assembly
	Minify          bool
	SourceMapInline bool
	BrowserTargets  string // browserslist query, e.g. ">= 0.25%"
}

// DefaultOptions returns the options used when no flags are given:
// bundling and minification on, source maps off, targets from
// BROWSER_TARGETS or the built-in default.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		Bundle:         true,
		Minify:         true,
		BrowserTargets: TargetsFromEnv(),
	}
}

// TargetsFromEnv resolves the browser targets expression from the
// BROWSER_TARGETS environment variable, falling back to the default.
func TargetsFromEnv() string {
	if t := os.Getenv("BROWSER_TARGETS"); t != "" {
		return t
	}
	return DefaultBrowserTargets
}
