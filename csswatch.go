// Package csswatch watches a directory of CSS sources and recompiles the
// entry file on change, delegating the actual compilation to lightningcss.
//
// The pipeline is small and linear: a watch backend (watchman, fswatch,
// fsnotify, or polling, probed in that order) emits change events, a
// coordinator serializes them behind a non-reentrant guard, a resolver maps
// the changed path to the single compilation entry file, and an invoker runs
// the compiler subprocess and reports one status line per attempt.
//
// # Naming convention
//
// A CSS file whose basename starts with "_" is a partial and is never an
// entry point; a file matching *.compiled.css is a build artifact and is
// neither an entry point nor a trigger. Any other *.css file is an entry
// candidate.
//
// # Library use
//
//	orch := &csswatch.Orchestrator{
//		Dir:     ".",
//		OutDir:  "dist",
//		Options: csswatch.DefaultOptions(),
//		Watch:   true,
//	}
//	err := orch.Run(context.Background())
//
// # CLI
//
// csswatch also ships as a CLI. Install with:
//
//	go install github.com/yacobolo/csswatch/cmd/csswatch@latest
package csswatch
