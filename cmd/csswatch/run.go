package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/csswatch"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compile once and watch for changes",
	Long: `Compile the directory's CSS entry file, then keep watching for source
changes and recompiling. Use --no-watch for a single compile.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRun,
}

func init() {
	addRunFlags(runCmd.Flags())
}

// addRunFlags registers the watch/compile flags. The same set is installed
// on the root command so `csswatch -m` and `csswatch run -m` behave alike.
func addRunFlags(f *pflag.FlagSet) {
	f.BoolP("watch", "w", true, "Watch for changes after the initial compile")
	f.Bool("no-watch", false, "Compile once and exit")
	f.BoolP("minify", "m", true, "Minify compiled output")
	f.Bool("no-minify", false, "Disable minification")
	f.BoolP("sourcemap", "s", false, "Emit inline source maps")
	f.BoolP("debug", "d", false, "Echo the compiler command line before each invocation")
	f.String("out-dir", ".", "Output directory for compiled artifacts")
	f.String("targets", "", "Browser targets expression (default from BROWSER_TARGETS or \""+csswatch.DefaultBrowserTargets+"\")")
	f.String("backend", "", "Force a watch backend: watchman|fswatch|fsnotify|poll")
	f.Duration("settle", 0, "Debounce window for notification backends (default 50ms)")
	f.Duration("poll-interval", 0, "Polling backend tick interval (default 1s)")
}

func runRun(cmd *cobra.Command, _ []string) error {
	orch := buildOrchestrator()
	return orch.Run(cmd.Context())
}
