package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csswatch",
	Short: "Watch a directory and recompile its CSS entry file on change",
	Long: `csswatch compiles the single CSS entry file of the current directory with
lightningcss and keeps recompiling it as sources change.

Files named _*.css are partials: editing one recompiles the entry file
that imports it. Files named *.compiled.css are build artifacts and never
trigger or serve as an entry.`,
	Version: version,
	// Default behavior: run the watch pipeline when no subcommand is given.
	// loadConfig must be called here because PreRunE of runCmd is not
	// triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runRun(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".csswatch.yaml", "Config file path")

	// The watch flags also work on the bare root invocation
	addRunFlags(rootCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
