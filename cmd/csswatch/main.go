// Package main provides the csswatch CLI: compile a directory's CSS entry
// file with lightningcss and recompile on change.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

// exitMessage formats a fatal error with a usage hint. Usage itself stays
// suppressed (SilenceUsage) to keep error output short.
func exitMessage(err error) string {
	return fmt.Sprintf("csswatch: %v\nRun 'csswatch --help' for usage.", err)
}
