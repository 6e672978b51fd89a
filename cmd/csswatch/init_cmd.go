package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csswatch.yaml config file",
	Long:  `Create a .csswatch.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".csswatch.yaml"); err == nil && !force {
			return fmt.Errorf(".csswatch.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".csswatch.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .csswatch.yaml")
		return nil
	},
}

const defaultConfig = `# csswatch configuration
# Docs: https://github.com/yacobolo/csswatch

# Shared settings
verbose: false
color: false

# Watch/compile settings
run:
  watch: true
  minify: true
  sourcemap: false
  out-dir: .
  # targets: ">= 0.25%"    # overrides BROWSER_TARGETS
  # backend: fsnotify      # watchman | fswatch | fsnotify | poll
  settle: 50ms             # notification backend debounce window
  poll-interval: 1s        # polling backend tick
  debug: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
