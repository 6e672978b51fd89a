package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/csswatch"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".csswatch.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	if err := aliasConfigKeys(); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence — only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// flagConfigKeys maps each flat flag name to its config-file key in the
// run namespace.
var flagConfigKeys = map[string]string{
	"watch":         "run.watch",
	"no-watch":      "run.no-watch",
	"minify":        "run.minify",
	"no-minify":     "run.no-minify",
	"sourcemap":     "run.sourcemap",
	"debug":         "run.debug",
	"out-dir":       "run.out-dir",
	"targets":       "run.targets",
	"backend":       "run.backend",
	"settle":        "run.settle",
	"poll-interval": "run.poll-interval",
}

// aliasConfigKeys copies file/env values from the run namespace onto the
// flat flag keys before the posflag merge. The posflag provider only stores
// an unchanged flag's default when its key is absent from koanf, so seeding
// the flag keys here keeps the precedence flags > env > file > defaults: an
// explicitly set flag still overwrites, an unset one no longer buries the
// config file under its default.
func aliasConfigKeys() error {
	for flagKey, configKey := range flagConfigKeys {
		if !k.Exists(flagKey) && k.Exists(configKey) {
			if err := k.Set(flagKey, k.Get(configKey)); err != nil {
				return fmt.Errorf("aliasing config key %s: %w", configKey, err)
			}
		}
	}
	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a cobra
// command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSWATCH_* prefix)
	if err := k.Load(env.Provider("CSSWATCH_", ".", func(s string) string {
		// CSSWATCH_RUN_MINIFY -> run.minify
		// CSSWATCH_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSWATCH_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildOrchestrator constructs the pipeline configuration from koanf state.
func buildOrchestrator() *csswatch.Orchestrator {
	watchMode := getBoolWithFallback("watch", "run.watch", true) &&
		!getBoolWithFallback("no-watch", "run.no-watch", false)
	minify := getBoolWithFallback("minify", "run.minify", true) &&
		!getBoolWithFallback("no-minify", "run.no-minify", false)

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return &csswatch.Orchestrator{
		Dir:    wd,
		OutDir: getStringWithFallback("out-dir", "run.out-dir", "."),
		Options: csswatch.CompileOptions{
			Bundle:          true,
			Minify:          minify,
			SourceMapInline: getBoolWithFallback("sourcemap", "run.sourcemap", false),
			BrowserTargets:  resolveTargets(),
		},
		Watch:        watchMode,
		Backend:      getStringWithFallback("backend", "run.backend", ""),
		Settle:       getDurationWithFallback("settle", "run.settle", 0),
		PollInterval: getDurationWithFallback("poll-interval", "run.poll-interval", 0),
		Debug:        getBoolWithFallback("debug", "run.debug", false),
		Verbose:      getBoolWithFallback("verbose", "verbose", false),
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		UseColors:    csswatch.ShouldUseColors(getBoolWithFallback("color", "color", false)),
	}
}

// resolveTargets picks the browser targets expression: the --targets flag
// wins, then the BROWSER_TARGETS environment variable, then the default.
func resolveTargets() string {
	if v := getStringWithFallback("targets", "run.targets", ""); v != "" {
		return v
	}
	return csswatch.TargetsFromEnv()
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}
