package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownFlagFailsWithUsageHint(t *testing.T) {
	rootCmd.SetArgs([]string{"--definitely-not-a-flag"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")

	msg := exitMessage(err)
	assert.Contains(t, msg, "unknown flag")
	assert.Contains(t, msg, "csswatch --help")
}

func TestExitMessageFormat(t *testing.T) {
	msg := exitMessage(assert.AnError)
	assert.Contains(t, msg, "csswatch: ")
	assert.Contains(t, msg, "Run 'csswatch --help' for usage.")
}
