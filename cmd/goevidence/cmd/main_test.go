package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	// Execute() calls os.Exit(1) on error, so the error path cannot be
	// exercised here. This is primarily a compile-time check.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	// cfgFile defaults via init()
	assert.Equal(t, "goevidence.yaml", cfgFile)
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFmt)
	assert.Equal(t, "", entities)
	assert.Equal(t, 0, limit)
	assert.Equal(t, 0, maxPairs)
}

func TestCLIOverrideStruct(t *testing.T) {
	overrides := CLIOverrides{
		LogLevel: "debug",
		LogFmt:   "json",
		Entities: "identifier,temporal",
		Limit:    100,
		MaxPairs: 4,
	}

	assert.Equal(t, "debug", overrides.LogLevel)
	assert.Equal(t, "json", overrides.LogFmt)
	assert.Equal(t, "identifier,temporal", overrides.Entities)
	assert.Equal(t, 100, overrides.Limit)
	assert.Equal(t, 4, overrides.MaxPairs)
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"extract": false, "batch": false, "verify": false, "version": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "%s command should be added to root command", name)
	}
}
