package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relnote-dev/relnote/internal/config"
)

func TestGenerateCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "generate [path]", generateCmd.Use)
	assert.Equal(t, "generate", generateCmd.Name())
	assert.Contains(t, generateCmd.Aliases, "gen")
	assert.Equal(t, GroupRelease, generateCmd.GroupID)

	for _, flagName := range []string{"all", "output", "packages", "tag-prefix", "convention"} {
		assert.NotNil(t, generateCmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	assert.Equal(t, "a", generateCmd.Flags().Lookup("all").Shorthand)
	assert.Equal(t, "o", generateCmd.Flags().Lookup("output").Shorthand)
}

func TestApplyGenerateOverrides(t *testing.T) {
	// Not parallel: mutates the shared generateCmd flag set.

	cfg := &config.Configuration{
		Packages:   []string{"from-config"},
		TagPrefix:  "@config/",
		OutputDir:  ".changelogs",
		Convention: "loose",
	}

	require.NoError(t, generateCmd.Flags().Set("output", "docs/changelogs"))
	require.NoError(t, generateCmd.Flags().Set("packages", "pro-card,pro-table"))
	require.NoError(t, generateCmd.Flags().Set("convention", "strict"))

	applyGenerateOverrides(generateCmd, cfg)

	assert.Equal(t, "docs/changelogs", cfg.OutputDir)
	assert.Equal(t, []string{"pro-card", "pro-table"}, cfg.Packages)
	assert.Equal(t, "strict", cfg.Convention)
	// Untouched flags keep the config value.
	assert.Equal(t, "@config/", cfg.TagPrefix)
}

func TestPromoteCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "promote [path]", promoteCmd.Use)
	assert.Equal(t, "promote", promoteCmd.Name())
	assert.Equal(t, GroupRelease, promoteCmd.GroupID)

	for _, flagName := range []string{"registry", "dir", "yes"} {
		assert.NotNil(t, promoteCmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}
	assert.Equal(t, "y", promoteCmd.Flags().Lookup("yes").Shorthand)
}
