package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "version", versionCmd.Use)
	assert.Contains(t, versionCmd.Aliases, "v")
	assert.NotNil(t, versionCmd.Flags().Lookup("plain"))
}

func TestVersionCmd_PlainOutput(t *testing.T) {
	// Not parallel: writes through the shared versionCmd output.

	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	printPlainVersion(versionCmd)

	out := buf.String()
	assert.Contains(t, out, "relnote ")
	assert.Contains(t, out, "commit: ")
	assert.Contains(t, out, "go: go1.")
	assert.Contains(t, out, "platform: ")
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"full hash": {
			commit: "0123456789abcdef",
			want:   "01234567",
		},
		"short value": {
			commit: "unknown",
			want:   "unknown",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}

func TestSauceCmdRegistration(t *testing.T) {
	t.Parallel()

	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "sauce" {
			found = true
			break
		}
	}
	assert.True(t, found, "sauce command should be registered - did someone spill the sauce?")
}

func TestSauceCmdOutput(t *testing.T) {
	// Not parallel: writes through the shared sauceCmd output.

	var buf bytes.Buffer
	sauceCmd.SetOut(&buf)
	defer sauceCmd.SetOut(nil)

	sauceCmd.Run(sauceCmd, []string{})

	assert.Equal(t, SourceURL+"\n", buf.String())
}

func TestSourceURLConstant(t *testing.T) {
	t.Parallel()

	assert.Contains(t, SourceURL, "github.com", "the sauce should point at GitHub")
	assert.Contains(t, SourceURL, "relnote", "the sauce lost its main ingredient")
}
