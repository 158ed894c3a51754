// Package cli implements the relnote command-line interface.
package cli

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	clierrors "github.com/relnote-dev/relnote/internal/errors"
	"github.com/relnote-dev/relnote/internal/git"
)

// Command group IDs used to organize help output.
const (
	GroupGettingStarted = "getting-started"
	GroupRelease        = "release"
)

var (
	configFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "relnote",
	Short: "Per-package changelog generation for monorepos",
	Long: `relnote mines git history between release tags and writes one markdown
changelog per package, with pull-request authorship resolved through the
GitHub API. It also gates npm dist-tag promotion on registry state.

Release tags follow the "<package>@<version>" convention, optionally with a
scope prefix such as "@acme/pro-card@1.2.3". Commits are attributed to
packages through conventional subjects like "fix(pro-card): ...".

Source: https://github.com/relnote-dev/relnote`,
	Example: `  # Write the latest release's changelog for every configured package
  relnote generate

  # Rebuild the complete changelog history
  relnote generate --all

  # Promote published packages to the "latest" dist-tag
  relnote promote

  # Create a starter project config
  relnote init`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			git.SetDebugLogger(log.New(os.Stderr, "[debug] ", 0).Printf)
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to project config file (default: .relnote/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging")
}

// Execute runs the root command. Structured errors are printed with their
// remediation steps; the caller maps the returned error to an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	// Exit errors carry a code for CI composition; the command already
	// reported the details before returning one.
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(os.Stderr, cliErr)
		return err
	}
	clierrors.FprintError(os.Stderr, clierrors.Wrap(err, clierrors.Runtime))
	return err
}
