package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relnote-dev/relnote/internal/config"
	clierrors "github.com/relnote-dev/relnote/internal/errors"
	"github.com/relnote-dev/relnote/internal/output"
)

var initForceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter project config",
	Long: `Create .relnote/config.yml with a fully commented starter template.

The template documents every option with its default value. Edit the
packages list afterwards; generation refuses to run with none configured.`,
	Example: `  # Create .relnote/config.yml in the current directory
  relnote init

  # Replace an existing config with a fresh template
  relnote init --force`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInit,
}

func init() {
	initCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	if _, err := os.Stat(path); err == nil && !initForceFlag {
		return clierrors.ConfigAlreadyExists(path)
	}

	if err := os.MkdirAll(config.ProjectConfigDir(), 0o755); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	out := cmd.OutOrStdout()
	output.PrintSuccess(out, "created "+path)
	fmt.Fprintln(out, "Add your packages under the 'packages' key, then run: relnote generate")
	return nil
}
