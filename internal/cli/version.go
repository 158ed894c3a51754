package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/relnote-dev/relnote/internal/version"
)

var versionPlainFlag bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for relnote",
	Example: `  # Show version info
  relnote version

  # Plain output (for scripts)
  relnote version --plain`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlainFlag {
			printPlainVersion(cmd)
			return
		}
		printPrettyVersion(cmd)
	},
}

func init() {
	versionCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionPlainFlag, "plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "relnote %s\n", version.Version)
	fmt.Fprintf(out, "commit: %s\n", version.Commit)
	fmt.Fprintf(out, "built: %s\n", version.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints a styled version output
func printPrettyVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()

	release := white(version.Version)
	if version.IsDevBuild() {
		release += " " + yellow("(dev build)")
	}
	fmt.Fprintf(out, "\n%s %s\n\n", cyan("relnote"), release)

	info := []struct {
		label string
		value string
	}{
		{"Commit", truncateCommit(version.Commit)},
		{"Built", version.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}
	for _, item := range info {
		fmt.Fprintf(out, "  %s  %s\n", yellow(fmt.Sprintf("%-8s", item.label)), item.value)
	}
	fmt.Fprintln(out)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

// SourceURL is the project source URL
const SourceURL = "https://github.com/relnote-dev/relnote"

var sauceCmd = &cobra.Command{
	Use:   "sauce",
	Short: "Display the source URL",
	Long:  "Display the source URL for the relnote project",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(SourceURL)
	},
}

func init() {
	sauceCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(sauceCmd)
}
