package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relnote-dev/relnote/internal/config"
	clierrors "github.com/relnote-dev/relnote/internal/errors"
	"github.com/relnote-dev/relnote/internal/git"
	"github.com/relnote-dev/relnote/internal/output"
	"github.com/relnote-dev/relnote/internal/progress"
	"github.com/relnote-dev/relnote/internal/registry"
)

var (
	promoteRegistryFlag string
	promoteDirFlag      string
	promoteYesFlag      bool
)

var promoteCmd = &cobra.Command{
	Use:   "promote [path]",
	Short: "Promote published packages to the latest dist-tag",
	Long: `Promote every workspace package's current version to the "latest"
dist-tag on the npm registry.

The workspace packages directory is scanned for package.json manifests, the
registry is polled in parallel for each name@version pair, and promotion
only proceeds once every package is published. Dist-tag writes then run one
package at a time with an OTP prompt, since accounts with 2FA need a fresh
one-time password per write. Use --yes to skip the prompts entirely.

The optional path argument selects the workspace root; it defaults to the
current directory.

Nothing is published by this command; it only moves the latest pointer.`,
	Example: `  # Check registry state and promote when everything is published
  relnote promote

  # Private registry, no OTP prompts
  relnote promote --registry https://npm.internal.acme.dev --yes`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runPromote,
}

func init() {
	promoteCmd.GroupID = GroupRelease
	rootCmd.AddCommand(promoteCmd)

	promoteCmd.Flags().StringVar(&promoteRegistryFlag, "registry", "", "npm registry base URL (overrides config)")
	promoteCmd.Flags().StringVar(&promoteDirFlag, "dir", "", "Workspace packages directory (overrides config)")
	promoteCmd.Flags().BoolVarP(&promoteYesFlag, "yes", "y", false, "Skip the OTP prompts (use when 2FA is not enforced)")
}

func runPromote(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return clierrors.ConfigLoadError(err)
	}
	if cmd.Flags().Changed("registry") {
		cfg.RegistryURL = promoteRegistryFlag
	}
	if cmd.Flags().Changed("dir") {
		cfg.PackagesDir = promoteDirFlag
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	pkgs, err := registry.DiscoverPackages(root, cfg.PackagesDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return clierrors.PackagesDirNotFound(filepath.Join(root, cfg.PackagesDir))
		}
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if len(pkgs) == 0 {
		return clierrors.NewPrerequisiteError(
			fmt.Sprintf("no publishable packages found in %s", cfg.PackagesDir),
			"Each package needs a package.json with a name and version",
			"Point packages_dir at the workspace directory holding them",
		)
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	registryURL := cfg.RegistryURL
	if registryURL == "" {
		registryURL = registry.DefaultBaseURL
	}
	client := registry.NewClient(registryURL, cfg.LookupTimeout())

	output.PrintPhaseHeader(out, 1, 2, "Checking registry")
	spin := progress.NewSpinner(out, progress.DetectTerminalCapabilities())
	spin.Start(fmt.Sprintf("polling %d package(s)", len(pkgs)))
	statuses := client.PublishStatus(ctx, pkgs)
	spin.Stop()

	previous := previousReleaseTags(root, pkgs)

	missing := 0
	errored := 0
	var pollErr error
	for _, st := range statuses {
		label := st.Package.Spec()
		switch {
		case st.Err != nil:
			missing++
			errored++
			if pollErr == nil {
				pollErr = st.Err
			}
			output.PrintFailure(out, fmt.Sprintf("%s: %v", label, st.Err))
		case st.Published:
			if prev := previous[st.Package.Name]; prev != "" {
				label += fmt.Sprintf(" (previous release %s)", prev)
			}
			output.PrintSuccess(out, label+" published")
		default:
			missing++
			output.PrintFailure(out, label+" not published")
		}
	}

	// Every lookup failing means the registry is down, not that the
	// packages are unpublished.
	if errored == len(statuses) {
		return clierrors.RegistryUnreachable(registryURL, pollErr)
	}
	if !registry.AllPublished(statuses) {
		return clierrors.PackagesNotPublished(missing)
	}

	output.PrintPhaseHeader(out, 2, 2, "Promoting dist-tags")
	targets := client.LatestTargets(ctx, pkgs)
	for _, pkg := range pkgs {
		if current, ok := targets[pkg.Name]; ok && current != pkg.Version {
			fmt.Fprintf(out, "  %s: latest %s → %s\n", pkg.Name, current, pkg.Version)
		}
	}

	var prompt registry.OTPPrompt
	if !promoteYesFlag {
		prompt = registry.TerminalOTPPrompt(os.Stdin, out)
	}
	promoter := registry.NewPromoter(root, out, prompt)
	promoter.Registry = registryURL

	if err := promoter.Promote(ctx, pkgs); err != nil {
		output.PrintCommandOutputEnd(out)
		return clierrors.Wrap(err, clierrors.Runtime,
			"Fix the npm failure above and re-run promote; already promoted packages keep their tag")
	}
	output.PrintCommandOutputEnd(out)

	output.PrintSuccess(out, fmt.Sprintf("promoted %d package(s) to latest", len(pkgs)))
	return nil
}

// previousReleaseTags maps package names to the release tag preceding their
// newest one. Promotion works without a repository, so failures here just
// drop the extra context from the status lines.
func previousReleaseTags(root string, pkgs []registry.PackageInfo) map[string]string {
	repo, err := git.Open(root)
	if err != nil {
		return nil
	}
	names, err := repo.TagNames()
	if err != nil {
		return nil
	}

	previous := make(map[string]string, len(pkgs))
	for _, pkg := range pkgs {
		if prev := registry.PreviousReleaseTag(names, pkg); prev != "" {
			previous[pkg.Name] = prev
		}
	}
	return previous
}
