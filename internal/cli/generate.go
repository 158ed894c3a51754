package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relnote-dev/relnote/internal/changelog"
	"github.com/relnote-dev/relnote/internal/config"
	"github.com/relnote-dev/relnote/internal/docset"
	clierrors "github.com/relnote-dev/relnote/internal/errors"
	"github.com/relnote-dev/relnote/internal/ghclient"
	"github.com/relnote-dev/relnote/internal/git"
	"github.com/relnote-dev/relnote/internal/output"
	"github.com/relnote-dev/relnote/internal/progress"
)

var (
	generateAllFlag        bool
	generateOutputFlag     string
	generatePackagesFlag   []string
	generateTagPrefixFlag  string
	generateConventionFlag string
)

var generateCmd = &cobra.Command{
	Use:     "generate [path]",
	Aliases: []string{"gen"},
	Short:   "Generate per-package changelogs from release tags",
	Long: `Generate one markdown changelog per configured package.

For each package the release tags "<tag_prefix><package>@<version>" are
collected and the commits between consecutive releases are classified by
their conventional subjects (fix/feat with a matching scope). Entries link
the pull request and its submitter when a "(#123)" reference resolves
through the GitHub API, and fall back to a commit link otherwise.

By default only the latest release is rendered. With --all the complete
release history is rebuilt, newest release first; releases without
classified commits get a "Dependency updates only" placeholder.

Packages without release tags are skipped with a warning, never an error,
so one unreleased package does not block the rest of the run.

The optional path argument selects the repository to mine; it defaults to
the current directory.

GITHUB_TOKEN must be set; authorship lookups go through the GitHub API.`,
	Example: `  # Latest release for every configured package
  relnote generate

  # Full history, scoped tags like @acme/pro-card@1.2.3
  relnote generate --all --tag-prefix "@acme/"

  # One-off run for selected packages in another checkout
  relnote generate ../pro-components --packages pro-card,pro-table`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	generateCmd.GroupID = GroupRelease
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVarP(&generateAllFlag, "all", "a", false, "Rebuild the full changelog history instead of the latest release")
	generateCmd.Flags().StringVarP(&generateOutputFlag, "output", "o", "", "Directory to write changelogs to (overrides config)")
	generateCmd.Flags().StringSliceVar(&generatePackagesFlag, "packages", nil, "Packages to generate for (overrides config)")
	generateCmd.Flags().StringVar(&generateTagPrefixFlag, "tag-prefix", "", "Release tag prefix, e.g. \"@acme/\" (overrides config)")
	generateCmd.Flags().StringVar(&generateConventionFlag, "convention", "", "Commit matcher: loose or strict (overrides config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return clierrors.ConfigLoadError(err)
	}
	applyGenerateOverrides(cmd, cfg)

	if len(cfg.Packages) == 0 {
		return clierrors.NoPackagesConfigured()
	}

	// Config values pass oneof validation at load time, so an unknown
	// convention can only arrive through the flag.
	matcher, err := changelog.MatcherFor(cfg.Convention)
	if err != nil {
		return clierrors.NewArgumentErrorWithUsage(err.Error(),
			"relnote generate --convention <loose|strict>",
			"loose matches any type(scope) subject, strict only fix and feat")
	}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return clierrors.MissingGitHubToken()
	}

	repoPath := ""
	if len(args) > 0 {
		repoPath = args[0]
	}
	repo, err := git.Open(repoPath)
	if err != nil {
		return clierrors.NotARepository(err)
	}

	slug, err := repo.OriginSlug()
	if err != nil {
		return clierrors.MissingOriginRemote(err)
	}

	ctx := cmd.Context()
	gh, err := ghclient.New(ctx, token, slug)
	if err != nil {
		return clierrors.MissingOriginRemote(err)
	}

	repoURL, err := gh.RepoHTMLURL(ctx)
	if err != nil {
		return clierrors.GitHubLookupError(err)
	}

	out := cmd.OutOrStdout()
	spin := progress.NewSpinner(out, progress.DetectTerminalCapabilities())

	gen := changelog.NewGenerator(repo, gh, repoURL, changelog.Options{
		TagPrefix: cfg.TagPrefix,
		Matcher:   matcher,
		Timeout:   cfg.LookupTimeout(),
		Warnings:  cmd.ErrOrStderr(),
		OnPackage: func(pkg string) { spin.Update("mining " + pkg) },
	})

	output.PrintPhaseHeader(out, 1, 2, "Mining release history")
	spin.Start("mining release history")

	var docs []changelog.PackageChangelog
	if generateAllFlag {
		docs, err = gen.FullHistory(ctx, cfg.Packages)
	} else {
		docs, err = gen.Latest(ctx, cfg.Packages)
	}
	if err != nil {
		spin.Fail("changelog generation failed")
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	spin.Succeed(fmt.Sprintf("mined %d of %d package(s)", len(docs), len(cfg.Packages)))

	output.PrintPhaseHeader(out, 2, 2, "Writing changelogs")
	paths, err := docset.NewWriter(cfg.OutputDir).Write(docs)
	if err != nil {
		return clierrors.OutputDirNotWritable(cfg.OutputDir, err)
	}

	// Every package skipped means nothing matched the configured tags. The
	// per-package warnings already explain why, so only the code travels up.
	if len(paths) == 0 {
		fmt.Fprintln(out, "No changelogs to write; see the warnings above.")
		return NewExitError(ExitMissingPrerequisites)
	}

	for _, path := range paths {
		output.PrintSuccess(out, "wrote "+path)
	}
	fmt.Fprintf(out, "\nGenerated %d changelog(s) in %s\n", len(paths), cfg.OutputDir)
	return nil
}

func applyGenerateOverrides(cmd *cobra.Command, cfg *config.Configuration) {
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = generateOutputFlag
	}
	if cmd.Flags().Changed("packages") {
		cfg.Packages = generatePackagesFlag
	}
	if cmd.Flags().Changed("tag-prefix") {
		cfg.TagPrefix = generateTagPrefixFlag
	}
	if cmd.Flags().Changed("convention") {
		cfg.Convention = generateConventionFlag
	}
}
