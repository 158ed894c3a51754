package changelog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/relnote-dev/relnote/internal/git"
)

// PackageChangelog is one package's rendered changelog document.
type PackageChangelog struct {
	Package string
	Content string
}

// Options configures a Generator.
type Options struct {
	// TagPrefix is prepended to each package name when filtering release
	// tags, e.g. "@ant-design/" for packages tagged "@ant-design/pro-card@1.2.3".
	TagPrefix string

	// Matcher selects the commit convention; nil selects the loose matcher.
	Matcher Matcher

	// Timeout bounds each pull-request lookup. Zero disables the deadline.
	Timeout time.Duration

	// Warnings receives per-package skip notices; nil discards them.
	Warnings io.Writer

	// OnPackage is invoked before each package is processed. Nil-safe;
	// the CLI uses it to advance its progress display.
	OnPackage func(name string)
}

// Generator runs the changelog pipeline over a set of packages against one
// repository.
type Generator struct {
	repo     *git.Repository
	resolver *Resolver
	opts     Options
}

// NewGenerator wires the pipeline. repoURL is the repository's web URL,
// resolved once by the caller; lookup answers pull-request authorship.
func NewGenerator(repo *git.Repository, lookup PullLookup, repoURL string, opts Options) *Generator {
	if opts.Matcher == nil {
		opts.Matcher = LooseMatcher()
	}
	if opts.Warnings == nil {
		opts.Warnings = io.Discard
	}
	return &Generator{
		repo:     repo,
		resolver: NewResolver(lookup, repoURL, opts.Timeout),
		opts:     opts,
	}
}

// Latest generates one changelog per package covering only the newest
// release. Packages without release tags or whose window classified no
// commits are skipped with a notice; a changelog saying nothing helps nobody
// at announcement time.
func (g *Generator) Latest(ctx context.Context, packages []string) ([]PackageChangelog, error) {
	var docs []PackageChangelog
	for _, pkg := range packages {
		g.signal(pkg)

		window, err := g.repo.LatestWindow(g.opts.TagPrefix + pkg)
		if err != nil {
			if g.skipNoTags(pkg, err) {
				continue
			}
			return nil, err
		}

		entries, err := g.windowEntries(ctx, pkg, window)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			fmt.Fprintf(g.opts.Warnings, "skipping %s: no classified commits in %s\n", pkg, window.Tag.Name)
			continue
		}

		docs = append(docs, PackageChangelog{
			Package: pkg,
			Content: ComposeSection(window.Tag, entries),
		})
	}
	return docs, nil
}

// FullHistory generates one changelog per package covering every release
// window, newest release first, sections separated by a blank line. Windows
// without classified commits render the dependency-update placeholder.
func (g *Generator) FullHistory(ctx context.Context, packages []string) ([]PackageChangelog, error) {
	var docs []PackageChangelog
	for _, pkg := range packages {
		g.signal(pkg)

		windows, err := g.repo.AllWindows(g.opts.TagPrefix + pkg)
		if err != nil {
			if g.skipNoTags(pkg, err) {
				continue
			}
			return nil, err
		}
		if len(windows) == 0 {
			fmt.Fprintf(g.opts.Warnings, "skipping %s: only one release, no window to pair\n", pkg)
			continue
		}

		sections := make([]string, 0, len(windows))
		for _, window := range windows {
			entries, err := g.windowEntries(ctx, pkg, window)
			if err != nil {
				return nil, err
			}
			sections = append(sections, ComposeSection(window.Tag, entries))
		}

		docs = append(docs, PackageChangelog{
			Package: pkg,
			Content: JoinSections(sections),
		})
	}
	return docs, nil
}

// windowEntries walks one release window and renders its classified commits.
// Walk failures carry the package and release so the operator can point git
// at the offending history.
func (g *Generator) windowEntries(ctx context.Context, pkg string, w git.ReleaseWindow) ([]string, error) {
	commits, err := g.repo.CommitsBetween(w)
	if err != nil {
		return nil, fmt.Errorf("package %s, release %s: %w", pkg, w.Tag.Name, err)
	}

	classified := NewClassifier(pkg, g.opts.Matcher).Classify(commits)
	entries := make([]string, 0, len(classified))
	for _, commit := range classified {
		entries = append(entries, g.resolver.Entry(ctx, commit))
	}
	return entries, nil
}

func (g *Generator) skipNoTags(pkg string, err error) bool {
	var noTags *git.NoTagsError
	if !errors.As(err, &noTags) {
		return false
	}
	fmt.Fprintf(g.opts.Warnings, "skipping %s: no release tags\n", pkg)
	return true
}

func (g *Generator) signal(pkg string) {
	if g.opts.OnPackage != nil {
		g.opts.OnPackage(pkg)
	}
}
