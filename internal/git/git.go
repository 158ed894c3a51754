// Package git provides the repository-facing layer of relnote: tag
// enumeration and version ordering, release-window resolution between
// consecutive tags, and commit walking inside a window. It uses the go-git
// library exclusively, so no git CLI installation is required.
package git

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository wraps an open go-git repository. It is opened once per run and
// shared by the tag, range and walker operations.
type Repository struct {
	repo *git.Repository
}

// Open opens the git repository at the specified path or, if path is empty,
// at the current working directory. DetectDotGit is enabled so invocations
// from a subdirectory resolve to the enclosing repository root.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repository{repo: repo}, nil
}

// Root returns the absolute path of the repository worktree root.
func (r *Repository) Root() (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// OriginSlug returns the "owner/name" slug of the origin remote.
func (r *Repository) OriginSlug() (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("looking up origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL configured")
	}

	slug, err := ParseRemoteSlug(urls[0])
	if err != nil {
		return "", err
	}

	logDebug("[git] OriginSlug: %s", slug)
	return slug, nil
}

// ParseRemoteSlug extracts the "owner/name" slug from a remote URL.
// Handles SCP-style SSH URLs (git@host:owner/name.git) as well as
// scheme URLs (https://, ssh://, git+ssh://).
func ParseRemoteSlug(remoteURL string) (string, error) {
	var path string

	switch {
	case strings.HasPrefix(remoteURL, "git@"):
		idx := strings.Index(remoteURL, ":")
		if idx < 0 {
			return "", fmt.Errorf("malformed SSH remote URL %q", remoteURL)
		}
		path = remoteURL[idx+1:]
	case strings.Contains(remoteURL, "://"):
		u, err := url.Parse(remoteURL)
		if err != nil {
			return "", fmt.Errorf("parsing remote URL %q: %w", remoteURL, err)
		}
		path = u.Path
	default:
		return "", fmt.Errorf("unrecognized remote URL %q", remoteURL)
	}

	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")
	if strings.Count(path, "/") != 1 {
		return "", fmt.Errorf("remote URL %q does not point at an owner/name repository", remoteURL)
	}

	return path, nil
}
