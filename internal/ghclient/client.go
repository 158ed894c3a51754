// Package ghclient wraps the two GitHub REST API lookups relnote performs:
// pull-request authorship and repository metadata. All requests carry the
// configured access token.
package ghclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"
)

// Client is a GitHub API client scoped to a single repository.
type Client struct {
	owner string
	repo  string

	gh *github.Client
}

// New builds a client for the repository identified by slug ("owner/name"),
// authenticating every request with the given token.
func New(ctx context.Context, token, slug string) (*Client, error) {
	owner, repo, err := SplitSlug(slug)
	if err != nil {
		return nil, err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &Client{owner: owner, repo: repo, gh: github.NewClient(tc)}, nil
}

// SplitSlug splits an "owner/name" slug into its two parts.
func SplitSlug(slug string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("malformed repository slug %q, want owner/name", slug)
	}
	return owner, repo, nil
}

// SetBaseURL points the client at a different API endpoint. Tests use it to
// target a local httptest server.
func (c *Client) SetBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing base URL: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c.gh.BaseURL = u
	return nil
}

// PullAuthor returns the login of the user who opened the pull request.
func (c *Client) PullAuthor(ctx context.Context, number int) (string, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return "", fmt.Errorf("fetching pull request #%d: %w", number, err)
	}

	login := pr.GetUser().GetLogin()
	if login == "" {
		return "", fmt.Errorf("pull request #%d has no submitter login", number)
	}
	return login, nil
}

// RepoHTMLURL returns the repository's web URL, used as the base for commit
// and pull-request links in generated changelogs.
func (c *Client) RepoHTMLURL(ctx context.Context) (string, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, c.owner, c.repo)
	if err != nil {
		return "", fmt.Errorf("fetching repository %s/%s: %w", c.owner, c.repo, err)
	}

	htmlURL := repo.GetHTMLURL()
	if htmlURL == "" {
		return "", fmt.Errorf("repository %s/%s response carries no html_url", c.owner, c.repo)
	}
	return htmlURL, nil
}
