package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/relnote-dev/relnote/internal/git"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// pollLimit caps concurrent registry requests during a status sweep.
const pollLimit = 8

// Client queries an npm-compatible registry.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a registry client. An empty baseURL selects the public
// registry; timeout bounds each request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// versionDoc is the slice of the registry version document we decode.
type versionDoc struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Published reports whether the exact package version is visible on the
// registry. A non-200 response means not published; transport failures
// surface as errors.
func (c *Client) Published(ctx context.Context, name, version string) (bool, error) {
	doc, status, err := c.fetchDoc(ctx, fmt.Sprintf("%s/%s/%s", c.baseURL, name, version))
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, nil
	}
	return doc.Version == version, nil
}

// LatestVersion returns the version the registry currently serves under the
// latest dist-tag.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	url := fmt.Sprintf("%s/%s/latest", c.baseURL, name)
	doc, status, err := c.fetchDoc(ctx, url)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("registry returned %d for %s", status, url)
	}
	if doc.Version == "" {
		return "", fmt.Errorf("registry document for %s carries no version", name)
	}
	return doc.Version, nil
}

func (c *Client) fetchDoc(ctx context.Context, url string) (versionDoc, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return versionDoc{}, 0, fmt.Errorf("building registry request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return versionDoc{}, 0, fmt.Errorf("querying %s: %w", url, err)
	}
	defer resp.Body.Close()

	var doc versionDoc
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
			return versionDoc{}, resp.StatusCode, fmt.Errorf("decoding registry response from %s: %w", url, err)
		}
	}
	return doc, resp.StatusCode, nil
}

// Status is one package's publish state on the registry.
type Status struct {
	Package   PackageInfo
	Published bool
	Err       error
}

// PublishStatus checks every package's current version against the registry
// in parallel and returns statuses in input order. Lookup failures land in
// the per-package Err field; one flaky package must not hide the others.
func (c *Client) PublishStatus(ctx context.Context, pkgs []PackageInfo) []Status {
	statuses := make([]Status, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pollLimit)
	for i, pkg := range pkgs {
		g.Go(func() error {
			ok, err := c.Published(gctx, pkg.Name, pkg.Version)
			statuses[i] = Status{Package: pkg, Published: ok, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}

// LatestTargets resolves, in parallel, the version each package currently
// serves under the latest dist-tag. Lookup failures drop the entry; the
// transition display this feeds is advisory.
func (c *Client) LatestTargets(ctx context.Context, pkgs []PackageInfo) map[string]string {
	versions := make([]string, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pollLimit)
	for i, pkg := range pkgs {
		g.Go(func() error {
			if v, err := c.LatestVersion(gctx, pkg.Name); err == nil {
				versions[i] = v
			}
			return nil
		})
	}
	_ = g.Wait()

	targets := make(map[string]string, len(pkgs))
	for i, pkg := range pkgs {
		if versions[i] != "" {
			targets[pkg.Name] = versions[i]
		}
	}
	return targets
}

// AllPublished reports whether every status came back published.
func AllPublished(statuses []Status) bool {
	for _, s := range statuses {
		if s.Err != nil || !s.Published {
			return false
		}
	}
	return true
}

// PreviousReleaseTag returns the release tag preceding the package's newest
// one in the repository tag stream, or "" when the package has fewer than
// two parseable release tags.
func PreviousReleaseTag(tagNames []string, pkg PackageInfo) string {
	sorted := git.SortByVersion(tagNames, pkg.Name)
	if len(sorted) < 2 {
		return ""
	}
	return sorted[len(sorted)-2]
}
