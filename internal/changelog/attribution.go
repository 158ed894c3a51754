package changelog

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/relnote-dev/relnote/internal/git"
)

// prRefPattern finds the "(#123)" reference merge tooling appends to squashed
// pull-request subjects. The digit run may be empty; such a reference resolves
// nowhere and the entry falls back to the raw author name.
var prRefPattern = regexp.MustCompile(`\(#[0-9]*\)`)

// PullLookup is the single GitHub call attribution needs. *ghclient.Client
// satisfies it; tests substitute fakes.
type PullLookup interface {
	PullAuthor(ctx context.Context, number int) (string, error)
}

// Resolver turns classified commits into changelog entry bodies, resolving
// pull-request authors to hosting handles.
//
// Resolved handles are cached under the raw commit author string. Two hosting
// accounts sharing one git author name therefore collapse to whichever
// resolved first; authors repeat far more often than pull requests, and that
// key is what keeps a several-hundred-commit run at a handful of API calls.
type Resolver struct {
	lookup  PullLookup
	repoURL string
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]string
}

// NewResolver builds a resolver writing links relative to repoURL, the
// repository's web URL without a trailing slash. A zero timeout disables the
// per-lookup deadline.
func NewResolver(lookup PullLookup, repoURL string, timeout time.Duration) *Resolver {
	return &Resolver{
		lookup:  lookup,
		repoURL: strings.TrimSuffix(repoURL, "/"),
		timeout: timeout,
		cache:   make(map[string]string),
	}
}

// Entry renders the bullet body for one classified commit.
//
// Commits carrying a pull-request reference and an author produce
//
//	<subject>. [#N](<repo>/pull/N) [@handle](https://github.com/handle)
//
// and everything else links the commit itself by its short hash:
//
//	<subject>. [<short>](<repo>/commit/<short>)
//
// Lookup failures never fail the entry; the raw author stands in for the
// handle.
func (r *Resolver) Entry(ctx context.Context, c git.Commit) string {
	ref := prRefPattern.FindString(c.Subject)
	if ref == "" || c.Author == "" {
		return r.commitEntry(c)
	}

	number := strings.Trim(ref, "()#")
	handle := r.resolveHandle(ctx, c.Author, number)
	return fmt.Sprintf("%s. [#%s](%s/pull/%s) [@%s](https://github.com/%s)",
		c.Subject, number, r.repoURL, number, handle, handle)
}

func (r *Resolver) commitEntry(c git.Commit) string {
	short := c.ShortHash()
	return fmt.Sprintf("%s. [%s](%s/commit/%s)", c.Subject, short, r.repoURL, short)
}

// resolveHandle returns the hosting handle for a commit author, consulting
// the cache before the API and degrading to the raw author string when the
// reference is unusable or the lookup fails.
func (r *Resolver) resolveHandle(ctx context.Context, author, number string) string {
	r.mu.Lock()
	handle, ok := r.cache[author]
	r.mu.Unlock()
	if ok {
		return handle
	}

	n, err := strconv.Atoi(number)
	if err != nil {
		return author
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	login, err := r.lookup.PullAuthor(ctx, n)
	if err != nil {
		return author
	}

	r.mu.Lock()
	r.cache[author] = login
	r.mu.Unlock()
	return login
}
