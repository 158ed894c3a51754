package git

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Commit is the slice of commit metadata the changelog pipeline consumes.
type Commit struct {
	Hash    string
	Subject string
	Author  string
	Time    time.Time
}

// ShortHash returns the abbreviated commit hash used in links and logs.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// WalkError reports a failure while walking a release window. It carries the
// hash of the commit being processed so callers can point at the offending
// history entry.
type WalkError struct {
	Hash string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("walking history at %s: %v", e.Hash, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// CommitsBetween walks the window from its start boundary back through
// history and returns the commits newest first. The end boundary is excluded
// unless it is a root commit; windows that reach the beginning of history
// must still report the root.
//
// The walk is ordered by committer time so repeated runs over the same
// window produce identical lists.
func (r *Repository) CommitsBetween(w ReleaseWindow) ([]Commit, error) {
	endIsRoot, err := r.isRootCommit(w.End)
	if err != nil {
		return nil, &WalkError{Hash: w.End.String(), Err: err}
	}

	iter, err := r.repo.Log(&git.LogOptions{
		From:  w.Start,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, &WalkError{Hash: w.Start.String(), Err: err}
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == w.End && !endIsRoot {
			return storer.ErrStop
		}
		commit, err := newCommit(c)
		if err != nil {
			return &WalkError{Hash: c.Hash.String(), Err: err}
		}
		commits = append(commits, commit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logDebug("[git] CommitsBetween(%s..%s): %d commits", w.Start, w.End, len(commits))
	return commits, nil
}

// isRootCommit reports whether the commit has no parents.
func (r *Repository) isRootCommit(h plumbing.Hash) (bool, error) {
	commit, err := r.repo.CommitObject(h)
	if err != nil {
		return false, fmt.Errorf("resolving end boundary: %w", err)
	}
	return commit.NumParents() == 0, nil
}

// newCommit converts a go-git commit into the pipeline record. A message
// that is not valid UTF-8 fails the whole walk; silently mangling history
// would make the generated changelog lie about what shipped.
func newCommit(c *object.Commit) (Commit, error) {
	if !utf8.ValidString(c.Message) {
		return Commit{}, fmt.Errorf("commit message is not valid UTF-8")
	}

	subject, _, _ := strings.Cut(c.Message, "\n")
	author := c.Author.Name
	if !utf8.ValidString(author) {
		author = ""
	}

	return Commit{
		Hash:    c.Hash.String(),
		Subject: strings.TrimSpace(subject),
		Author:  author,
		Time:    c.Committer.When.UTC(),
	}, nil
}
