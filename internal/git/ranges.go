package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Tag identifies one release boundary: the tag name and the committer date
// of the commit it points at, rendered as a UTC calendar day.
type Tag struct {
	Name        string
	ReleaseDate string
}

// ReleaseWindow spans the commits that went into one release: everything
// reachable from Start (the release's own tag target) down to End (the
// previous release's tag target). End is excluded from the walk unless it is
// a root commit, in which case the walker includes it so the first release
// of a repository covers its full history.
type ReleaseWindow struct {
	Tag   Tag
	Start plumbing.Hash
	End   plumbing.Hash
}

// NoTagsError reports that a package has no parseable release tags at all.
// Callers treat it as a per-package skip condition, not a fatal failure.
type NoTagsError struct {
	Scope string
}

func (e *NoTagsError) Error() string {
	return fmt.Sprintf("no release tags found for %q", e.Scope)
}

// LatestWindow resolves the release window of the newest release for the
// given tag prefix: newest tag down to the second-newest. When only one
// release exists the window ends at the first parent of the tag target, or
// at the target itself when that commit is a root.
func (r *Repository) LatestWindow(prefix string) (ReleaseWindow, error) {
	tags, err := r.TagsForScope(prefix)
	if err != nil {
		return ReleaseWindow{}, err
	}
	if len(tags) == 0 {
		return ReleaseWindow{}, &NoTagsError{Scope: prefix}
	}

	newest := tags[len(tags)-1]
	start, err := r.tagTarget(newest)
	if err != nil {
		return ReleaseWindow{}, err
	}

	var end plumbing.Hash
	if len(tags) == 1 {
		end, err = firstParentOrSelf(start)
		if err != nil {
			return ReleaseWindow{}, fmt.Errorf("resolving parent of tag %s: %w", newest, err)
		}
	} else {
		previous, err := r.tagTarget(tags[len(tags)-2])
		if err != nil {
			return ReleaseWindow{}, err
		}
		end = previous.Hash
	}

	logDebug("[git] LatestWindow(%s): %s (%s..%s)", prefix, newest, start.Hash, end)
	return ReleaseWindow{
		Tag:   tagOf(newest, start),
		Start: start.Hash,
		End:   end,
	}, nil
}

// AllWindows resolves one release window per consecutive tag pair for the
// given prefix, ordered newest release first. A package with n tags yields
// n-1 windows; a single-tag package yields none.
func (r *Repository) AllWindows(prefix string) ([]ReleaseWindow, error) {
	tags, err := r.TagsForScope(prefix)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, &NoTagsError{Scope: prefix}
	}

	windows := make([]ReleaseWindow, 0, len(tags)-1)
	for i := len(tags) - 1; i >= 1; i-- {
		start, err := r.tagTarget(tags[i])
		if err != nil {
			return nil, err
		}
		end, err := r.tagTarget(tags[i-1])
		if err != nil {
			return nil, err
		}
		windows = append(windows, ReleaseWindow{
			Tag:   tagOf(tags[i], start),
			Start: start.Hash,
			End:   end.Hash,
		})
	}

	logDebug("[git] AllWindows(%s): %d windows from %d tags", prefix, len(windows), len(tags))
	return windows, nil
}

// tagTarget resolves a tag name to the commit it points at, peeling
// annotated tag objects down to their commit.
func (r *Repository) tagTarget(name string) (*object.Commit, error) {
	ref, err := r.repo.Tag(name)
	if err != nil {
		return nil, fmt.Errorf("resolving tag %s: %w", name, err)
	}

	if tag, err := r.repo.TagObject(ref.Hash()); err == nil {
		commit, err := tag.Commit()
		if err != nil {
			return nil, fmt.Errorf("peeling annotated tag %s: %w", name, err)
		}
		return commit, nil
	}

	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("resolving target of tag %s: %w", name, err)
	}
	return commit, nil
}

// firstParentOrSelf returns the hash of the commit's first parent, or the
// commit's own hash when it has none.
func firstParentOrSelf(c *object.Commit) (plumbing.Hash, error) {
	if c.NumParents() == 0 {
		return c.Hash, nil
	}
	parent, err := c.Parent(0)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return parent.Hash, nil
}

// tagOf builds the Tag record for a resolved tag target. Release dates use
// the committer timestamp in UTC, matching the dates shown by hosting UIs
// for the moment a commit landed.
func tagOf(name string, target *object.Commit) Tag {
	return Tag{
		Name:        name,
		ReleaseDate: target.Committer.When.UTC().Format("2006-01-02"),
	}
}
