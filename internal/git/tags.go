package git

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5/plumbing"
)

// TagVersion is a release tag split into its package scope and version.
// Monorepo release tags follow the "<scope>@<version>" convention, e.g.
// "@ant-design/pro-card@2.1.0" has scope "@ant-design/pro-card".
type TagVersion struct {
	Scope   string
	Version *semver.Version
}

// ParseTagVersion splits a tag name at its last "@" and parses the remainder
// as a strict semantic version. Scoped npm package names contain a leading
// "@" of their own, which is why only the last separator counts.
// Returns false for names without a separator or with an unparseable version.
func ParseTagVersion(name string) (TagVersion, bool) {
	idx := strings.LastIndex(name, "@")
	if idx < 0 {
		return TagVersion{}, false
	}

	version, err := semver.StrictNewVersion(name[idx+1:])
	if err != nil {
		return TagVersion{}, false
	}

	return TagVersion{Scope: name[:idx], Version: version}, true
}

// SortByVersion filters names down to those carrying the given prefix and a
// parseable "<scope>@<version>" shape, then orders them by ascending semantic
// version precedence. Names that do not parse are dropped silently; a tag
// stream mixing release tags with markers like "nightly" or "v1" must not
// fail the run.
func SortByVersion(names []string, prefix string) []string {
	type versioned struct {
		name    string
		version *semver.Version
	}

	var matched []versioned
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		tv, ok := ParseTagVersion(name)
		if !ok {
			continue
		}
		matched = append(matched, versioned{name: name, version: tv.Version})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].version.LessThan(matched[j].version)
	})

	sorted := make([]string, len(matched))
	for i, m := range matched {
		sorted[i] = m.name
	}
	return sorted
}

// TagNames returns the short names of every tag in the repository, in
// storage order. Use SortByVersion to turn the raw set into a release
// sequence for one package.
func (r *Repository) TagNames() ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return names, nil
}

// TagsForScope returns the package's release tags in ascending version order.
func (r *Repository) TagsForScope(prefix string) ([]string, error) {
	names, err := r.TagNames()
	if err != nil {
		return nil, err
	}
	return SortByVersion(names, prefix), nil
}
