package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagVersion(t *testing.T) {
	tests := map[string]struct {
		tag       string
		wantScope string
		wantVer   string
		wantOK    bool
	}{
		"plain package": {
			tag:       "pro-card@1.2.3",
			wantScope: "pro-card",
			wantVer:   "1.2.3",
			wantOK:    true,
		},
		"scoped npm package splits at last separator": {
			tag:       "@ant-design/pro-card@2.0.0",
			wantScope: "@ant-design/pro-card",
			wantVer:   "2.0.0",
			wantOK:    true,
		},
		"prerelease version": {
			tag:       "pro-table@3.0.0-beta.2",
			wantScope: "pro-table",
			wantVer:   "3.0.0-beta.2",
			wantOK:    true,
		},
		"no separator": {
			tag:    "v1.2.3",
			wantOK: false,
		},
		"partial version": {
			tag:    "pro-card@1.2",
			wantOK: false,
		},
		"version with v prefix": {
			tag:    "pro-card@v1.2.3",
			wantOK: false,
		},
		"not a version at all": {
			tag:    "pro-card@nightly",
			wantOK: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tv, ok := ParseTagVersion(tc.tag)
			if !tc.wantOK {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.wantScope, tv.Scope)
			assert.Equal(t, tc.wantVer, tv.Version.String())
		})
	}
}

func TestSortByVersion(t *testing.T) {
	tags := []string{
		"pro-card@0.10.0",
		"pro-card@1.0.0",
		"pro-table@2.0.0",
		"pro-card@0.9.0",
		"pro-card@1.0.0-alpha.1",
		"pro-card@nightly",
		"v2",
	}

	sorted := SortByVersion(tags, "pro-card")

	// Semantic ordering, not lexicographic: 0.9.0 sorts before 0.10.0 and
	// the prerelease sorts before its release.
	assert.Equal(t, []string{
		"pro-card@0.9.0",
		"pro-card@0.10.0",
		"pro-card@1.0.0-alpha.1",
		"pro-card@1.0.0",
	}, sorted)
}

func TestSortByVersionPrefixScopesOtherPackages(t *testing.T) {
	tags := []string{"pro-card@1.0.0", "pro-table@0.5.0", "pro-card@2.0.0"}

	assert.Equal(t, []string{"pro-table@0.5.0"}, SortByVersion(tags, "pro-table"))
}

func TestSortByVersionEmpty(t *testing.T) {
	assert.Empty(t, SortByVersion(nil, "pro-card"))
	assert.Empty(t, SortByVersion([]string{"nightly", "v1"}, ""))
}

func TestTagsForScope(t *testing.T) {
	tr, repo := newTestRepo(t)
	first := tr.commit("feat(pro-card): initial")
	second := tr.commit("feat(pro-card): more")

	tr.tag("pro-card@0.2.0", second)
	tr.tag("pro-card@0.1.0", first)
	tr.tag("stable", second)

	tags, err := repo.TagsForScope("pro-card")
	require.NoError(t, err)
	assert.Equal(t, []string{"pro-card@0.1.0", "pro-card@0.2.0"}, tags)
}
