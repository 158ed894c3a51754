package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitsBetweenExcludesEndBoundary(t *testing.T) {
	tr, repo := newTestRepo(t)
	first := tr.commit("feat(pro-card): one")
	tr.commit("fix(pro-card): two")
	third := tr.commit("feat(pro-card): three")

	commits, err := repo.CommitsBetween(ReleaseWindow{Start: third, End: first})
	require.NoError(t, err)
	require.Len(t, commits, 2)

	// Newest first, and the end boundary itself is absent.
	assert.Equal(t, "feat(pro-card): three", commits[0].Subject)
	assert.Equal(t, "fix(pro-card): two", commits[1].Subject)
}

func TestCommitsBetweenIncludesRootEnd(t *testing.T) {
	tr, repo := newTestRepo(t)
	root := tr.commit("chore: initial")
	second := tr.commit("feat(pro-card): two")

	commits, err := repo.CommitsBetween(ReleaseWindow{Start: second, End: root})
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "chore: initial", commits[1].Subject)
}

func TestCommitsBetweenDeterministic(t *testing.T) {
	tr, repo := newTestRepo(t)
	first := tr.commit("feat(pro-card): one")
	tr.commit("fix(pro-card): two")
	tr.commit("docs(pro-card): three")
	head := tr.commit("feat(pro-card): four")

	w := ReleaseWindow{Start: head, End: first}

	once, err := repo.CommitsBetween(w)
	require.NoError(t, err)
	again, err := repo.CommitsBetween(w)
	require.NoError(t, err)

	assert.Equal(t, once, again)
}

func TestCommitsBetweenSubjectIsFirstLine(t *testing.T) {
	tr, repo := newTestRepo(t)
	root := tr.commit("feat(pro-card): add flip animation\n\nLonger body text\nwith details.")

	commits, err := repo.CommitsBetween(ReleaseWindow{Start: root, End: root})
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "feat(pro-card): add flip animation", commits[0].Subject)
}

func TestCommitsBetweenInvalidUTF8Message(t *testing.T) {
	tr, repo := newTestRepo(t)
	first := tr.commit("feat(pro-card): one")
	head := tr.commit("fix(pro-card): broken \xff\xfe encoding")

	_, err := repo.CommitsBetween(ReleaseWindow{Start: head, End: first})
	require.Error(t, err)

	var walkErr *WalkError
	require.ErrorAs(t, err, &walkErr)
	assert.Equal(t, head.String(), walkErr.Hash)
	assert.Contains(t, walkErr.Error(), "UTF-8")
}

func TestCommitsBetweenMissingEndBoundary(t *testing.T) {
	tr, repo := newTestRepo(t)
	head := tr.commit("feat(pro-card): one")

	missing := head
	missing[0] ^= 0xff

	_, err := repo.CommitsBetween(ReleaseWindow{Start: head, End: missing})

	var walkErr *WalkError
	require.ErrorAs(t, err, &walkErr)
}

func TestCommitTimesAreUTC(t *testing.T) {
	tr, repo := newTestRepo(t)
	root := tr.commit("feat(pro-card): one")

	commits, err := repo.CommitsBetween(ReleaseWindow{Start: root, End: root})
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "UTC", commits[0].Time.Location().String())
}

func TestShortHash(t *testing.T) {
	c := Commit{Hash: "0123456789abcdef0123456789abcdef01234567"}
	assert.Equal(t, "0123456", c.ShortHash())

	assert.Equal(t, "abc", Commit{Hash: "abc"}.ShortHash())
}
