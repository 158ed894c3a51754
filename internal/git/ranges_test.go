package git

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestWindowTwoTags(t *testing.T) {
	tr, repo := newTestRepo(t)
	first := tr.commit("feat(pro-card): one")
	tr.commit("fix(pro-card): two")
	third := tr.commit("feat(pro-card): three")

	tr.tag("pro-card@1.0.0", first)
	tr.tag("pro-card@1.1.0", third)

	w, err := repo.LatestWindow("pro-card")
	require.NoError(t, err)
	assert.Equal(t, "pro-card@1.1.0", w.Tag.Name)
	assert.Equal(t, third, w.Start)
	assert.Equal(t, first, w.End)
}

func TestLatestWindowSingleTagEndsAtParent(t *testing.T) {
	tr, repo := newTestRepo(t)
	root := tr.commit("chore: initial")
	head := tr.commit("feat(pro-card): one")

	tr.tag("pro-card@1.0.0", head)

	w, err := repo.LatestWindow("pro-card")
	require.NoError(t, err)
	assert.Equal(t, head, w.Start)
	assert.Equal(t, root, w.End)
}

func TestLatestWindowSingleTagOnRoot(t *testing.T) {
	tr, repo := newTestRepo(t)
	root := tr.commit("feat(pro-card): initial")

	tr.tag("pro-card@1.0.0", root)

	w, err := repo.LatestWindow("pro-card")
	require.NoError(t, err)
	assert.Equal(t, root, w.Start)
	assert.Equal(t, root, w.End)

	// The root end boundary is included, so the first release still lists
	// its only commit.
	commits, err := repo.CommitsBetween(w)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "feat(pro-card): initial", commits[0].Subject)
}

func TestLatestWindowNoTags(t *testing.T) {
	tr, repo := newTestRepo(t)
	tr.commit("chore: initial")

	_, err := repo.LatestWindow("pro-card")
	require.Error(t, err)

	var noTags *NoTagsError
	require.ErrorAs(t, err, &noTags)
	assert.Equal(t, "pro-card", noTags.Scope)
}

func TestLatestWindowIgnoresUnparseableTags(t *testing.T) {
	tr, repo := newTestRepo(t)
	hash := tr.commit("feat(pro-card): one")

	tr.tag("pro-card@nightly", hash)

	_, err := repo.LatestWindow("pro-card")

	var noTags *NoTagsError
	require.ErrorAs(t, err, &noTags)
}

func TestAllWindowsPairsConsecutiveTags(t *testing.T) {
	tr, repo := newTestRepo(t)
	first := tr.commit("feat(pro-card): one")
	second := tr.commit("feat(pro-card): two")
	third := tr.commit("feat(pro-card): three")

	tr.tag("pro-card@1.0.0", first)
	tr.tag("pro-card@1.1.0", second)
	tr.tag("pro-card@2.0.0", third)

	windows, err := repo.AllWindows("pro-card")
	require.NoError(t, err)
	require.Len(t, windows, 2)

	// Newest release first, each window ending at the previous tag.
	assert.Equal(t, "pro-card@2.0.0", windows[0].Tag.Name)
	assert.Equal(t, third, windows[0].Start)
	assert.Equal(t, second, windows[0].End)

	assert.Equal(t, "pro-card@1.1.0", windows[1].Tag.Name)
	assert.Equal(t, second, windows[1].Start)
	assert.Equal(t, first, windows[1].End)
}

func TestAllWindowsSingleTag(t *testing.T) {
	tr, repo := newTestRepo(t)
	hash := tr.commit("feat(pro-card): one")
	tr.tag("pro-card@1.0.0", hash)

	windows, err := repo.AllWindows("pro-card")
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestAllWindowsNoTags(t *testing.T) {
	tr, repo := newTestRepo(t)
	tr.commit("chore: initial")

	_, err := repo.AllWindows("pro-card")

	var noTags *NoTagsError
	require.ErrorAs(t, err, &noTags)
}

func TestAnnotatedTagsPeelToCommit(t *testing.T) {
	tr, repo := newTestRepo(t)
	first := tr.commit("feat(pro-card): one")
	second := tr.commit("feat(pro-card): two")

	tr.annotatedTag("pro-card@1.0.0", first)
	tr.annotatedTag("pro-card@1.1.0", second)

	w, err := repo.LatestWindow("pro-card")
	require.NoError(t, err)
	assert.Equal(t, second, w.Start)
	assert.Equal(t, first, w.End)
}

func TestReleaseDateUsesCommitterDayUTC(t *testing.T) {
	tr, repo := newTestRepo(t)

	// 01:30 on Jan 2 in UTC+5:30 is still Jan 1 in UTC.
	ist := time.FixedZone("IST", 5*3600+1800)
	hash := tr.commitAt("feat(pro-card): one", "Jane Doe", time.Date(2024, 1, 2, 1, 30, 0, 0, ist))
	tr.tag("pro-card@1.0.0", hash)

	w, err := repo.LatestWindow("pro-card")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", w.Tag.ReleaseDate)
}

func TestNoTagsErrorMessage(t *testing.T) {
	err := &NoTagsError{Scope: "pro-card"}
	assert.Contains(t, err.Error(), "pro-card")
	assert.True(t, errors.As(error(err), new(*NoTagsError)))
}
