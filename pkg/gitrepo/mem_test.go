package gitrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreTagsAreVersionSorted(t *testing.T) {
	// Linear history v1.0.0 -> v1.0.1 -> v1.0.2 lists exactly in
	// ascending order.
	s := NewMemStore("main")
	s.Commit("fix: a")
	s.Tag("v1.0.0")
	s.Commit("fix: b")
	s.Tag("v1.0.1")
	s.Commit("fix: c")
	s.Tag("v1.0.2")

	tags, err := s.Tags(context.Background(), "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0.0", "v1.0.1", "v1.0.2"}, tags)
}

func TestMemStoreTagsSortPrereleasesBeforeFinals(t *testing.T) {
	s := NewMemStore("main")
	s.Commit("feat: a")
	s.Tag("v1.0.0-rc.2")
	s.Tag("v1.0.0-rc.10")
	s.Tag("v1.0.0")
	s.Tag("v1.0.0-rc.1")

	tags, err := s.Tags(context.Background(), "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0.0-rc.1", "v1.0.0-rc.2", "v1.0.0-rc.10", "v1.0.0"}, tags)
}

func TestMemStoreTagQueriesAreAncestryScoped(t *testing.T) {
	s := NewMemStore("main")
	s.Commit("feat: shared base")
	s.Tag("v1.0.0")

	require.NoError(t, s.CreateBranch(context.Background(), "release-1.0.x"))
	s.Commit("fix: release only")
	s.Tag("v1.0.1-rc.1")

	// from the release branch both tags are visible
	tags, err := s.Tags(context.Background(), "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0.0", "v1.0.1-rc.1"}, tags)

	// back on main, the release-only tag never appears
	s.Current = "main"
	tags, err = s.Tags(context.Background(), "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0.0"}, tags)

	latest, err := LatestTag(context.Background(), s, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", latest)
}

func TestLatestStableTagIgnoresPrereleasesAndJunk(t *testing.T) {
	s := NewMemStore("main")
	s.Commit("feat: a")
	s.Tag("v0.9.0")
	s.Commit("feat: b")
	s.Tag("v1.0.0")
	s.Tag("v1.1.0-rc.1")
	s.Tag("deploy-marker")

	stable, err := LatestStableTag(context.Background(), s, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", stable)
}

func TestLatestStableTagEmptyWhenNoneStable(t *testing.T) {
	s := NewMemStore("main")
	s.Commit("feat: a")
	s.Tag("v1.0.0-rc.1")

	stable, err := LatestStableTag(context.Background(), s, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "", stable)
}

func TestMemStoreLogRange(t *testing.T) {
	s := NewMemStore("main")
	s.Commit("feat: one")
	s.Tag("v0.1.0")
	s.Commit("fix: two")
	s.Commit("fix: three")

	msgs, err := s.Log(context.Background(), "v0.1.0", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"fix: two", "fix: three"}, msgs)

	all, err := s.Log(context.Background(), "", "HEAD")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemStoreDetachedHEAD(t *testing.T) {
	s := NewMemStore("main")
	s.Commit("feat: a")
	s.Detach()

	_, err := s.CurrentBranch(context.Background())
	require.Error(t, err)
}

func TestMemStoreCreateBranchSwitchesAndCopiesHistory(t *testing.T) {
	s := NewMemStore("main")
	first := s.Commit("feat: a")

	require.NoError(t, s.CreateBranch(context.Background(), "release-0.1.x"))
	assert.Equal(t, "release-0.1.x", s.Current)

	root, err := s.FirstCommit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, root)

	require.Error(t, s.CreateBranch(context.Background(), "release-0.1.x"))
}
