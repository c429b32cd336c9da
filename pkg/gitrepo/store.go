// Package gitrepo gives the release engine a narrow view of one
// versioned-ref store. The engine only ever talks to the Store
// interface; CLIStore drives a real git working copy and MemStore backs
// the engine's tests.
package gitrepo

import (
	"context"

	"github.com/cutover-sh/cutover/pkg/semver"
)

// Store is the capability surface the release engine consumes. All
// mutating calls act on the current working copy; nothing reaches a
// remote until Push.
type Store interface {
	// Tags returns tags whose commits are ancestors of ref (including
	// ref itself), version-sorted ascending. Non-semver tags are
	// included per the store's native collation.
	Tags(ctx context.Context, ref string) ([]string, error)

	// TagsAt returns the tags pointing exactly at ref.
	TagsAt(ctx context.Context, ref string) ([]string, error)

	// CurrentBranch returns the symbolic branch name. It fails on a
	// detached HEAD.
	CurrentBranch(ctx context.Context) (string, error)

	// Log returns ordered commit messages strictly after from, up to
	// and including to. An empty from means the whole history of to.
	Log(ctx context.Context, from, to string) ([]string, error)

	// FirstCommit returns the root commit of the current history.
	FirstCommit(ctx context.Context) (string, error)

	// BranchExists reports whether a local branch with this name exists.
	BranchExists(ctx context.Context, name string) (bool, error)

	// CreateBranch creates a branch at HEAD and makes it current.
	CreateBranch(ctx context.Context, name string) error

	// CreateTag creates a lightweight tag at HEAD.
	CreateTag(ctx context.Context, name string) error

	// Push publishes all branches and all tags to the remote. Invoked at
	// most once per run, last.
	Push(ctx context.Context, remote string) error
}

// LatestTag returns the version-maximal tag reachable from ref, or empty
// when the ancestry carries no tags.
func LatestTag(ctx context.Context, s Store, ref string) (string, error) {
	tags, err := s.Tags(ctx, ref)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", nil
	}
	return tags[len(tags)-1], nil
}

// LatestStableTag returns the version-maximal tag within ref's ancestry
// that parses as a stable (non-prerelease) semantic version, or empty.
// The scope is always the given ref's ancestry, never the whole store.
func LatestStableTag(ctx context.Context, s Store, ref string) (string, error) {
	tags, err := s.Tags(ctx, ref)
	if err != nil {
		return "", err
	}

	var best string
	var bestVersion semver.Version
	for _, tag := range tags {
		v, err := semver.Parse(tag)
		if err != nil || v.IsPrerelease() {
			continue
		}
		if best == "" || v.Compare(bestVersion) > 0 {
			best = tag
			bestVersion = v
		}
	}
	return best, nil
}
