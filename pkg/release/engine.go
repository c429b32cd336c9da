// pkg/release/engine.go
//
// The branch-cut / release state machine. One Engine executes one
// action per run: an ordered sequence of read queries, a bounded set of
// local mutations, then at most one publish.

package release

import (
	"fmt"
	"strings"

	"github.com/cutover-sh/cutover/pkg/commits"
	"github.com/cutover-sh/cutover/pkg/cutover_err"
	"github.com/cutover-sh/cutover/pkg/cutover_io"
	"github.com/cutover-sh/cutover/pkg/gitrepo"
	"github.com/cutover-sh/cutover/pkg/semver"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Outputs are set only on full success; a failed run produces none.
type Outputs struct {
	NextVersion           string
	PreviousVersion       string
	PreviousStableVersion string
}

// Engine drives the release state machine against one store.
type Engine struct {
	Store gitrepo.Store
	Cfg   Config
}

// NewEngine wires an engine to a store.
func NewEngine(store gitrepo.Store, cfg Config) *Engine {
	return &Engine{Store: store, Cfg: cfg}
}

// Cut proposes the next version: it classifies the history since the
// reference tag, enforces branch placement, applies the bump and creates
// the rc tag (plus the release branch when cutting from trunk).
func (e *Engine) Cut(rc *cutover_io.RuntimeContext) (Outputs, error) {
	logger := otelzap.Ctx(rc.Ctx)
	ctx := rc.Ctx

	// ASSESS - where are we, and what happened since the last tag?
	branch, err := e.Store.CurrentBranch(ctx)
	if err != nil {
		return Outputs{}, err
	}
	class := e.Cfg.Classify(branch)
	if class == Other {
		return Outputs{}, cutover_err.NewBranchClassificationError(
			fmt.Sprintf("branch %q is neither the trunk branch %q nor matches the release pattern %q",
				branch, e.Cfg.TrunkBranch, e.Cfg.ReleasePattern.String()),
			"Run release-cut from the trunk branch or from a release branch",
		)
	}
	logger.Info("Branch classified",
		zap.String("branch", branch),
		zap.String("class", class.String()))

	referenceTag, err := gitrepo.LatestTag(ctx, e.Store, "HEAD")
	if err != nil {
		return Outputs{}, err
	}

	referenceVersion := semver.Version{}
	historyStart := referenceTag
	if referenceTag == "" {
		// No tag yet: synthesize v0.0.0 and scan from the very first commit.
		first, err := e.Store.FirstCommit(ctx)
		if err != nil {
			return Outputs{}, cutover_err.NewHistoryError("no commits found on this branch")
		}
		historyStart = ""
		logger.Info("No reference tag found, starting from first commit",
			zap.String("first_commit", first))
	} else {
		referenceVersion, err = semver.Parse(referenceTag)
		if err != nil {
			return Outputs{}, err
		}
	}

	messages, err := e.Store.Log(ctx, historyStart, "HEAD")
	if err != nil {
		return Outputs{}, err
	}
	if len(messages) == 0 {
		return Outputs{}, cutover_err.NewHistoryError(
			fmt.Sprintf("no commits since reference tag %q", referenceTag))
	}

	releaseType := commits.Aggregate(rc.Log, messages)
	logger.Info("History classified",
		zap.Int("commits", len(messages)),
		zap.String("release_type", releaseType.String()))
	if releaseType == commits.None {
		return Outputs{}, cutover_err.NewQualificationError(
			fmt.Sprintf("none of the %d commits since %q qualifies for a release", len(messages), referenceTag))
	}

	// Placement rules: major/minor cuts originate on trunk only, patch
	// cuts only on a release branch. Checked before any mutation.
	switch releaseType {
	case commits.Major, commits.Minor:
		if class != Trunk {
			return Outputs{}, cutover_err.NewBranchPlacementError(
				fmt.Sprintf("a %s release must be cut from the trunk branch %q, not from %q",
					releaseType, e.Cfg.TrunkBranch, branch))
		}
	case commits.Patch:
		if class == Trunk {
			return Outputs{}, cutover_err.NewBranchPlacementError(
				fmt.Sprintf("a patch release must be cut from a release branch, not from the trunk branch %q", branch))
		}
	}

	var next semver.Version
	switch releaseType {
	case commits.Major:
		next = referenceVersion.BumpMajor()
	case commits.Minor:
		next = referenceVersion.BumpMinor()
	default:
		next = referenceVersion.BumpPatch()
	}

	previousStable, err := gitrepo.LatestStableTag(ctx, e.Store, "HEAD")
	if err != nil {
		return Outputs{}, err
	}

	// INTERVENE - branch (trunk cuts only), then tag.
	if class == Trunk {
		branchName := RenderBranchName(e.Cfg.BranchTemplate, next)
		exists, err := e.Store.BranchExists(ctx, branchName)
		if err != nil {
			return Outputs{}, err
		}
		if exists {
			return Outputs{}, cutover_err.NewConflictError(
				fmt.Sprintf("release branch %q already exists", branchName),
				"Promote or retire the existing release branch before cutting again")
		}
		if err := e.Store.CreateBranch(ctx, branchName); err != nil {
			return Outputs{}, err
		}
		logger.Info("Release branch cut",
			zap.String("branch", branchName),
			zap.String("from", branch))
	}

	nextTag := next.String()
	if err := e.Store.CreateTag(ctx, nextTag); err != nil {
		return Outputs{}, err
	}
	logger.Info("Release candidate tagged", zap.String("tag", nextTag))

	// EVALUATE - publish and report.
	if err := e.publish(rc); err != nil {
		return Outputs{}, err
	}

	return Outputs{
		NextVersion:           nextTag,
		PreviousVersion:       referenceTag,
		PreviousStableVersion: previousStable,
	}, nil
}

// Promote turns the sole candidate tag at a release branch's HEAD into a
// final tag on the same commit.
func (e *Engine) Promote(rc *cutover_io.RuntimeContext) (Outputs, error) {
	logger := otelzap.Ctx(rc.Ctx)
	ctx := rc.Ctx

	// ASSESS - must be a release branch with exactly one candidate at HEAD.
	branch, err := e.Store.CurrentBranch(ctx)
	if err != nil {
		return Outputs{}, err
	}
	if e.Cfg.Classify(branch) != Release {
		return Outputs{}, cutover_err.NewBranchClassificationError(
			fmt.Sprintf("branch %q is not a release branch (pattern %q)",
				branch, e.Cfg.ReleasePattern.String()),
			"Check out the release branch whose candidate you want to promote")
	}

	tagsAtHead, err := e.Store.TagsAt(ctx, "HEAD")
	if err != nil {
		return Outputs{}, err
	}
	if len(tagsAtHead) == 0 {
		return Outputs{}, cutover_err.NewHeadStateError(
			fmt.Sprintf("no tags at HEAD of %q; run release-cut first", branch))
	}

	var candidates []string
	var stable []string
	for _, tag := range tagsAtHead {
		v, err := semver.Parse(tag)
		if err != nil {
			continue
		}
		if v.IsPrerelease() {
			candidates = append(candidates, tag)
		} else {
			stable = append(stable, tag)
		}
	}

	if len(stable) > 0 {
		return Outputs{}, cutover_err.NewHeadStateError(
			fmt.Sprintf("HEAD of %q is already released: %s", branch, strings.Join(stable, ", ")))
	}
	switch {
	case len(candidates) == 0:
		return Outputs{}, cutover_err.NewHeadStateError(
			fmt.Sprintf("no release candidate tag at HEAD of %q", branch),
			"Run release-cut to create a candidate before promoting")
	case len(candidates) > 1:
		return Outputs{}, cutover_err.NewHeadStateError(
			fmt.Sprintf("ambiguous candidates at HEAD of %q: %s", branch, strings.Join(candidates, ", ")),
			"Delete the stale candidate tags, leaving exactly one")
	}

	candidateTag := candidates[0]
	candidate, err := semver.Parse(candidateTag)
	if err != nil {
		return Outputs{}, err
	}

	previousStable, err := gitrepo.LatestStableTag(ctx, e.Store, "HEAD")
	if err != nil {
		return Outputs{}, err
	}

	// INTERVENE - the commit is untouched; only a new tag is added.
	final := candidate.Release()
	finalTag := final.String()
	if err := e.Store.CreateTag(ctx, finalTag); err != nil {
		return Outputs{}, err
	}
	logger.Info("Candidate promoted",
		zap.String("candidate", candidateTag),
		zap.String("final", finalTag))

	// EVALUATE - publish and report.
	if err := e.publish(rc); err != nil {
		return Outputs{}, err
	}

	return Outputs{
		NextVersion:           finalTag,
		PreviousVersion:       candidateTag,
		PreviousStableVersion: previousStable,
	}, nil
}

// publish pushes all branches and tags once, at the end of a run. A
// failure is fatal and never retried.
func (e *Engine) publish(rc *cutover_io.RuntimeContext) error {
	logger := otelzap.Ctx(rc.Ctx)

	if e.Cfg.DryRun {
		logger.Info("Dry run, skipping publish", zap.String("remote", e.Cfg.Remote))
		return nil
	}
	if err := e.Store.Push(rc.Ctx, e.Cfg.Remote); err != nil {
		return cutover_err.NewPublishError(
			fmt.Sprintf("failed to publish to remote %q", e.Cfg.Remote), err)
	}
	return nil
}
