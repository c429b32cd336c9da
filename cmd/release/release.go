// cmd/release/release.go
//
// The release-cut and release commands, plus the env-driven run command
// used by automation platforms.

package release

import (
	"github.com/cutover-sh/cutover/pkg/config"
	"github.com/cutover-sh/cutover/pkg/cutover_cli"
	"github.com/cutover-sh/cutover/pkg/cutover_io"
	"github.com/cutover-sh/cutover/pkg/gitrepo"
	relengine "github.com/cutover-sh/cutover/pkg/release"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ReleaseCutCmd proposes the next version: it creates or advances an rc
// tag and, when cutting from trunk, a new release branch.
var ReleaseCutCmd = &cobra.Command{
	Use:   "release-cut",
	Short: "Propose the next version from conventional-commit history",
	Long: `Classifies the commits since the last tag reachable from the current
branch, decides the semantic-version bump they warrant, and opens a new
release candidate:

- a major or minor change on the trunk branch cuts a new release branch
  and tags its first candidate (vX.Y.0-rc.1)
- a patch change on a release branch advances the candidate in place
  (rc.N -> rc.N+1)

Major and minor cuts are only legal on trunk; patch cuts are only legal
on a release branch.`,
	RunE: cutover_cli.Wrap(runReleaseCut),
}

// ReleaseCmd promotes the sole candidate tag at a release branch's HEAD
// to a final release tag on the same commit.
var ReleaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Promote the release candidate at HEAD to a final release",
	Long: `Requires the current branch to be a release branch whose HEAD carries
exactly one release candidate tag and no stable tag. The candidate's
prerelease suffix is stripped and the result is added as a new tag on
the same commit.`,
	RunE: cutover_cli.Wrap(runRelease),
}

// RunCmd dispatches on the configured action. Automation platforms drive
// this single entry point through INPUT_* environment variables.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the action selected by configuration",
	RunE:  cutover_cli.Wrap(runAction),
}

func init() {
	for _, cmd := range []*cobra.Command{ReleaseCutCmd, ReleaseCmd, RunCmd} {
		cmd.Flags().String("trunk-branch-name", "", "Exact name of the trunk branch")
		cmd.Flags().String("release-branch-pattern", "", "Regular expression recognizing release branches")
		cmd.Flags().String("release-branch-template", "", "Branch name template with ${major}/${minor}/${patch}/${prerelease} placeholders")
		cmd.Flags().Bool("dry-run", false, "Skip the publish step")
		cmd.Flags().String("remote", "", "Remote to publish branches and tags to")
		cmd.Flags().String("repo-path", "", "Path to the git working copy")
	}
	RunCmd.Flags().String("action", "", "Action to run: release-cut | release")
}

func runReleaseCut(rc *cutover_io.RuntimeContext, cmd *cobra.Command, _ []string) error {
	engine, err := buildEngine(rc, cmd)
	if err != nil {
		return err
	}
	outputs, err := engine.Cut(rc)
	if err != nil {
		return err
	}
	return emitOutputs(rc, outputs)
}

func runRelease(rc *cutover_io.RuntimeContext, cmd *cobra.Command, _ []string) error {
	engine, err := buildEngine(rc, cmd)
	if err != nil {
		return err
	}
	outputs, err := engine.Promote(rc)
	if err != nil {
		return err
	}
	return emitOutputs(rc, outputs)
}

func runAction(rc *cutover_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	action, err := config.ParseAction(cfg.Action)
	if err != nil {
		return err
	}

	otelzap.Ctx(rc.Ctx).Info("Dispatching action", zap.String("action", string(action)))

	switch action {
	case config.ActionReleaseCut:
		return runReleaseCut(rc, cmd, args)
	default:
		return runRelease(rc, cmd, args)
	}
}

func buildEngine(rc *cutover_io.RuntimeContext, cmd *cobra.Command) (*relengine.Engine, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	engineCfg, err := relengine.NewConfig(
		cfg.TrunkBranch,
		cfg.ReleasePattern,
		cfg.ReleaseTemplate,
		cfg.Remote,
		cfg.DryRun,
	)
	if err != nil {
		return nil, err
	}

	otelzap.Ctx(rc.Ctx).Info("Configuration resolved",
		zap.String("trunk_branch", cfg.TrunkBranch),
		zap.String("release_pattern", cfg.ReleasePattern),
		zap.String("release_template", cfg.ReleaseTemplate),
		zap.Bool("dry_run", cfg.DryRun),
		zap.String("remote", cfg.Remote),
		zap.String("repo_path", cfg.RepoPath))

	store := gitrepo.NewCLIStore(cfg.RepoPath, rc.Log)
	return relengine.NewEngine(store, engineCfg), nil
}
