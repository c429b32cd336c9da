// pkg/gitrepo/cli.go
//
// Store implementation that shells out to the git binary.

package gitrepo

import (
	"context"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/cutover-sh/cutover/pkg/cutover_err"
	"github.com/cutover-sh/cutover/pkg/execute"
	"go.uber.org/zap"
)

// CLIStore drives one git working copy through the git CLI.
type CLIStore struct {
	Dir    string
	Logger *zap.Logger
}

// NewCLIStore returns a store rooted at dir.
func NewCLIStore(dir string, log *zap.Logger) *CLIStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CLIStore{Dir: dir, Logger: log}
}

func (s *CLIStore) git(ctx context.Context, args ...string) (string, error) {
	out, err := execute.Run(ctx, execute.Options{
		Command: "git",
		Args:    args,
		Dir:     s.Dir,
		Capture: true,
		Logger:  s.Logger,
	})
	return strings.TrimSpace(out), err
}

func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func (s *CLIStore) Tags(ctx context.Context, ref string) ([]string, error) {
	// versionsort.suffix makes a prerelease tag collate before the
	// release with the same core, matching semver precedence.
	out, err := s.git(ctx, "-c", "versionsort.suffix=-", "tag", "--merged", ref, "--sort=version:refname")
	if err != nil {
		return nil, cerr.Wrapf(err, "listing tags merged into %q", ref)
	}
	return splitLines(out), nil
}

func (s *CLIStore) TagsAt(ctx context.Context, ref string) ([]string, error) {
	out, err := s.git(ctx, "-c", "versionsort.suffix=-", "tag", "--points-at", ref, "--sort=version:refname")
	if err != nil {
		return nil, cerr.Wrapf(err, "listing tags at %q", ref)
	}
	return splitLines(out), nil
}

func (s *CLIStore) CurrentBranch(ctx context.Context) (string, error) {
	// symbolic-ref fails on a detached HEAD, which is never a legal
	// starting state for a run.
	out, err := s.git(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", cutover_err.NewBranchClassificationError(
			"cannot determine current branch (detached HEAD?)",
			"Check out the trunk branch or a release branch before running cutover",
		)
	}
	return out, nil
}

func (s *CLIStore) Log(ctx context.Context, from, to string) ([]string, error) {
	rangeSpec := to
	if from != "" {
		rangeSpec = from + ".." + to
	}
	out, err := s.git(ctx, "log", "--reverse", "-z", "--format=%B", rangeSpec)
	if err != nil {
		return nil, cerr.Wrapf(err, "reading commit messages for %q", rangeSpec)
	}

	var messages []string
	for _, msg := range strings.Split(out, "\x00") {
		msg = strings.TrimSpace(msg)
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

func (s *CLIStore) FirstCommit(ctx context.Context) (string, error) {
	out, err := s.git(ctx, "rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return "", cerr.Wrap(err, "finding root commit")
	}
	roots := splitLines(out)
	if len(roots) == 0 {
		return "", cerr.New("history has no root commit")
	}
	// rev-list emits newest first; the oldest root is last.
	return roots[len(roots)-1], nil
}

func (s *CLIStore) BranchExists(ctx context.Context, name string) (bool, error) {
	out, err := s.git(ctx, "branch", "--list", name)
	if err != nil {
		return false, cerr.Wrapf(err, "checking branch %q", name)
	}
	return out != "", nil
}

func (s *CLIStore) CreateBranch(ctx context.Context, name string) error {
	if _, err := s.git(ctx, "checkout", "-b", name); err != nil {
		return cerr.Wrapf(err, "creating branch %q", name)
	}
	s.Logger.Info("Branch created", zap.String("branch", name))
	return nil
}

func (s *CLIStore) CreateTag(ctx context.Context, name string) error {
	if _, err := s.git(ctx, "tag", name); err != nil {
		return cerr.Wrapf(err, "creating tag %q", name)
	}
	s.Logger.Info("Tag created", zap.String("tag", name))
	return nil
}

func (s *CLIStore) Push(ctx context.Context, remote string) error {
	if _, err := s.git(ctx, "push", "--all", remote); err != nil {
		return cerr.Wrapf(err, "pushing branches to %q", remote)
	}
	if _, err := s.git(ctx, "push", "--tags", remote); err != nil {
		return cerr.Wrapf(err, "pushing tags to %q", remote)
	}
	s.Logger.Info("Pushed branches and tags", zap.String("remote", remote))
	return nil
}
