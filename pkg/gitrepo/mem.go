// pkg/gitrepo/mem.go
//
// In-memory Store used by the release engine's tests. Histories are
// linear per branch; a cut branch starts with its parent's commits.

package gitrepo

import (
	"context"
	"fmt"
	"sort"

	cerr "github.com/cockroachdb/errors"
	"github.com/cutover-sh/cutover/pkg/cutover_err"
	goversion "github.com/hashicorp/go-version"
)

// MemCommit is one commit in a MemStore history.
type MemCommit struct {
	ID      string
	Message string
}

// MemStore implements Store entirely in memory.
type MemStore struct {
	Branches map[string][]MemCommit // oldest first
	TagRefs  map[string]string      // tag name -> commit id
	Current  string
	Pushes   []string // remotes pushed to, in order
	PushErr  error    // injected publish failure

	nextID int
}

// NewMemStore starts a store with one empty branch checked out.
func NewMemStore(branch string) *MemStore {
	return &MemStore{
		Branches: map[string][]MemCommit{branch: {}},
		TagRefs:  map[string]string{},
		Current:  branch,
	}
}

// Commit appends a commit to the current branch and returns its id.
func (s *MemStore) Commit(message string) string {
	s.nextID++
	id := fmt.Sprintf("c%04d", s.nextID)
	s.Branches[s.Current] = append(s.Branches[s.Current], MemCommit{ID: id, Message: message})
	return id
}

// Tag binds a tag name to the current branch's head commit.
func (s *MemStore) Tag(name string) {
	s.TagRefs[name] = s.headID()
}

// Detach simulates a detached HEAD.
func (s *MemStore) Detach() {
	s.Current = ""
}

func (s *MemStore) headID() string {
	history := s.Branches[s.Current]
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].ID
}

func (s *MemStore) resolve(ref string) (string, error) {
	if ref == "" || ref == "HEAD" {
		return s.headID(), nil
	}
	if history, ok := s.Branches[ref]; ok {
		if len(history) == 0 {
			return "", nil
		}
		return history[len(history)-1].ID, nil
	}
	if id, ok := s.TagRefs[ref]; ok {
		return id, nil
	}
	return ref, nil
}

// ancestry returns the current branch's commits up to and including ref.
func (s *MemStore) ancestry(ref string) ([]MemCommit, error) {
	id, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	history := s.Branches[s.Current]
	for i, c := range history {
		if c.ID == id {
			return history[:i+1], nil
		}
	}
	if ref == "" || ref == "HEAD" {
		return history, nil
	}
	return nil, cerr.Newf("unknown ref %q", ref)
}

func (s *MemStore) Tags(_ context.Context, ref string) ([]string, error) {
	commits, err := s.ancestry(ref)
	if err != nil {
		return nil, err
	}
	reachable := make(map[string]bool, len(commits))
	for _, c := range commits {
		reachable[c.ID] = true
	}

	var tags []string
	for name, id := range s.TagRefs {
		if reachable[id] {
			tags = append(tags, name)
		}
	}
	sortTagsByVersion(tags)
	return tags, nil
}

func (s *MemStore) TagsAt(_ context.Context, ref string) ([]string, error) {
	id, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	var tags []string
	for name, tagID := range s.TagRefs {
		if tagID == id {
			tags = append(tags, name)
		}
	}
	sortTagsByVersion(tags)
	return tags, nil
}

func (s *MemStore) CurrentBranch(_ context.Context) (string, error) {
	if s.Current == "" {
		return "", cutover_err.NewBranchClassificationError(
			"cannot determine current branch (detached HEAD?)")
	}
	return s.Current, nil
}

func (s *MemStore) Log(_ context.Context, from, to string) ([]string, error) {
	commits, err := s.ancestry(to)
	if err != nil {
		return nil, err
	}

	start := 0
	if from != "" {
		fromID, err := s.resolve(from)
		if err != nil {
			return nil, err
		}
		for i, c := range commits {
			if c.ID == fromID {
				start = i + 1
				break
			}
		}
	}

	var messages []string
	for _, c := range commits[start:] {
		messages = append(messages, c.Message)
	}
	return messages, nil
}

func (s *MemStore) FirstCommit(_ context.Context) (string, error) {
	history := s.Branches[s.Current]
	if len(history) == 0 {
		return "", cerr.New("history has no root commit")
	}
	return history[0].ID, nil
}

func (s *MemStore) BranchExists(_ context.Context, name string) (bool, error) {
	_, ok := s.Branches[name]
	return ok, nil
}

func (s *MemStore) CreateBranch(_ context.Context, name string) error {
	if _, ok := s.Branches[name]; ok {
		return cerr.Newf("branch %q already exists", name)
	}
	parent := s.Branches[s.Current]
	s.Branches[name] = append([]MemCommit(nil), parent...)
	s.Current = name
	return nil
}

func (s *MemStore) CreateTag(_ context.Context, name string) error {
	if _, ok := s.TagRefs[name]; ok {
		return cerr.Newf("tag %q already exists", name)
	}
	head := s.headID()
	if head == "" {
		return cerr.New("cannot tag an empty history")
	}
	s.TagRefs[name] = head
	return nil
}

func (s *MemStore) Push(_ context.Context, remote string) error {
	if s.PushErr != nil {
		return s.PushErr
	}
	s.Pushes = append(s.Pushes, remote)
	return nil
}

// sortTagsByVersion orders tags the way git's version:refname collation
// does for the names this tool produces: version-parseable tags
// ascending by version, anything else lexicographically first.
func sortTagsByVersion(tags []string) {
	sort.Slice(tags, func(i, j int) bool {
		vi, errI := goversion.NewVersion(tags[i])
		vj, errJ := goversion.NewVersion(tags[j])
		switch {
		case errI == nil && errJ == nil:
			if vi.Equal(vj) {
				return tags[i] < tags[j]
			}
			return vi.LessThan(vj)
		case errI == nil:
			return false
		case errJ == nil:
			return true
		default:
			return tags[i] < tags[j]
		}
	})
}
