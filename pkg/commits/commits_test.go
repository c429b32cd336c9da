package commits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    ReleaseType
	}{
		{"feat is minor", "feat: add retry budget", Minor},
		{"feat with scope", "feat(server): add retry budget", Minor},
		{"fix is patch", "fix: off-by-one in backoff", Patch},
		{"fix with scope", "fix(client): nil deref", Patch},
		{"chore is none", "chore: bump linters", None},
		{"docs is none", "docs(readme): typo", None},
		{"refactor is none", "refactor(core): split package", None},
		{"bang forces major", "feat!: drop v1 endpoints", Major},
		{"scoped bang forces major", "fix(api)!: remove legacy flag", Major},
		{"breaking footer forces major", "feat: new auth\n\nBREAKING CHANGE: tokens are invalidated", Major},
		{"breaking footer on chore", "chore: cleanup\n\nBREAKING CHANGE: config format changed", Major},
		{"footer marker in later paragraph", "fix: a\n\nsome detail\n\nBREAKING CHANGE: wire format", Major},
		{"marker in subject is not a footer", "fix: mention BREAKING CHANGE: in docs", Patch},
		{"non-conforming is none", "updated some stuff", None},
		{"empty is none", "", None},
		{"missing space after colon", "feat:no space", None},
		{"unknown type is none", "yolo: whatever", None},
		{"unknown type with bang is major", "yolo!: whatever", Major},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(zap.NewNop(), tt.message))
		})
	}
}

func TestAggregateTakesMaximumSeverity(t *testing.T) {
	assert.Equal(t, None, Aggregate(nil, nil))
	assert.Equal(t, None, Aggregate(nil, []string{"chore: a", "docs: b"}))
	assert.Equal(t, Patch, Aggregate(nil, []string{"chore: a", "fix: b"}))
	assert.Equal(t, Minor, Aggregate(nil, []string{"fix: a", "feat: b", "fix: c"}))
	assert.Equal(t, Major, Aggregate(nil, []string{"fix: a", "feat!: b", "feat: c"}))
}

func TestAggregateIsMonotone(t *testing.T) {
	lists := [][]string{
		nil,
		{"chore: a"},
		{"fix: a"},
		{"feat: a", "fix: b"},
		{"nonsense message"},
	}
	for _, list := range lists {
		withBreaking := append(append([]string{}, list...), "feat!: breaking")
		assert.Equal(t, Major, Aggregate(nil, withBreaking),
			"adding feat!: to %v must force major", list)
	}
}

func TestReleaseTypeOrderingAndString(t *testing.T) {
	assert.True(t, Major > Minor && Minor > Patch && Patch > None)
	assert.Equal(t, "major", Major.String())
	assert.Equal(t, "minor", Minor.String())
	assert.Equal(t, "patch", Patch.String())
	assert.Equal(t, "none", None.String())
}
