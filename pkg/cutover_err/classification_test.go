package cutover_err

import (
	"context"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, 0},
		{"plain error is system", cerr.New("boom"), 1},
		{"configuration", NewConfigurationError("bad input"), 2},
		{"version format", NewVersionFormatError("1.2"), 2},
		{"branch classification", NewBranchClassificationError("nope", ""), 2},
		{"branch placement", NewBranchPlacementError("nope", ""), 2},
		{"history", NewHistoryError("no commits"), 2},
		{"qualification", NewQualificationError("nothing qualifies"), 2},
		{"head state", NewHeadStateError("ambiguous", ""), 2},
		{"conflict", NewConflictError("branch exists", ""), 2},
		{"publish", NewPublishError("push failed", cerr.New("remote hung up")), 1},
		{"system", NewSystemError("could not write output file", cerr.New("disk full")), 1},
		{"internal", NewInternalError("invariant violated", nil), 3},
		{"wrapped keeps category", cerr.Wrap(NewHistoryError("no commits"), "during cut"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetExitCode(tt.err))
		})
	}
}

func TestCategoryOfUnwraps(t *testing.T) {
	err := cerr.Wrap(NewConflictError("branch exists", "delete it"), "outer context")
	assert.Equal(t, CategoryConflict, CategoryOf(err))
	assert.Equal(t, CategorySystem, CategoryOf(cerr.New("plain")))
}

func TestClassifiedErrorMessageAndUnwrap(t *testing.T) {
	cause := cerr.New("remote hung up")
	err := NewPublishError("push failed", cause)

	assert.Contains(t, err.Error(), "push failed")
	assert.ErrorIs(t, err, cause)
}

func TestVersionFormatErrorQuotesInput(t *testing.T) {
	err := NewVersionFormatError("not-a-version")
	assert.Contains(t, err.Error(), `"not-a-version"`)
}

func TestIsExpectedUserError(t *testing.T) {
	ctx := context.Background()

	assert.True(t, IsExpectedUserError(NewExpectedError(ctx, cerr.New("user mistake"))))
	assert.True(t, IsExpectedUserError(NewQualificationError("nothing qualifies")))
	assert.False(t, IsExpectedUserError(NewPublishError("push failed", cerr.New("x"))))
	assert.False(t, IsExpectedUserError(cerr.New("plain")))
	assert.False(t, IsExpectedUserError(nil))
}
