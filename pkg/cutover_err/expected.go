// pkg/cutover_err/expected.go

package cutover_err

import (
	"context"
	"errors"
	"strings"
)

// UserError marks a failure the user can fix themselves (bad input, wrong
// branch, missing commits). These are reported without a stack trace.
type UserError struct {
	Err error
}

func (e *UserError) Error() string {
	return e.Err.Error()
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewExpectedError wraps err as an expected, user-fixable error.
// Returns nil when err is nil.
func NewExpectedError(_ context.Context, err error) error {
	if err == nil {
		return nil
	}
	return &UserError{Err: err}
}

// IsExpectedUserError reports whether err is (or wraps) a user-fixable
// error. Validation-class classified errors count as expected too.
func IsExpectedUserError(err error) bool {
	if err == nil {
		return false
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return true
	}
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode() == 2
	}
	return false
}

// ExtractSummary condenses multi-line command output into at most n
// trailing non-empty lines for log fields.
func ExtractSummary(_ context.Context, output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, strings.TrimSpace(line))
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, " | ")
}
