// pkg/cutover_err/classification.go
//
// Error classification with stable exit codes. Every failure the release
// engine can produce maps to exactly one category here.

package cutover_err

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for exit-code mapping and reporting.
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem/store plumbing issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryConfiguration - unsupported action or bad input values (exit 2)
	CategoryConfiguration
	// CategoryVersionFormat - a string fails the semver grammar (exit 2)
	CategoryVersionFormat
	// CategoryBranchClassification - branch is neither trunk nor release (exit 2)
	CategoryBranchClassification
	// CategoryBranchPlacement - release type illegal on this branch type (exit 2)
	CategoryBranchPlacement
	// CategoryHistory - no commits since the reference tag (exit 2)
	CategoryHistory
	// CategoryQualification - no qualifying conventional commit found (exit 2)
	CategoryQualification
	// CategoryHeadState - tag state at HEAD blocks promotion (exit 2)
	CategoryHeadState
	// CategoryConflict - target release branch already exists (exit 2)
	CategoryConflict
	// CategoryPublish - pushing to the remote failed (exit 1)
	CategoryPublish
	// CategoryInternal - bugs in cutover itself (exit 3)
	CategoryInternal
)

// ClassifiedError wraps an error with its category and remediation info.
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

func (e *ClassifiedError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n\nCause: %v", e.Cause))
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	return sb.String()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error category.
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryConfiguration, CategoryVersionFormat, CategoryBranchClassification,
		CategoryBranchPlacement, CategoryHistory, CategoryQualification,
		CategoryHeadState, CategoryConflict:
		return 2 // validation-class failure
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// GetExitCode extracts an exit code from any error.
// Returns 0 for nil, the category code for classified errors, 1 otherwise.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}
	return 1
}

// CategoryOf reports the category of a classified error, or CategorySystem
// for anything unclassified.
func CategoryOf(err error) ErrorCategory {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category
	}
	return CategorySystem
}

// NewConfigurationError reports an unsupported or malformed input value.
func NewConfigurationError(message string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryConfiguration,
		Message:     message,
		Remediation: remediation,
	}
}

// NewVersionFormatError reports a string that fails the semver grammar.
func NewVersionFormatError(input string) error {
	return &ClassifiedError{
		Category: CategoryVersionFormat,
		Message:  fmt.Sprintf("invalid semantic version format: %q", input),
		Remediation: []string{
			"Versions must match v{major}.{minor}.{patch}[-{prerelease}][+{build}]",
		},
	}
}

// NewBranchClassificationError reports a branch that is neither trunk nor
// a release branch where one is required.
func NewBranchClassificationError(message string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryBranchClassification,
		Message:     message,
		Remediation: remediation,
	}
}

// NewBranchPlacementError reports a release-type vs. branch-type mismatch.
func NewBranchPlacementError(message string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryBranchPlacement,
		Message:     message,
		Remediation: remediation,
	}
}

// NewHistoryError reports an empty commit range.
func NewHistoryError(message string) error {
	return &ClassifiedError{
		Category: CategoryHistory,
		Message:  message,
		Remediation: []string{
			"Commit changes before cutting a release",
		},
	}
}

// NewQualificationError reports history with no release-qualifying change.
func NewQualificationError(message string) error {
	return &ClassifiedError{
		Category: CategoryQualification,
		Message:  message,
		Remediation: []string{
			"Use conventional commits: feat: for minor, fix: for patch, feat!: for major",
		},
	}
}

// NewHeadStateError reports a tag state at HEAD that blocks promotion.
func NewHeadStateError(message string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryHeadState,
		Message:     message,
		Remediation: remediation,
	}
}

// NewConflictError reports a target ref name that already exists.
func NewConflictError(message string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryConflict,
		Message:     message,
		Remediation: remediation,
	}
}

// NewPublishError reports a remote push failure.
func NewPublishError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryPublish,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"Check remote connectivity and credentials",
			"Local branches and tags were created; re-run with --dry-run=false once the remote is reachable",
		},
	}
}

// NewSystemError reports OS, filesystem, or store plumbing failures.
func NewSystemError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategorySystem,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewInternalError reports a bug in cutover itself.
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"This is likely a bug in cutover",
			"Please report it with the full error message and steps to reproduce",
		},
	}
}
