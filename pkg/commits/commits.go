// Package commits classifies conventional-commit messages into the
// semantic-version impact they imply.
package commits

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ReleaseType is the version impact of one or more commits, totally
// ordered None < Patch < Minor < Major.
type ReleaseType int

const (
	None ReleaseType = iota
	Patch
	Minor
	Major
)

func (t ReleaseType) String() string {
	switch t {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return "none"
	}
}

// subjectRE matches `type(scope)?!?: subject`.
var subjectRE = regexp.MustCompile(`^([a-zA-Z]+)(\([^)\n]*\))?(!)?: .+`)

// breakingMarker is the literal footer marker that forces a major bump.
const breakingMarker = "BREAKING CHANGE: "

var knownTypes = map[string]ReleaseType{
	"feat":     Minor,
	"fix":      Patch,
	"build":    None,
	"chore":    None,
	"ci":       None,
	"docs":     None,
	"perf":     None,
	"refactor": None,
	"revert":   None,
	"style":    None,
	"test":     None,
}

// Classify determines the release type implied by one commit message
// (subject plus optional blank-line-separated paragraphs). Messages that
// do not match the grammar classify as None with a warning; they never
// abort a run.
func Classify(log *zap.Logger, message string) ReleaseType {
	if log == nil {
		log = zap.NewNop()
	}

	message = strings.ReplaceAll(message, "\r\n", "\n")
	paragraphs := strings.Split(strings.TrimSpace(message), "\n\n")
	subject := strings.TrimSpace(strings.SplitN(paragraphs[0], "\n", 2)[0])

	// A breaking-change footer overrides everything else.
	for _, para := range paragraphs[1:] {
		if strings.Contains(para, breakingMarker) {
			return Major
		}
	}

	m := subjectRE.FindStringSubmatch(subject)
	if m == nil {
		log.Warn("Commit message does not follow conventional commits, treating as no release impact",
			zap.String("subject", subject))
		return None
	}

	commitType := strings.ToLower(m[1])
	bang := m[3] == "!"

	impact, known := knownTypes[commitType]
	if !known {
		if bang {
			return Major
		}
		log.Warn("Unrecognized commit type, treating as no release impact",
			zap.String("type", commitType),
			zap.String("subject", subject))
		return None
	}

	if bang {
		return Major
	}
	return impact
}

// Aggregate classifies an ordered list of messages and returns the
// maximum severity found, short-circuiting once a major change appears.
func Aggregate(log *zap.Logger, messages []string) ReleaseType {
	result := None
	for _, msg := range messages {
		t := Classify(log, msg)
		if t > result {
			result = t
		}
		if result == Major {
			return Major
		}
	}
	return result
}
