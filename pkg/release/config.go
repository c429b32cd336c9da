// pkg/release/config.go
//
// Branch classification and release-branch naming.

package release

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cutover-sh/cutover/pkg/cutover_err"
	"github.com/cutover-sh/cutover/pkg/semver"
)

// BranchClass is the run-scoped classification of the current branch.
// Exactly one class applies: trunk wins by exact name match, then the
// release pattern; everything else is Other.
type BranchClass int

const (
	Other BranchClass = iota
	Trunk
	Release
)

func (c BranchClass) String() string {
	switch c {
	case Trunk:
		return "trunk"
	case Release:
		return "release"
	default:
		return "other"
	}
}

// Config is the compiled engine configuration.
type Config struct {
	TrunkBranch    string
	ReleasePattern *regexp.Regexp
	BranchTemplate string
	DryRun         bool
	Remote         string
}

// NewConfig validates and compiles the raw input values.
func NewConfig(trunkBranch, releasePattern, branchTemplate, remote string, dryRun bool) (Config, error) {
	if trunkBranch == "" {
		return Config{}, cutover_err.NewConfigurationError("trunk-branch-name must not be empty")
	}
	if releasePattern == "" {
		return Config{}, cutover_err.NewConfigurationError("release-branch-pattern must not be empty")
	}
	re, err := regexp.Compile(releasePattern)
	if err != nil {
		return Config{}, cutover_err.NewConfigurationError(
			fmt.Sprintf("release-branch-pattern %q is not a valid regular expression: %v", releasePattern, err),
		)
	}
	if branchTemplate == "" {
		return Config{}, cutover_err.NewConfigurationError("release-branch-template must not be empty")
	}

	return Config{
		TrunkBranch:    trunkBranch,
		ReleasePattern: re,
		BranchTemplate: branchTemplate,
		DryRun:         dryRun,
		Remote:         remote,
	}, nil
}

// Classify determines a branch's class. Trunk is matched by exact name
// before the release pattern is consulted, so a branch is never both.
func (c Config) Classify(branch string) BranchClass {
	if branch == c.TrunkBranch {
		return Trunk
	}
	if c.ReleasePattern.MatchString(branch) {
		return Release
	}
	return Other
}

// RenderBranchName substitutes the ${major}, ${minor}, ${patch} and
// ${prerelease} placeholders verbatim. The rendered name is not checked
// against the release pattern.
func RenderBranchName(template string, v semver.Version) string {
	r := strings.NewReplacer(
		"${major}", strconv.FormatUint(v.Major, 10),
		"${minor}", strconv.FormatUint(v.Minor, 10),
		"${patch}", strconv.FormatUint(v.Patch, 10),
		"${prerelease}", v.Prerelease,
	)
	return r.Replace(template)
}
