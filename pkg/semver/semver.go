// Package semver implements the semantic version value used for release
// decisions. Versions are immutable: every bump returns a new value, so
// a previous version can be captured and kept while the next one is
// derived from it.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cutover-sh/cutover/pkg/cutover_err"
)

// versionRE accepts an optional leading "v" then strict
// major.minor.patch[-prerelease][+build].
var versionRE = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z][0-9A-Za-z.-]*))?(?:\+([0-9A-Za-z][0-9A-Za-z.-]*))?$`)

// Version is one semantic version. Build metadata is accepted on parse
// but never round-tripped.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
}

// Parse reads a version string. Any input outside the grammar fails with
// a version-format error naming the input.
func Parse(input string) (Version, error) {
	m := versionRE.FindStringSubmatch(input)
	if m == nil {
		return Version{}, cutover_err.NewVersionFormatError(input)
	}

	major, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Version{}, cutover_err.NewVersionFormatError(input)
	}
	minor, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return Version{}, cutover_err.NewVersionFormatError(input)
	}
	patch, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return Version{}, cutover_err.NewVersionFormatError(input)
	}

	return Version{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: m[4],
	}, nil
}

// String renders the canonical form: always v-prefixed, prerelease
// omitted when absent.
func (v Version) String() string {
	if v.Prerelease == "" {
		return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("v%d.%d.%d-%s", v.Major, v.Minor, v.Patch, v.Prerelease)
}

// IsPrerelease reports whether a prerelease identifier is set.
func (v Version) IsPrerelease() bool {
	return v.Prerelease != ""
}

// BumpMajor opens the next major candidate series.
func (v Version) BumpMajor() Version {
	return Version{Major: v.Major + 1, Minor: 0, Patch: 0, Prerelease: "rc.1"}
}

// BumpMinor opens the next minor candidate series.
func (v Version) BumpMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1, Patch: 0, Prerelease: "rc.1"}
}

// BumpPatch advances a candidate series. On a final release it opens a
// new rc.1 series at patch+1; on a prerelease it increments the trailing
// numeric dot-segment, or appends ".1" when the last segment is not
// numeric.
func (v Version) BumpPatch() Version {
	if v.Prerelease == "" {
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1, Prerelease: "rc.1"}
	}

	segments := strings.Split(v.Prerelease, ".")
	last := segments[len(segments)-1]
	if n, err := strconv.ParseUint(last, 10, 64); err == nil {
		segments[len(segments)-1] = strconv.FormatUint(n+1, 10)
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, Prerelease: strings.Join(segments, ".")}
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, Prerelease: v.Prerelease + ".1"}
}

// Release promotes a candidate by clearing its prerelease.
func (v Version) Release() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// Compare returns -1, 0 or 1 following semver precedence. A stable
// version outranks a prerelease of the same core; prerelease identifiers
// compare numerically when both numeric, bytewise otherwise, and a
// prerelease that is a prefix of another is smaller.
func (v Version) Compare(o Version) int {
	if c := compareUint(v.Major, o.Major); c != 0 {
		return c
	}
	if c := compareUint(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := compareUint(v.Patch, o.Patch); c != 0 {
		return c
	}

	switch {
	case v.Prerelease == "" && o.Prerelease == "":
		return 0
	case v.Prerelease == "":
		return 1
	case o.Prerelease == "":
		return -1
	}
	return comparePrerelease(v.Prerelease, o.Prerelease)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePrerelease(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aNum := parseNumeric(as[i])
		bn, bNum := parseNumeric(bs[i])

		switch {
		case aNum && bNum:
			if c := compareUint(an, bn); c != 0 {
				return c
			}
		case aNum:
			return -1 // numeric identifiers rank below alphanumeric ones
		case bNum:
			return 1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

func parseNumeric(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	return n, err == nil
}
