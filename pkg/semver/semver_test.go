package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRendersCanonically(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"v1.2.3", "v1.2.3"},
		{"1.2.3", "v1.2.3"},
		{"v0.0.0", "v0.0.0"},
		{"v1.2.3-rc.1", "v1.2.3-rc.1"},
		{"1.2.3-alpha.beta", "v1.2.3-alpha.beta"},
		{"v1.2.3+build.99", "v1.2.3"},
		{"v1.2.3-rc.2+build.99", "v1.2.3-rc.2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{
		"",
		"v1",
		"v1.2",
		"1.2.3.4",
		"va.b.c",
		"v1.2.x",
		"release-1.2.x",
		"v1.2.3-",
		"not a version",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), input)
		})
	}
}

func TestBumpMajorOpensCandidateSeries(t *testing.T) {
	v, err := Parse("v1.4.7-rc.3")
	require.NoError(t, err)

	next := v.BumpMajor()
	assert.Equal(t, "v2.0.0-rc.1", next.String())
	// the receiver is untouched
	assert.Equal(t, "v1.4.7-rc.3", v.String())
}

func TestBumpMinorOpensCandidateSeries(t *testing.T) {
	v, err := Parse("v1.4.7")
	require.NoError(t, err)
	assert.Equal(t, "v1.5.0-rc.1", v.BumpMinor().String())
}

func TestBumpPatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"stable opens new series", "v1.2.3", "v1.2.4-rc.1"},
		{"numeric suffix increments", "v1.2.3-rc.1", "v1.2.3-rc.2"},
		{"larger numeric suffix increments", "v1.2.3-rc.9", "v1.2.3-rc.10"},
		{"non-numeric suffix appends", "v1.2.3-foo", "v1.2.3-foo.1"},
		{"mixed suffix increments last segment", "v1.2.3-alpha.2", "v1.2.3-alpha.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.BumpPatch().String())
		})
	}
}

func TestReleaseClearsPrerelease(t *testing.T) {
	for _, input := range []string{"v1.2.3-rc.4", "v1.2.3", "v0.1.0-alpha"} {
		v, err := Parse(input)
		require.NoError(t, err)
		assert.False(t, v.Release().IsPrerelease(), "Release() of %s must be stable", input)
	}
}

func TestIsPrerelease(t *testing.T) {
	rc, err := Parse("v1.0.0-rc.1")
	require.NoError(t, err)
	assert.True(t, rc.IsPrerelease())

	stable, err := Parse("v1.0.0")
	require.NoError(t, err)
	assert.False(t, stable.IsPrerelease())
}

func TestCompareFollowsSemverPrecedence(t *testing.T) {
	ordered := []string{
		"v0.9.9",
		"v1.0.0-alpha",
		"v1.0.0-alpha.1",
		"v1.0.0-rc.1",
		"v1.0.0-rc.2",
		"v1.0.0-rc.10",
		"v1.0.0",
		"v1.0.1",
		"v1.1.0",
		"v2.0.0",
	}
	for i := 0; i < len(ordered)-1; i++ {
		lo, err := Parse(ordered[i])
		require.NoError(t, err)
		hi, err := Parse(ordered[i+1])
		require.NoError(t, err)

		assert.Equal(t, -1, lo.Compare(hi), "%s < %s", ordered[i], ordered[i+1])
		assert.Equal(t, 1, hi.Compare(lo), "%s > %s", ordered[i+1], ordered[i])
	}

	a, err := Parse("v1.2.3-rc.1")
	require.NoError(t, err)
	b, err := Parse("1.2.3-rc.1+build")
	require.NoError(t, err)
	assert.Equal(t, 0, a.Compare(b))
}
