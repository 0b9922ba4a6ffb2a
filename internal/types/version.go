package types

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver"
)

// Version is a parsed semantic version. It wraps Masterminds/semver so that
// comparison and ordering follow the same rules the rest of the Go ecosystem
// uses for semver, while the set algebra on top (VersionRange, VersionConstraint)
// is owned by this package.
type Version struct {
	raw   string
	inner *semver.Version
}

// ParseVersion parses a semantic version string.
func ParseVersion(value string) (Version, error) {
	v, err := semver.NewVersion(value)
	if err != nil {
		return Version{}, fmt.Errorf("parse version %q: %w", value, err)
	}
	return Version{raw: value, inner: v}, nil
}

// MustParseVersion parses a version and panics on failure. Intended for
// constants and test fixtures, never for untrusted input.
func MustParseVersion(value string) Version {
	v, err := ParseVersion(value)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v is the zero Version (unparsed).
func (v Version) IsZero() bool { return v.inner == nil }

func (v Version) String() string {
	if v.inner == nil {
		return ""
	}
	return v.inner.String()
}

// Compare returns -1, 0 or 1 as v is less than, equal to or greater than other.
func (v Version) Compare(other Version) int {
	if v.inner == nil || other.inner == nil {
		return 0
	}
	return v.inner.Compare(other.inner)
}

func (v Version) Equal(other Version) bool       { return v.Compare(other) == 0 }
func (v Version) LessThan(other Version) bool    { return v.Compare(other) < 0 }
func (v Version) GreaterThan(other Version) bool { return v.Compare(other) > 0 }

// IsPrerelease reports whether the version carries a prerelease tag, e.g. 1.2.0-beta.1.
func (v Version) IsPrerelease() bool {
	return v.inner != nil && v.inner.Prerelease() != ""
}

// SortVersions sorts versions ascending in place.
func SortVersions(versions []Version) {
	sort.Slice(versions, func(i, j int) bool { return versions[i].LessThan(versions[j]) })
}

// Prioritize orders candidates the way a plain "get" resolution prefers them:
// highest stable release first, then highest prerelease. It never mutates its
// input.
func Prioritize(versions []Version) []Version {
	out := append([]Version(nil), versions...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsPrerelease() != b.IsPrerelease() {
			return !a.IsPrerelease()
		}
		return a.GreaterThan(b)
	})
	return out
}

// Antiprioritize orders candidates the way a "downgrade" resolution prefers
// them: lowest stable release first, then lowest prerelease.
func Antiprioritize(versions []Version) []Version {
	out := append([]Version(nil), versions...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsPrerelease() != b.IsPrerelease() {
			return !a.IsPrerelease()
		}
		return a.LessThan(b)
	})
	return out
}
