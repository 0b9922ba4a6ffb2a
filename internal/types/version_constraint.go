package types

import "sort"

// VersionConstraint is an ordered, disjoint set of VersionRanges. A
// constraint with no ranges admits no version ("none"); a constraint with a
// single unbounded range admits every version ("any"); a constraint with two
// or more ranges is what the rest of the system calls a version union, the
// shape produced whenever two incompatible requirements on a package are
// combined.
type VersionConstraint struct {
	ranges []VersionRange
}

// Any returns the constraint that admits every version.
func Any() VersionConstraint { return VersionConstraint{ranges: []VersionRange{AnyRange()}} }

// None returns the constraint that admits no version.
func None() VersionConstraint { return VersionConstraint{} }

// NewConstraint builds a constraint from arbitrary, possibly empty or
// overlapping, ranges.
func NewConstraint(ranges ...VersionRange) VersionConstraint {
	return VersionConstraint{ranges: normalizeRangeList(ranges)}
}

// Exact returns a constraint admitting only v.
func Exact(v Version) VersionConstraint { return NewConstraint(ExactRange(v)) }

// Ranges returns the constraint's disjoint ranges in ascending order. Callers
// must not mutate the returned slice.
func (c VersionConstraint) Ranges() []VersionRange { return c.ranges }

// IsEmpty reports whether the constraint admits no version.
func (c VersionConstraint) IsEmpty() bool { return len(c.ranges) == 0 }

// IsAny reports whether the constraint admits every version.
func (c VersionConstraint) IsAny() bool { return len(c.ranges) == 1 && c.ranges[0].IsAny() }

// Allows reports whether v satisfies the constraint.
func (c VersionConstraint) Allows(v Version) bool {
	for _, r := range c.ranges {
		if r.Allows(v) {
			return true
		}
	}
	return false
}

// Intersect returns the constraint admitting versions allowed by both c and
// other.
func (c VersionConstraint) Intersect(other VersionConstraint) VersionConstraint {
	return VersionConstraint{ranges: intersectRangeLists(c.ranges, other.ranges)}
}

// Union returns the constraint admitting versions allowed by either c or
// other.
func (c VersionConstraint) Union(other VersionConstraint) VersionConstraint {
	combined := make([]VersionRange, 0, len(c.ranges)+len(other.ranges))
	combined = append(combined, c.ranges...)
	combined = append(combined, other.ranges...)
	return VersionConstraint{ranges: normalizeRangeList(combined)}
}

// Difference returns the constraint admitting versions allowed by c but not
// by other.
func (c VersionConstraint) Difference(other VersionConstraint) VersionConstraint {
	return VersionConstraint{ranges: intersectRangeLists(c.ranges, complementRangeList(other.ranges))}
}

// AllowsAny reports whether c and other share at least one allowed version.
func (c VersionConstraint) AllowsAny(other VersionConstraint) bool {
	return !c.Intersect(other).IsEmpty()
}

// AllowsAll reports whether every version allowed by other is also allowed
// by c.
func (c VersionConstraint) AllowsAll(other VersionConstraint) bool {
	return other.Difference(c).IsEmpty()
}

// Equal reports whether c and other admit exactly the same versions.
func (c VersionConstraint) Equal(other VersionConstraint) bool {
	if len(c.ranges) != len(other.ranges) {
		return false
	}
	for i := range c.ranges {
		if !c.ranges[i].Equal(other.ranges[i]) {
			return false
		}
	}
	return true
}

func (c VersionConstraint) String() string {
	if c.IsEmpty() {
		return "<empty>"
	}
	if c.IsAny() {
		return "any"
	}
	out := ""
	for i, r := range c.ranges {
		if i > 0 {
			out += " || "
		}
		out += r.String()
	}
	return out
}

func normalizeRangeList(ranges []VersionRange) []VersionRange {
	clean := make([]VersionRange, 0, len(ranges))
	for _, r := range ranges {
		if !r.IsEmpty() {
			clean = append(clean, r)
		}
	}
	sort.Slice(clean, func(i, j int) bool {
		return compareMinBounds(clean[i].Min, clean[i].IncludeMin, clean[j].Min, clean[j].IncludeMin) < 0
	})
	out := make([]VersionRange, 0, len(clean))
	for _, r := range clean {
		if len(out) > 0 && rangesAdjoin(out[len(out)-1], r) {
			out[len(out)-1] = mergeAdjoining(out[len(out)-1], r)
			continue
		}
		out = append(out, r)
	}
	return out
}

// complementRangeList returns the disjoint ranges covering every version not
// covered by ranges. ranges must already be sorted and disjoint.
func complementRangeList(ranges []VersionRange) []VersionRange {
	var out []VersionRange
	var cursor *Version
	cursorInclude := true
	hasCursor := false
	for _, r := range ranges {
		if r.Min != nil {
			piece := VersionRange{Max: r.Min, IncludeMax: !r.IncludeMin}
			if hasCursor {
				piece.Min = cursor
				piece.IncludeMin = cursorInclude
			}
			if !piece.IsEmpty() {
				out = append(out, piece)
			}
		}
		if r.Max == nil {
			return out
		}
		cursor = r.Max
		cursorInclude = !r.IncludeMax
		hasCursor = true
	}
	out = append(out, VersionRange{Min: cursor, IncludeMin: cursorInclude})
	return out
}

// intersectRangeLists intersects two sorted, disjoint range lists via a
// sweep over both.
func intersectRangeLists(a, b []VersionRange) []VersionRange {
	var out []VersionRange
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if overlap, ok := a[i].Intersect(b[j]); ok {
			out = append(out, overlap)
		}
		if compareMaxBounds(a[i].Max, a[i].IncludeMax, b[j].Max, b[j].IncludeMax) <= 0 {
			i++
		} else {
			j++
		}
	}
	return out
}
