package types

// VersionRange is a contiguous span of versions with optional open ends. A
// nil Min means "no lower bound" (-Infinity); a nil Max means "no upper
// bound" (+Infinity). A range whose Min equals its Max and both bounds are
// inclusive represents an exact version.
type VersionRange struct {
	Min        *Version
	IncludeMin bool
	Max        *Version
	IncludeMax bool
}

// AnyRange is the unbounded range that allows every version.
func AnyRange() VersionRange { return VersionRange{} }

// ExactRange returns the single-version range [v, v].
func ExactRange(v Version) VersionRange {
	return VersionRange{Min: &v, IncludeMin: true, Max: &v, IncludeMax: true}
}

// AtLeast returns the range [v, +Inf).
func AtLeast(v Version) VersionRange {
	return VersionRange{Min: &v, IncludeMin: true}
}

// LessThan returns the range (-Inf, v).
func LessThan(v Version) VersionRange {
	return VersionRange{Max: &v, IncludeMax: false}
}

func (r VersionRange) hasMin() bool { return r.Min != nil }
func (r VersionRange) hasMax() bool { return r.Max != nil }

// Allows reports whether v falls inside the range.
func (r VersionRange) Allows(v Version) bool {
	if r.hasMin() {
		if v.LessThan(*r.Min) {
			return false
		}
		if v.Equal(*r.Min) && !r.IncludeMin {
			return false
		}
	}
	if r.hasMax() {
		if v.GreaterThan(*r.Max) {
			return false
		}
		if v.Equal(*r.Max) && !r.IncludeMax {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the range admits no version at all.
func (r VersionRange) IsEmpty() bool {
	if !r.hasMin() || !r.hasMax() {
		return false
	}
	switch {
	case r.Min.GreaterThan(*r.Max):
		return true
	case r.Min.Equal(*r.Max):
		return !(r.IncludeMin && r.IncludeMax)
	default:
		return false
	}
}

// IsExact reports whether the range admits exactly one version.
func (r VersionRange) IsExact() bool {
	return r.hasMin() && r.hasMax() && r.Min.Equal(*r.Max) && r.IncludeMin && r.IncludeMax
}

// IsAny reports whether the range admits every version.
func (r VersionRange) IsAny() bool { return !r.hasMin() && !r.hasMax() }

func (r VersionRange) String() string {
	switch {
	case r.IsAny():
		return "any"
	case r.IsExact():
		return r.Min.String()
	}
	lo := "-inf"
	if r.hasMin() {
		lo = r.Min.String()
	}
	hi := "+inf"
	if r.hasMax() {
		hi = r.Max.String()
	}
	open, close := "(", ")"
	if r.IncludeMin {
		open = "["
	}
	if r.IncludeMax {
		close = "]"
	}
	return open + lo + ", " + hi + close
}

// compareBoundValue orders a possibly-unbounded value. nilIsMax controls
// whether a nil bound sorts as +Inf (true, for upper bounds) or -Inf
// (false, for lower bounds).
func compareBoundValue(a, b *Version, nilIsMax bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		if nilIsMax {
			return 1
		}
		return -1
	case b == nil:
		if nilIsMax {
			return -1
		}
		return 1
	default:
		return a.Compare(*b)
	}
}

// compareMinBounds orders two lower bounds: lower value first, and at equal
// value an inclusive bound sorts before (is wider than) an exclusive one.
func compareMinBounds(aVal *Version, aInc bool, bVal *Version, bInc bool) int {
	if c := compareBoundValue(aVal, bVal, false); c != 0 {
		return c
	}
	if aInc == bInc {
		return 0
	}
	if aInc {
		return -1
	}
	return 1
}

// compareMaxBounds orders two upper bounds: higher value first, and at equal
// value an inclusive bound sorts after (is wider than) an exclusive one.
func compareMaxBounds(aVal *Version, aInc bool, bVal *Version, bInc bool) int {
	if c := compareBoundValue(aVal, bVal, true); c != 0 {
		return c
	}
	if aInc == bInc {
		return 0
	}
	if aInc {
		return 1
	}
	return -1
}

func minBound(aVal *Version, aInc bool, bVal *Version, bInc bool) (*Version, bool) {
	if compareMinBounds(aVal, aInc, bVal, bInc) >= 0 {
		return aVal, aInc
	}
	return bVal, bInc
}

func maxBound(aVal *Version, aInc bool, bVal *Version, bInc bool) (*Version, bool) {
	if compareMaxBounds(aVal, aInc, bVal, bInc) <= 0 {
		return aVal, aInc
	}
	return bVal, bInc
}

// Intersect returns the overlap of r and other. The second value is false
// when the ranges do not overlap.
func (r VersionRange) Intersect(other VersionRange) (VersionRange, bool) {
	lo, loInc := minBound(r.Min, r.IncludeMin, other.Min, other.IncludeMin)
	hi, hiInc := maxBound(r.Max, r.IncludeMax, other.Max, other.IncludeMax)
	out := VersionRange{Min: lo, IncludeMin: loInc, Max: hi, IncludeMax: hiInc}
	if out.IsEmpty() {
		return VersionRange{}, false
	}
	return out, true
}

// rangesAdjoin reports whether b, which starts at or after a, overlaps or
// touches a with no gap of real versions between them. a and b must already
// be ordered by lower bound.
func rangesAdjoin(a, b VersionRange) bool {
	if a.Max == nil {
		return true
	}
	if b.Min == nil {
		return true
	}
	c := a.Max.Compare(*b.Min)
	if c > 0 {
		return true
	}
	if c < 0 {
		return false
	}
	return a.IncludeMax || b.IncludeMin
}

// widerMaxBound returns whichever of two upper bounds extends furthest, the
// opposite selection from maxBound's intersection semantics.
func widerMaxBound(aVal *Version, aInc bool, bVal *Version, bInc bool) (*Version, bool) {
	if compareMaxBounds(aVal, aInc, bVal, bInc) >= 0 {
		return aVal, aInc
	}
	return bVal, bInc
}

func mergeAdjoining(a, b VersionRange) VersionRange {
	hi, hiInc := widerMaxBound(a.Max, a.IncludeMax, b.Max, b.IncludeMax)
	return VersionRange{Min: a.Min, IncludeMin: a.IncludeMin, Max: hi, IncludeMax: hiInc}
}

// Equal reports whether two ranges admit exactly the same versions.
func (r VersionRange) Equal(other VersionRange) bool {
	return compareMinBounds(r.Min, r.IncludeMin, other.Min, other.IncludeMin) == 0 &&
		compareMaxBounds(r.Max, r.IncludeMax, other.Max, other.IncludeMax) == 0
}
