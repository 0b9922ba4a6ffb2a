package core

import (
	"fmt"
	"strings"

	"depsolve/internal/types"
)

// Normalizer rewrites constraints expressed over a package's real, known
// version catalog into the minimal set of closed ranges that admit exactly
// the same candidates. This keeps clause comparison and unit propagation
// working over real versions instead of an unbounded continuum: two ranges
// separated only by version numbers nobody ever published collapse into
// one contiguous run.
type Normalizer struct {
	base  []types.Version // ascending, deduplicated
	cache map[string]types.VersionConstraint
}

// NewNormalizer builds a Normalizer over base, which need not already be
// sorted or deduplicated.
func NewNormalizer(base []types.Version) *Normalizer {
	sorted := dedupeSorted(base)
	return &Normalizer{base: sorted, cache: map[string]types.VersionConstraint{}}
}

func dedupeSorted(versions []types.Version) []types.Version {
	out := append([]types.Version(nil), versions...)
	types.SortVersions(out)
	deduped := out[:0]
	for i, v := range out {
		if i == 0 || !v.Equal(out[i-1]) {
			deduped = append(deduped, v)
		}
	}
	return deduped
}

// StrictLeastUpperBound returns the smallest known version strictly greater
// than v.
func (n *Normalizer) StrictLeastUpperBound(v types.Version) (types.Version, bool) {
	for _, b := range n.base {
		if b.GreaterThan(v) {
			return b, true
		}
	}
	return types.Version{}, false
}

// StrictGreatestLowerBound returns the largest known version strictly less
// than v.
func (n *Normalizer) StrictGreatestLowerBound(v types.Version) (types.Version, bool) {
	var best types.Version
	found := false
	for _, b := range n.base {
		if b.LessThan(v) {
			best = b
			found = true
			continue
		}
		break
	}
	return best, found
}

// NormalizeRange clips r down to the contiguous span of known versions it
// admits, returning false if no known version satisfies r at all.
func (n *Normalizer) NormalizeRange(r types.VersionRange) (types.VersionRange, bool) {
	first, last := -1, -1
	for i, v := range n.base {
		if r.Allows(v) {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return types.VersionRange{}, false
	}
	return types.VersionRange{Min: &n.base[first], IncludeMin: true, Max: &n.base[last], IncludeMax: true}, true
}

// Maximize rewrites vc into the minimal union of closed ranges that admits
// exactly the known versions vc already allows. The result is idempotent:
// maximizing an already-maximized constraint returns an equal value, which
// is what lets the solver compare two constraints for entailment by value
// instead of by the syntactic form they happened to arrive in.
func (n *Normalizer) Maximize(vc types.VersionConstraint) types.VersionConstraint {
	key := vc.String()
	if cached, ok := n.cache[key]; ok {
		return cached
	}

	var ranges []types.VersionRange
	runStart := -1
	for i, v := range n.base {
		if vc.Allows(v) {
			if runStart == -1 {
				runStart = i
			}
			continue
		}
		if runStart != -1 {
			ranges = append(ranges, types.VersionRange{Min: &n.base[runStart], IncludeMin: true, Max: &n.base[i-1], IncludeMax: true})
			runStart = -1
		}
	}
	if runStart != -1 {
		last := len(n.base) - 1
		ranges = append(ranges, types.VersionRange{Min: &n.base[runStart], IncludeMin: true, Max: &n.base[last], IncludeMax: true})
	}

	out := types.NewConstraint(ranges...)
	n.cache[key] = out
	return out
}

// describeNearestVersions builds a short diagnostic for a constraint that no
// known version satisfies: it reports the closest published versions on
// either side of the gap, clipping each of vc's ranges down to n's known
// catalog first so the message only ever names versions that actually
// exist.
func describeNearestVersions(n *Normalizer, vc types.VersionConstraint) string {
	var parts []string
	for _, r := range vc.Ranges() {
		if _, ok := n.NormalizeRange(r); ok {
			continue
		}
		var below, above string
		if r.Min != nil {
			if v, ok := n.StrictGreatestLowerBound(*r.Min); ok {
				below = v.String()
			}
		}
		if r.Max != nil {
			if v, ok := n.StrictLeastUpperBound(*r.Max); ok {
				above = v.String()
			}
		}
		switch {
		case below != "" && above != "":
			parts = append(parts, fmt.Sprintf("nearest published versions are %s and %s", below, above))
		case below != "":
			parts = append(parts, fmt.Sprintf("nearest published version below is %s", below))
		case above != "":
			parts = append(parts, fmt.Sprintf("nearest published version above is %s", above))
		}
	}
	return strings.Join(parts, "; ")
}

// Candidates returns the known versions vc allows, ascending.
func (n *Normalizer) Candidates(vc types.VersionConstraint) []types.Version {
	var out []types.Version
	for _, v := range n.base {
		if vc.Allows(v) {
			out = append(out, v)
		}
	}
	return out
}
