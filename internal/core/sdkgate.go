package core

import "depsolve/internal/types"

// sameSdkShape reports whether two candidate manifests declare identical
// SDK constraints, the condition under which a gate violation on one
// version can be safely assumed to hold for its neighbors too.
func sameSdkShape(a, b types.Pubspec) bool {
	if !a.RuntimeSDKConstraint.Equal(b.RuntimeSDKConstraint) {
		return false
	}
	if a.HasPlatformSDKConstraint != b.HasPlatformSDKConstraint {
		return false
	}
	if !a.HasPlatformSDKConstraint {
		return true
	}
	return a.PlatformSDKConstraint.Equal(b.PlatformSDKConstraint)
}

// adjacencyRange finds the widest contiguous run of candidates around index
// that share the failing candidate's SDK shape and also fail the same
// check, so one learned clause can rule out the whole run instead of one
// version at a time.
func adjacencyRange(candidates []types.Pubspec, index int, sdks types.SdkVersions) types.VersionRange {
	target := candidates[index]
	lo, hi := index, index
	for lo > 0 && sameSdkShape(candidates[lo-1], target) && !candidates[lo-1].AllowsSdks(sdks) {
		lo--
	}
	for hi < len(candidates)-1 && sameSdkShape(candidates[hi+1], target) && !candidates[hi+1].AllowsSdks(sdks) {
		hi++
	}
	return types.VersionRange{
		Min:        &candidates[lo].ID.Version,
		IncludeMin: true,
		Max:        &candidates[hi].ID.Version,
		IncludeMax: true,
	}
}

// NewSdkGateClause builds the prohibition clause for a run of versions that
// fail the environment's SDK requirements.
func NewSdkGateClause(ref types.PackageRef, excluded types.VersionRange) *Clause {
	return NewFact(ClauseProhibition, NewNegativeTerm(ref, types.NewConstraint(excluded)))
}

// ValidateSdkConstraint scans candidates for SDK violations against sdks and
// registers one adjacency-learned clause per contiguous failing run,
// skipping any version already covered by a previously learned clause.
// It returns the clauses it added.
func ValidateSdkConstraint(s *State, ref types.PackageRef, candidates []types.Pubspec, sdks types.SdkVersions) []*Clause {
	var added []*Clause
	covered := make([]bool, len(candidates))
	for i, cand := range candidates {
		if covered[i] || cand.AllowsSdks(sdks) {
			continue
		}
		rng := adjacencyRange(candidates, i, sdks)
		for j, other := range candidates {
			if rng.Allows(other.ID.Version) {
				covered[j] = true
			}
		}
		clause := NewSdkGateClause(ref, rng)
		AddClause(s, clause)
		added = append(added, clause)
	}
	return added
}
