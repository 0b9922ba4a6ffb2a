package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/types"
)

func versions(values ...string) []types.Version {
	out := make([]types.Version, len(values))
	for i, v := range values {
		out[i] = types.MustParseVersion(v)
	}
	return out
}

func constraintFrom(t *testing.T, s string) types.VersionConstraint {
	t.Helper()
	c, err := types.ParseConstraint(s)
	require.NoError(t, err)
	return c
}

// Maximize must rewrite a constraint into the minimal union of ranges that
// admits exactly the base versions the input already covers: one run of
// contiguous base versions becomes one range, and a gap in the admitted
// base versions becomes a second, disjoint range.
func TestNormalizer_MaximizeCoversExactlyTheAdmittedBase(t *testing.T) {
	base := versions("1.0.0", "2.0.0", "3.0.0")
	norm := NewNormalizer(base)

	caret := norm.Maximize(constraintFrom(t, "^1.0.0"))
	require.Len(t, caret.Ranges(), 1)
	require.True(t, caret.Allows(types.MustParseVersion("1.0.0")))
	require.False(t, caret.Allows(types.MustParseVersion("2.0.0")))

	twoPoints := norm.Maximize(types.NewConstraint(types.ExactRange(types.MustParseVersion("1.0.0")), types.ExactRange(types.MustParseVersion("2.0.0"))))
	require.Len(t, twoPoints.Ranges(), 1)
	require.True(t, twoPoints.Allows(types.MustParseVersion("1.0.0")))
	require.True(t, twoPoints.Allows(types.MustParseVersion("2.0.0")))
	require.False(t, twoPoints.Allows(types.MustParseVersion("3.0.0")))

	split := norm.Maximize(types.NewConstraint(types.ExactRange(types.MustParseVersion("1.0.0")), types.ExactRange(types.MustParseVersion("3.0.0"))))
	require.Len(t, split.Ranges(), 2)
	require.True(t, split.Allows(types.MustParseVersion("1.0.0")))
	require.True(t, split.Allows(types.MustParseVersion("3.0.0")))
	require.False(t, split.Allows(types.MustParseVersion("2.0.0")))
}

// Maximize is idempotent: maximizing an already-maximized constraint must
// return an equal value so clauses compare by value, not syntactic form.
func TestNormalizer_MaximizeIsIdempotent(t *testing.T) {
	base := versions("1.0.0", "1.5.0", "2.0.0")
	norm := NewNormalizer(base)

	once := norm.Maximize(constraintFrom(t, ">=1.0.0"))
	twice := norm.Maximize(once)
	require.True(t, once.Equal(twice))
}

func TestNormalizer_CandidatesFiltersToAllowedBaseVersions(t *testing.T) {
	base := versions("1.0.0", "1.0.1", "2.0.0")
	norm := NewNormalizer(base)

	got := norm.Candidates(constraintFrom(t, "^1.0.0"))
	require.Len(t, got, 2)
	require.Equal(t, "1.0.0", got[0].String())
	require.Equal(t, "1.0.1", got[1].String())
}

// describeNearestVersions must name the closest published versions around
// an unsatisfiable constraint's gap, using only versions that actually
// exist in the catalog.
func TestDescribeNearestVersions_NamesClosestPublishedVersions(t *testing.T) {
	base := versions("1.0.0", "1.5.0", "3.0.0")
	norm := NewNormalizer(base)

	msg := describeNearestVersions(norm, constraintFrom(t, ">=2.0.0 <2.5.0"))
	require.Contains(t, msg, "1.5.0")
	require.Contains(t, msg, "3.0.0")
}

// A range NormalizeRange can still satisfy against the catalog contributes
// no gap commentary.
func TestDescribeNearestVersions_EmptyWhenRangeIsSatisfiable(t *testing.T) {
	base := versions("1.0.0", "2.0.0")
	norm := NewNormalizer(base)

	require.Empty(t, describeNearestVersions(norm, constraintFrom(t, "^1.0.0")))
}

// withTerm idempotence: applying the same term twice must equal applying it
// once.
func TestConstraint_WithTermIsIdempotent(t *testing.T) {
	ref := types.PackageRef{Name: "foo", Source: types.SourceHosted}
	c := NewConstraint(ref)
	term := NewTerm(ref, constraintFrom(t, "^1.0.0"))

	once := c.WithTerm(term)
	twice := once.WithTerm(term)

	require.True(t, once.Positive.Equal(twice.Positive))
	require.True(t, once.Negative.Equal(twice.Negative))
}

func TestConstraint_RelationReflectsRemainingVersions(t *testing.T) {
	ref := types.PackageRef{Name: "foo", Source: types.SourceHosted}
	c := NewConstraint(ref).WithTerm(NewTerm(ref, constraintFrom(t, "^1.0.0")))

	require.Equal(t, RelationTrue, c.Relation(NewTerm(ref, constraintFrom(t, ">=1.0.0"))))
	require.Equal(t, RelationFalse, c.Relation(NewTerm(ref, constraintFrom(t, ">=2.0.0"))))
	require.Equal(t, RelationUndetermined, c.Relation(NewTerm(ref, constraintFrom(t, "1.0.0"))))
}

func TestConstraint_IsContradictionWhenNoVersionRemains(t *testing.T) {
	ref := types.PackageRef{Name: "foo", Source: types.SourceHosted}
	c := NewConstraint(ref).
		WithTerm(NewTerm(ref, constraintFrom(t, "^1.0.0"))).
		WithTerm(NewNegativeTerm(ref, types.Any()))

	require.True(t, c.IsContradiction())
}
