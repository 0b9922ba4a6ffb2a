package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/types"
)

func TestTerm_NegateFlipsPositivity(t *testing.T) {
	ref := refFor("foo")
	term := NewTerm(ref, types.Any())

	negated := term.Negate()
	require.False(t, negated.Positive)
	require.True(t, negated.Negate().Positive)
}

func TestNewRequirementClause_AssertsFromImpliesDep(t *testing.T) {
	from := types.PackageId{Ref: refFor("foo"), Version: types.MustParseVersion("1.0.0")}
	dep := types.PackageDep{Ref: refFor("bar"), Constraint: types.Any()}

	clause := NewRequirementClause(from, dep)
	require.Equal(t, ClauseRequirement, clause.Kind)
	require.Len(t, clause.Terms, 2)
	require.False(t, clause.Terms[0].Positive)
	require.True(t, clause.Terms[1].Positive)
	require.Equal(t, []string{"foo", "bar"}, clause.Names())
}

func TestNewDependencyClause_SameShapeDifferentKind(t *testing.T) {
	from := types.PackageId{Ref: refFor("foo"), Version: types.MustParseVersion("1.0.0")}
	dep := types.PackageDep{Ref: refFor("bar"), Constraint: types.Any()}

	clause := NewDependencyClause(from, dep)
	require.Equal(t, ClauseDependency, clause.Kind)
	require.Len(t, clause.Terms, 2)
}

func TestNewProhibitionClause_NegatesBothTerms(t *testing.T) {
	a := NewTerm(refFor("foo"), types.Exact(types.MustParseVersion("1.0.0")))
	b := NewTerm(refFor("bar"), types.Exact(types.MustParseVersion("2.0.0")))

	clause := NewProhibitionClause(a, b)
	require.Equal(t, ClauseProhibition, clause.Kind)
	require.False(t, clause.Terms[0].Positive)
	require.False(t, clause.Terms[1].Positive)
}

func TestClause_StringRendersEmptyClauseDistinctly(t *testing.T) {
	require.Equal(t, "<empty clause>", (&Clause{}).String())
}
