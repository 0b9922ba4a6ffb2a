package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/types"
)

func refFor(name string) types.PackageRef {
	return types.PackageRef{Name: name, Source: types.SourceHosted}
}

// Backjump must land one level below the most recent decision level among a
// conflict's implicators, drop every decision past that level, and learn a
// clause that rules the surviving combination out.
func TestBackjump_TruncatesToSecondMostRecentDecisionLevel(t *testing.T) {
	s := NewState()
	idA := types.PackageId{Ref: refFor("a"), Version: types.MustParseVersion("1.0.0")}
	idB := types.PackageId{Ref: refFor("b"), Version: types.MustParseVersion("1.0.0")}

	require.Nil(t, Decide(s, idA))
	require.Nil(t, Decide(s, idB))
	require.Equal(t, 2, s.Level())
	require.Len(t, s.Decisions(), 2)

	conflict := &Clause{
		Kind: ClauseProhibition,
		Terms: []Term{
			NewNegativeTerm(idA.Ref, types.Exact(idA.Version)),
			NewNegativeTerm(idB.Ref, types.Exact(idB.Version)),
		},
	}

	learned, level, ok := Backjump(s, conflict)
	require.True(t, ok)
	require.Equal(t, 1, level)
	require.Equal(t, 1, s.Level())
	require.Len(t, s.Decisions(), 1)
	require.Equal(t, "a", s.Decisions()[0].Id.Ref.Name)

	names := learned.Names()
	require.Contains(t, names, "a")
	require.Contains(t, names, "b")
	require.Same(t, conflict, learned.Cause1)
}

// A decision made between the two implicators of a conflict, but unrelated
// to either, must survive the backjump: only the most recent implicator is
// undone, not everything decided after the first one.
func TestBackjump_PreservesUnrelatedInterveningDecision(t *testing.T) {
	s := NewState()
	idA := types.PackageId{Ref: refFor("a"), Version: types.MustParseVersion("1.0.0")}
	idC := types.PackageId{Ref: refFor("c"), Version: types.MustParseVersion("1.0.0")}
	idB := types.PackageId{Ref: refFor("b"), Version: types.MustParseVersion("1.0.0")}

	require.Nil(t, Decide(s, idA))
	require.Nil(t, Decide(s, idC))
	require.Nil(t, Decide(s, idB))
	require.Equal(t, 3, s.Level())

	conflict := &Clause{
		Kind: ClauseProhibition,
		Terms: []Term{
			NewNegativeTerm(idA.Ref, types.Exact(idA.Version)),
			NewNegativeTerm(idB.Ref, types.Exact(idB.Version)),
		},
	}

	learned, level, ok := Backjump(s, conflict)
	require.True(t, ok)
	require.Equal(t, 2, level)
	require.Equal(t, 2, s.Level())

	names := make([]string, 0, len(s.Decisions()))
	for _, d := range s.Decisions() {
		names = append(names, d.Id.Ref.Name)
	}
	require.Equal(t, []string{"a", "c"}, names)

	learnedNames := learned.Names()
	require.Contains(t, learnedNames, "a")
	require.Contains(t, learnedNames, "b")
	require.NotContains(t, learnedNames, "c")
}

// A conflict whose implicators trace back to no decision at all means the
// root requirements themselves are unsatisfiable; Backjump must report that
// rather than pick an arbitrary level.
func TestBackjump_ReturnsNotOkWhenNoDecisionContributed(t *testing.T) {
	s := NewState()
	conflict := &Clause{
		Kind:  ClauseNoVersions,
		Terms: []Term{NewNegativeTerm(refFor("ghost"), types.Any())},
	}

	learned, _, ok := Backjump(s, conflict)
	require.False(t, ok)
	require.Nil(t, learned)
}
