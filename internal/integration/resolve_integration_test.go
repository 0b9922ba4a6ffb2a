package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/adapters"
	"depsolve/internal/core"
	"depsolve/internal/types"
)

func dep(name, constraint string) types.PackageDep {
	c, err := types.ParseConstraint(constraint)
	if err != nil {
		panic(err)
	}
	return types.PackageDep{Ref: types.PackageRef{Name: name, Source: types.SourceHosted}, Constraint: c}
}

func pubspec(name, version string, deps ...types.PackageDep) types.Pubspec {
	return types.Pubspec{
		ID: types.PackageId{
			Ref:     types.PackageRef{Name: name, Source: types.SourceHosted},
			Version: types.MustParseVersion(version),
		},
		Dependencies: deps,
	}
}

func runSolve(t *testing.T, oracle *adapters.MemoryOracle, root types.RootManifest, mode types.SolveMode, sdks types.SdkVersions) (types.SolveResult, *types.SolveFailure) {
	t.Helper()
	solver := core.NewSolver(context.Background(), oracle, nil, sdks, mode, nil, root, types.Lockfile{})
	result, failure, err := solver.Solve()
	require.NoError(t, err)
	return result, failure
}

// Scenario 1: root depends on foo ^1.0.0; oracle offers 1.0.0, 1.0.1, 2.0.0.
// A "get" solve must land on the highest version matching the caret range.
func TestResolve_PicksHighestMatchingCaretRange(t *testing.T) {
	oracle := adapters.NewMemoryOracle(
		pubspec("foo", "1.0.0"),
		pubspec("foo", "1.0.1"),
		pubspec("foo", "2.0.0"),
	)
	root := types.RootManifest{Name: "root", Dependencies: []types.PackageDep{dep("foo", "^1.0.0")}}

	result, failure := runSolve(t, oracle, root, types.SolveGet, types.SdkVersions{Runtime: types.MustParseVersion("3.0.0")})

	require.Nil(t, failure)
	got, ok := result.PackageByName("foo")
	require.True(t, ok)
	require.Equal(t, "1.0.1", got.Version.String())
}

// Scenario 2: root depends on foo ^1.0.0 and bar ^1.0.0; bar 1.0.0 requires
// foo ^2.0.0, which only foo 1.0.0 and 2.0.0 exist to satisfy, producing an
// unresolvable conflict between the root's own foo constraint and bar's.
func TestResolve_FailsOnTransitiveConflict(t *testing.T) {
	oracle := adapters.NewMemoryOracle(
		pubspec("foo", "1.0.0"),
		pubspec("foo", "2.0.0"),
		pubspec("bar", "1.0.0", dep("foo", "^2.0.0")),
	)
	root := types.RootManifest{Name: "root", Dependencies: []types.PackageDep{
		dep("foo", "^1.0.0"),
		dep("bar", "^1.0.0"),
	}}

	result, failure := runSolve(t, oracle, root, types.SolveGet, types.SdkVersions{Runtime: types.MustParseVersion("3.0.0")})

	require.Nil(t, result.Packages)
	require.NotNil(t, failure)
	require.NotEmpty(t, failure.Explanation)
}

// Scenario 3: foo 1.0.0 requires a runtime SDK the environment does not
// have, foo 0.9.0 does not; the solver must fall back to the version whose
// SDK constraint the environment actually satisfies.
func TestResolve_SkipsVersionFailingSdkGate(t *testing.T) {
	newer := pubspec("foo", "1.0.0")
	newer.RuntimeSDKConstraint = mustConstraint(">=3.0.0")
	older := pubspec("foo", "0.9.0")
	older.RuntimeSDKConstraint = mustConstraint(">=2.0.0")

	oracle := adapters.NewMemoryOracle(newer, older)
	root := types.RootManifest{Name: "root", Dependencies: []types.PackageDep{dep("foo", "any")}}

	result, failure := runSolve(t, oracle, root, types.SolveGet, types.SdkVersions{Runtime: types.MustParseVersion("2.18.0")})

	require.Nil(t, failure)
	got, ok := result.PackageByName("foo")
	require.True(t, ok)
	require.Equal(t, "0.9.0", got.Version.String())
}

// Scenario 4: downgrade mode must pick the lowest version satisfying the
// constraint rather than the highest.
func TestResolve_DowngradePicksLowestMatchingVersion(t *testing.T) {
	oracle := adapters.NewMemoryOracle(
		pubspec("foo", "1.0.0"),
		pubspec("foo", "1.1.0"),
		pubspec("foo", "2.0.0"),
	)
	root := types.RootManifest{Name: "root", Dependencies: []types.PackageDep{dep("foo", ">=1.0.0")}}

	result, failure := runSolve(t, oracle, root, types.SolveDowngrade, types.SdkVersions{Runtime: types.MustParseVersion("3.0.0")})

	require.Nil(t, failure)
	got, ok := result.PackageByName("foo")
	require.True(t, ok)
	require.Equal(t, "1.0.0", got.Version.String())
}

func mustConstraint(s string) types.VersionConstraint {
	c, err := types.ParseConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}
