package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/adapters"
	"depsolve/internal/types"
)

func constraintMust(t *testing.T, s string) types.VersionConstraint {
	t.Helper()
	c, err := types.ParseConstraint(s)
	require.NoError(t, err)
	return c
}

// A root manifest declaring its own runtime SDK requirement must be gated
// against the environment's SDK versions before any package is decided, the
// same way a candidate package's own Pubspec.AllowsSdks gates it.
func TestSolve_FailsWhenRootManifestSdkConstraintIsUnmet(t *testing.T) {
	root := types.RootManifest{
		Name:                 "sample-app",
		RuntimeSDKConstraint: constraintMust(t, ">=3.0.0"),
	}
	oracle := adapters.NewMemoryOracle()
	sv := NewSolver(context.Background(), oracle, nil, types.SdkVersions{Runtime: types.MustParseVersion("2.18.0")}, types.SolveGet, nil, root, types.Lockfile{})

	result, failure, err := sv.Solve()
	require.NoError(t, err)
	require.NotNil(t, failure)
	require.Empty(t, result.Packages)
	require.Contains(t, failure.Summary, "sample-app")
}

// A dependency the oracle has never heard of must not crash the resolve: it
// is learned as a prohibition on that package entirely, and solving
// continues (or fails cleanly with an explanation) rather than returning a
// bare error.
func TestSolve_TreatsUnknownPackageAsProhibitionNotFatalError(t *testing.T) {
	root := types.RootManifest{
		Name: "sample-app",
		Dependencies: []types.PackageDep{
			{Ref: types.PackageRef{Name: "ghost", Source: types.SourceHosted}, Constraint: constraintMust(t, "^1.0.0")},
		},
	}
	oracle := adapters.NewMemoryOracle()
	sv := NewSolver(context.Background(), oracle, nil, types.SdkVersions{}, types.SolveGet, nil, root, types.Lockfile{})

	result, failure, err := sv.Solve()
	require.NoError(t, err)
	require.NotNil(t, failure)
	require.Empty(t, result.Packages)
}

func TestSolve_SucceedsWhenRootManifestSdkConstraintIsMet(t *testing.T) {
	foo := types.Pubspec{
		ID: types.PackageId{
			Ref:     types.PackageRef{Name: "foo", Source: types.SourceHosted},
			Version: types.MustParseVersion("1.0.0"),
		},
	}
	root := types.RootManifest{
		Name:                 "sample-app",
		RuntimeSDKConstraint: constraintMust(t, ">=2.0.0"),
		Dependencies: []types.PackageDep{
			{Ref: foo.ID.Ref, Constraint: constraintMust(t, "^1.0.0")},
		},
	}
	oracle := adapters.NewMemoryOracle(foo)
	sv := NewSolver(context.Background(), oracle, nil, types.SdkVersions{Runtime: types.MustParseVersion("2.18.0")}, types.SolveGet, nil, root, types.Lockfile{})

	result, failure, err := sv.Solve()
	require.NoError(t, err)
	require.Nil(t, failure)
	require.Len(t, result.Packages, 1)
	require.Equal(t, "1.0.0", result.Packages[0].Version.String())
}

// A root requiring a range no published version satisfies must explain the
// gap using actual catalog versions rather than the unresolved request.
func TestSolve_NoVersionsFailureNamesNearestPublishedVersions(t *testing.T) {
	old := types.Pubspec{ID: types.PackageId{Ref: types.PackageRef{Name: "foo", Source: types.SourceHosted}, Version: types.MustParseVersion("1.0.0")}}
	newer := types.Pubspec{ID: types.PackageId{Ref: types.PackageRef{Name: "foo", Source: types.SourceHosted}, Version: types.MustParseVersion("3.0.0")}}
	root := types.RootManifest{
		Name: "sample-app",
		Dependencies: []types.PackageDep{
			{Ref: old.ID.Ref, Constraint: constraintMust(t, ">=2.0.0 <2.5.0")},
		},
	}
	oracle := adapters.NewMemoryOracle(old, newer)
	sv := NewSolver(context.Background(), oracle, nil, types.SdkVersions{}, types.SolveGet, nil, root, types.Lockfile{})

	result, failure, err := sv.Solve()
	require.NoError(t, err)
	require.NotNil(t, failure)
	require.Empty(t, result.Packages)
	require.Contains(t, strings.Join(failure.Explanation, "\n"), "1.0.0")
}
