package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/adapters"
	"depsolve/internal/app"
	"depsolve/internal/types"
)

const sampleManifest = `
name: sample-app
dependencies:
  foo:
    version: "^1.0.0"
  bar:
    version: "^1.0.0"
environment:
  runtime: ">=2.12.0"
`

const sampleRegistry = `
packages:
  - name: foo
    version: 1.0.0
  - name: foo
    version: 1.1.0
    dependencies:
      bar: ">=1.0.0 <2.0.0"
  - name: bar
    version: 1.0.0
  - name: bar
    version: 1.2.0
`

type fixedSDKProbe struct{ versions types.SdkVersions }

func (p fixedSDKProbe) Probe() (types.SdkVersions, error) { return p.versions, nil }

// TestService_SolveWritesLockfile drives the full file-based path: load a
// manifest and an offline registry snapshot from disk, resolve, and persist
// the lockfile, then read it back and confirm it matches the resolve.
func TestService_SolveWritesLockfile(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")
	registryPath := filepath.Join(dir, "registry.yaml")
	lockPath := filepath.Join(dir, "manifest.lock")

	require.NoError(t, os.WriteFile(manifestPath, []byte(sampleManifest), 0o644))
	require.NoError(t, os.WriteFile(registryPath, []byte(sampleRegistry), 0o644))

	lockAdapter := adapters.NewLockfileFileAdapter()
	service := app.Service{
		ManifestLoader: adapters.NewManifestFileAdapter(),
		LockReader:     lockAdapter,
		LockWriter:     lockAdapter,
		SDKProbe:       fixedSDKProbe{versions: types.SdkVersions{Runtime: types.MustParseVersion("2.18.0")}},
		Output:         adapters.NewConsoleOutputAdapter(),
	}

	resp, err := service.Solve(context.Background(), app.SolveRequest{
		ManifestPath: manifestPath,
		LockfilePath: lockPath,
		RegistryPath: registryPath,
		Mode:         types.SolveGet,
	})
	require.NoError(t, err)
	require.Nil(t, resp.Failure)

	foo, ok := resp.Result.PackageByName("foo")
	require.True(t, ok)
	require.Equal(t, "1.1.0", foo.Version.String())

	bar, ok := resp.Result.PackageByName("bar")
	require.True(t, ok)
	require.Equal(t, "1.2.0", bar.Version.String())

	lock, err := lockAdapter.Read(lockPath)
	require.NoError(t, err)
	lockedFoo, ok := lock.VersionFor("foo")
	require.True(t, ok)
	require.Equal(t, "1.1.0", lockedFoo.Version.String())
}

// TestService_WhyExplainsDependencyEdge exercises the "why" path end to
// end: it must report bar as depended on by both the root and foo.
func TestService_WhyExplainsDependencyEdge(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")
	registryPath := filepath.Join(dir, "registry.yaml")
	lockPath := filepath.Join(dir, "manifest.lock")

	require.NoError(t, os.WriteFile(manifestPath, []byte(sampleManifest), 0o644))
	require.NoError(t, os.WriteFile(registryPath, []byte(sampleRegistry), 0o644))

	lockAdapter := adapters.NewLockfileFileAdapter()
	service := app.Service{
		ManifestLoader: adapters.NewManifestFileAdapter(),
		LockReader:     lockAdapter,
		LockWriter:     lockAdapter,
		SDKProbe:       fixedSDKProbe{versions: types.SdkVersions{Runtime: types.MustParseVersion("2.18.0")}},
		Output:         adapters.NewConsoleOutputAdapter(),
	}
	ctx := context.Background()
	_, err := service.Solve(ctx, app.SolveRequest{
		ManifestPath: manifestPath,
		LockfilePath: lockPath,
		RegistryPath: registryPath,
		Mode:         types.SolveGet,
	})
	require.NoError(t, err)

	why, err := service.Why(ctx, app.WhyRequest{
		ManifestPath: manifestPath,
		LockfilePath: lockPath,
		RegistryPath: registryPath,
		Package:      "bar",
	})
	require.NoError(t, err)
	require.NotEmpty(t, why.Lines)
	require.Len(t, why.Lines, 2)
	require.Contains(t, why.Lines[0], "direct dependency")
	require.Contains(t, why.Lines[1], "foo requires bar")
}
