package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/internal/types"
)

func TestLockfileFileAdapter_ReadMissingFileReturnsEmptyLockfile(t *testing.T) {
	lock, err := NewLockfileFileAdapter().Read(filepath.Join(t.TempDir(), "missing.lock"))
	require.NoError(t, err)
	require.Empty(t, lock.Packages)
}

func TestLockfileFileAdapter_WriteThenReadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.lock")
	adapter := NewLockfileFileAdapter()

	result := types.SolveResult{
		Root: "sample-app",
		Packages: []types.PackageId{
			{Ref: types.PackageRef{Name: "foo", Source: types.SourceHosted}, Version: types.MustParseVersion("1.1.0")},
			{Ref: types.PackageRef{Name: "bar", Source: types.SourceHosted}, Version: types.MustParseVersion("2.0.0")},
		},
	}
	require.NoError(t, adapter.Write(path, result))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "sample-app")

	lock, err := adapter.Read(path)
	require.NoError(t, err)
	require.Equal(t, "sample-app", lock.Root)

	foo, ok := lock.VersionFor("foo")
	require.True(t, ok)
	require.Equal(t, "1.1.0", foo.Version.String())

	bar, ok := lock.VersionFor("bar")
	require.True(t, ok)
	require.Equal(t, "2.0.0", bar.Version.String())

	_, ok = lock.VersionFor("missing")
	require.False(t, ok)
}
