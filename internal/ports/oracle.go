package ports

import (
	"context"
	"errors"

	"depsolve/internal/types"
)

// ErrPackageNotFound is the sentinel an oracle or catalog wraps when a
// package name has no entry at all in the backing source. core checks
// against this value to turn a missing package into a prohibition clause
// instead of a fatal error.
var ErrPackageNotFound = errors.New("package not found")

// VersionOracle answers what versions exist for a package and what each
// version's manifest declares. Hosted, git and path sources all implement
// it the same way from the solver's point of view.
type VersionOracle interface {
	Versions(ctx context.Context, ref types.PackageRef) ([]types.Version, error)
	Pubspec(ctx context.Context, id types.PackageId) (types.Pubspec, error)
}

// SystemCatalog answers the same questions VersionOracle does, but for
// "system"-sourced packages whose versions are ordered by a foreign scheme
// (dpkg, PEP 440) instead of semver.
type SystemCatalog interface {
	RawVersions(ctx context.Context, ref types.PackageRef) ([]string, error)
	RawPubspec(ctx context.Context, ref types.PackageRef, rawVersion string) (SystemManifest, error)
}

// SystemManifest is a system package's declared dependencies, each given as
// an unparsed name plus a foreign constraint expression (e.g. ">= 1.2").
type SystemManifest struct {
	Name         string
	RawVersion   string
	Dependencies []SystemDependency
}

// SystemDependency is one unparsed dependency edge from a system package's
// manifest, along with the alternatives a package manager would try in
// order (apt's "|" alternation).
type SystemDependency struct {
	Alternatives []SystemDependencySpec
}

// SystemDependencySpec is a single name/operator/version clause.
type SystemDependencySpec struct {
	Name    string
	Op      string
	Version string
}
