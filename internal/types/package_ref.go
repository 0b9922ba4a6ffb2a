package types

// SourceKind identifies where a package comes from and, by extension, which
// version comparator governs it. Hosted, git and path packages share the
// semver ordering used by the solver core. System packages carry foreign
// version strings (Debian, PEP 440) and are resolved by a separate batch
// solver before the core ever sees them.
type SourceKind string

const (
	SourceHosted SourceKind = "hosted"
	SourceGit    SourceKind = "git"
	SourcePath   SourceKind = "path"
	SourceSystem SourceKind = "system"
)

// PackageRef identifies a package independent of any particular version:
// its name, where it comes from, and a source-specific description (a git
// URL and ref, a filesystem path, a registry host, an apt/pip index).
type PackageRef struct {
	Name        string
	Source      SourceKind
	Description string
}

// SamePackage reports whether two refs name the same underlying package. A
// name collision across sources or descriptions is not the same package: a
// hosted "sensor-driver" and a path-override "sensor-driver" are distinct
// candidates until an override unifies them.
func (r PackageRef) SamePackage(other PackageRef) bool {
	return r.Name == other.Name && r.Source == other.Source && r.Description == other.Description
}

func (r PackageRef) String() string {
	if r.Description == "" {
		return string(r.Source) + ":" + r.Name
	}
	return string(r.Source) + ":" + r.Name + "@" + r.Description
}

// PackageId is a fully resolved package: a ref pinned to one concrete
// version. RawVersion preserves the original version string for system
// packages, whose native ordering (dpkg, PEP 440) does not always round-trip
// cleanly through the semver envelope stored in Version.
type PackageId struct {
	Ref        PackageRef
	Version    Version
	RawVersion string
}

func (p PackageId) String() string {
	v := p.Version.String()
	if v == "" {
		v = p.RawVersion
	}
	return p.Ref.String() + "@" + v
}

// Equal reports whether two ids name the same package at the same version.
func (p PackageId) Equal(other PackageId) bool {
	return p.Ref.SamePackage(other.Ref) && p.Version.Equal(other.Version) && p.RawVersion == other.RawVersion
}

// DependencyType distinguishes the dependency kinds a manifest can declare,
// mirroring a pubspec's dependencies / dev_dependencies / dependency_overrides
// split.
type DependencyType string

const (
	DependencyDirect   DependencyType = "direct"
	DependencyDev      DependencyType = "dev"
	DependencyOverride DependencyType = "override"
)

// PackageDep is a dependency edge: one package requiring another within a
// version constraint.
type PackageDep struct {
	Ref        PackageRef
	Constraint VersionConstraint
	Type       DependencyType
}

func (d PackageDep) String() string {
	return d.Ref.String() + " " + d.Constraint.String()
}

// SolveMode selects how the solver orders candidate versions when more than
// one choice satisfies the current constraints.
type SolveMode string

const (
	// SolveGet resolves to the highest version satisfying every constraint,
	// preferring stable releases over prereleases.
	SolveGet SolveMode = "get"
	// SolveUpgrade orders candidates exactly as SolveGet does; the only
	// difference is that the existing lockfile is not read.
	SolveUpgrade SolveMode = "upgrade"
	// SolveDowngrade resolves to the lowest version satisfying every
	// constraint.
	SolveDowngrade SolveMode = "downgrade"
)
