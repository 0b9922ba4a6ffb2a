package types

// OverrideAction mirrors the four ways a root manifest can force a
// dependency_overrides-style directive to win a conflict it would otherwise
// lose honestly.
type OverrideAction string

const (
	// OverrideForce replaces the constraint on the package with the
	// directive's own constraint, regardless of what other packages require.
	OverrideForce OverrideAction = "force"
	// OverrideRelax widens a package's own declared constraint on a
	// dependency without changing which package is installed.
	OverrideRelax OverrideAction = "relax"
	// OverrideReplace swaps the package for a different ref entirely (a
	// fork, a path dependency standing in for a hosted one).
	OverrideReplace OverrideAction = "replace"
	// OverrideBlock removes the package from consideration even if
	// something still depends on it.
	OverrideBlock OverrideAction = "block"
)

// OverrideDirective is one entry of a root manifest's dependency_overrides
// section.
type OverrideDirective struct {
	Ref         PackageRef
	Action      OverrideAction
	Constraint  VersionConstraint
	Replacement *PackageRef
}

// RootManifest is the package being solved for: its own direct and
// development dependencies, any overrides, and the SDK constraints it
// declares for itself.
type RootManifest struct {
	Name                     string
	Dependencies             []PackageDep
	DevDependencies          []PackageDep
	Overrides                []OverrideDirective
	RuntimeSDKConstraint     VersionConstraint
	PlatformSDKConstraint    VersionConstraint
	HasPlatformSDKConstraint bool
}

// AllowsSdks reports whether the environment's SDK versions satisfy the
// constraints the root manifest itself declares, mirroring how a candidate
// package's own Pubspec.AllowsSdks gates it.
func (m RootManifest) AllowsSdks(sdks SdkVersions) bool {
	if !m.RuntimeSDKConstraint.IsEmpty() && !m.RuntimeSDKConstraint.Allows(sdks.Runtime) {
		return false
	}
	if m.HasPlatformSDKConstraint {
		if !sdks.HasPlatform() {
			return false
		}
		if !m.PlatformSDKConstraint.Allows(*sdks.Platform) {
			return false
		}
	}
	return true
}

// AllDependencies returns direct and dev dependencies combined, the set the
// solver must satisfy together for a non-dependency-only solve.
func (m RootManifest) AllDependencies() []PackageDep {
	out := make([]PackageDep, 0, len(m.Dependencies)+len(m.DevDependencies))
	out = append(out, m.Dependencies...)
	out = append(out, m.DevDependencies...)
	return out
}

// OverrideFor returns the override directive targeting ref, if any.
func (m RootManifest) OverrideFor(ref PackageRef) (OverrideDirective, bool) {
	for _, o := range m.Overrides {
		if o.Ref.SamePackage(ref) {
			return o, true
		}
	}
	return OverrideDirective{}, false
}
