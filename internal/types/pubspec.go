package types

// SdkVersions describes the concrete SDK environment the solve must satisfy:
// the runtime SDK (always present) and an optional platform SDK layered on
// top of it, mirroring a Dart/Flutter pair.
type SdkVersions struct {
	Runtime  Version
	Platform *Version
}

// HasPlatform reports whether a platform SDK version was supplied.
func (s SdkVersions) HasPlatform() bool { return s.Platform != nil }

// Pubspec is the manifest a candidate package version publishes: its
// dependencies and the SDK constraints it requires to be installable.
type Pubspec struct {
	ID                       PackageId
	Dependencies             []PackageDep
	RuntimeSDKConstraint     VersionConstraint
	PlatformSDKConstraint    VersionConstraint
	HasPlatformSDKConstraint bool
}

// AllowsSdks reports whether the environment's SDK versions satisfy this
// manifest's declared SDK constraints.
func (p Pubspec) AllowsSdks(sdks SdkVersions) bool {
	if !p.RuntimeSDKConstraint.IsEmpty() && !p.RuntimeSDKConstraint.Allows(sdks.Runtime) {
		return false
	}
	if p.HasPlatformSDKConstraint {
		if !sdks.HasPlatform() {
			return false
		}
		if !p.PlatformSDKConstraint.Allows(*sdks.Platform) {
			return false
		}
	}
	return true
}
