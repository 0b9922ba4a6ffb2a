package adapters

import (
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// registryFile is the yaml shape of an offline registry snapshot: one
// entry per published package version, with its own dependencies and SDK
// constraints inlined.
type registryFile struct {
	Packages []registryPackage `yaml:"packages"`
}

type registryPackage struct {
	Name         string                 `yaml:"name"`
	Version      string                 `yaml:"version"`
	Dependencies map[string]string      `yaml:"dependencies"`
	Environment  map[string]string      `yaml:"environment"`
}

// RegistryFileAdapter serves package versions and manifests from a single
// offline yaml snapshot, the module's equivalent of a vendored pub cache.
type RegistryFileAdapter struct {
	Path   string
	loaded bool
	byName map[string][]types.Pubspec
}

func NewRegistryFileAdapter(path string) *RegistryFileAdapter {
	return &RegistryFileAdapter{Path: path}
}

func (a *RegistryFileAdapter) ensureLoaded() error {
	if a.loaded {
		return nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("registry file not found").
			WithCause(err)
	}
	var raw registryFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse registry yaml").
			WithCause(err)
	}
	a.byName = map[string][]types.Pubspec{}
	for _, p := range raw.Packages {
		spec, err := toPubspec(p)
		if err != nil {
			return err
		}
		a.byName[p.Name] = append(a.byName[p.Name], spec)
	}
	a.loaded = true
	return nil
}

func toPubspec(p registryPackage) (types.Pubspec, error) {
	version, err := types.ParseVersion(p.Version)
	if err != nil {
		return types.Pubspec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid version for " + p.Name).
			WithCause(err)
	}
	spec := types.Pubspec{
		ID: types.PackageId{Ref: types.PackageRef{Name: p.Name, Source: types.SourceHosted}, Version: version, RawVersion: p.Version},
	}
	for name, constraintStr := range p.Dependencies {
		constraint, err := types.ParseConstraint(constraintStr)
		if err != nil {
			return types.Pubspec{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid constraint for %s's dependency %s", p.Name, name)).
				WithCause(err)
		}
		spec.Dependencies = append(spec.Dependencies, types.PackageDep{
			Ref:        types.PackageRef{Name: name, Source: types.SourceHosted},
			Constraint: constraint,
			Type:       types.DependencyDirect,
		})
	}
	if runtime, ok := p.Environment["runtime"]; ok {
		constraint, err := types.ParseConstraint(runtime)
		if err != nil {
			return types.Pubspec{}, err
		}
		spec.RuntimeSDKConstraint = constraint
	}
	if platform, ok := p.Environment["platform"]; ok {
		constraint, err := types.ParseConstraint(platform)
		if err != nil {
			return types.Pubspec{}, err
		}
		spec.PlatformSDKConstraint = constraint
		spec.HasPlatformSDKConstraint = true
	}
	return spec, nil
}

func (a *RegistryFileAdapter) Versions(_ context.Context, ref types.PackageRef) ([]types.Version, error) {
	if err := a.ensureLoaded(); err != nil {
		return nil, err
	}
	specs, ok := a.byName[ref.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, ref.Name)
	}
	out := make([]types.Version, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.ID.Version)
	}
	return out, nil
}

func (a *RegistryFileAdapter) Pubspec(_ context.Context, id types.PackageId) (types.Pubspec, error) {
	if err := a.ensureLoaded(); err != nil {
		return types.Pubspec{}, err
	}
	for _, s := range a.byName[id.Ref.Name] {
		if s.ID.Version.Equal(id.Version) {
			return s, nil
		}
	}
	return types.Pubspec{}, fmt.Errorf("%w: %s@%s", ErrPackageNotFound, id.Ref.Name, id.Version.String())
}

var _ ports.VersionOracle = (*RegistryFileAdapter)(nil)
