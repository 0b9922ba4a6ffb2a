package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// manifestFile is the on-disk yaml shape of a root manifest, the module's
// equivalent of a pubspec.yaml.
type manifestFile struct {
	Name         string                      `yaml:"name"`
	Dependencies map[string]dependencyEntry  `yaml:"dependencies"`
	DevDeps      map[string]dependencyEntry  `yaml:"dev_dependencies"`
	Overrides    map[string]overrideEntry    `yaml:"dependency_overrides"`
	Environment  map[string]string           `yaml:"environment"`
}

type dependencyEntry struct {
	Version string `yaml:"version"`
	Source  string `yaml:"source"`
	Path    string `yaml:"path"`
	Git     string `yaml:"git"`
}

type overrideEntry struct {
	Action      string `yaml:"action"`
	Version     string `yaml:"version"`
	Replacement string `yaml:"replacement"`
	Source      string `yaml:"source"`
}

// ManifestFileAdapter loads a root manifest from a yaml file on disk.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) Load(path string) (types.RootManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RootManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return types.RootManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse manifest yaml").
			WithCause(err)
	}

	manifest := types.RootManifest{Name: raw.Name}
	for name, entry := range raw.Dependencies {
		dep, err := toPackageDep(name, entry, types.DependencyDirect)
		if err != nil {
			return types.RootManifest{}, err
		}
		manifest.Dependencies = append(manifest.Dependencies, dep)
	}
	for name, entry := range raw.DevDeps {
		dep, err := toPackageDep(name, entry, types.DependencyDev)
		if err != nil {
			return types.RootManifest{}, err
		}
		manifest.DevDependencies = append(manifest.DevDependencies, dep)
	}
	for name, entry := range raw.Overrides {
		directive, err := toOverrideDirective(name, entry)
		if err != nil {
			return types.RootManifest{}, err
		}
		manifest.Overrides = append(manifest.Overrides, directive)
	}
	if runtime, ok := raw.Environment["runtime"]; ok {
		constraint, err := types.ParseConstraint(runtime)
		if err != nil {
			return types.RootManifest{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid environment.runtime constraint").
				WithCause(err)
		}
		manifest.RuntimeSDKConstraint = constraint
	}
	if platform, ok := raw.Environment["platform"]; ok {
		constraint, err := types.ParseConstraint(platform)
		if err != nil {
			return types.RootManifest{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid environment.platform constraint").
				WithCause(err)
		}
		manifest.PlatformSDKConstraint = constraint
		manifest.HasPlatformSDKConstraint = true
	}
	return manifest, nil
}

func toPackageDep(name string, entry dependencyEntry, depType types.DependencyType) (types.PackageDep, error) {
	ref := refFromEntry(name, entry.Source, entry.Path, entry.Git)
	constraint, err := types.ParseConstraint(entry.Version)
	if err != nil {
		return types.PackageDep{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid constraint for dependency " + name).
			WithCause(err)
	}
	return types.PackageDep{Ref: ref, Constraint: constraint, Type: depType}, nil
}

func toOverrideDirective(name string, entry overrideEntry) (types.OverrideDirective, error) {
	ref := refFromEntry(name, entry.Source, "", "")
	directive := types.OverrideDirective{Ref: ref}
	switch entry.Action {
	case "force":
		directive.Action = types.OverrideForce
	case "relax":
		directive.Action = types.OverrideRelax
	case "replace":
		directive.Action = types.OverrideReplace
	case "block":
		directive.Action = types.OverrideBlock
	default:
		return types.OverrideDirective{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown dependency_overrides action for " + name + ": " + entry.Action)
	}
	if entry.Version != "" {
		constraint, err := types.ParseConstraint(entry.Version)
		if err != nil {
			return types.OverrideDirective{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid override constraint for " + name).
				WithCause(err)
		}
		directive.Constraint = constraint
	}
	if entry.Replacement != "" {
		replacement := types.PackageRef{Name: entry.Replacement, Source: types.SourceHosted}
		directive.Replacement = &replacement
	}
	return directive, nil
}

func refFromEntry(name, source, path, git string) types.PackageRef {
	switch {
	case path != "":
		return types.PackageRef{Name: name, Source: types.SourcePath, Description: path}
	case git != "":
		return types.PackageRef{Name: name, Source: types.SourceGit, Description: git}
	case source == "system" || source == "apt" || source == "pip":
		desc := source
		if source == "system" {
			desc = "apt"
		}
		return types.PackageRef{Name: name, Source: types.SourceSystem, Description: desc}
	default:
		return types.PackageRef{Name: name, Source: types.SourceHosted}
	}
}

var _ ports.RootManifestPort = ManifestFileAdapter{}
