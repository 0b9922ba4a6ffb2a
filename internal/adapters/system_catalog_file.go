package adapters

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"depsolve/internal/ports"
	"depsolve/internal/shared"
	"depsolve/internal/types"
)

// systemCatalogFile is the yaml shape of an offline apt/pip catalog
// snapshot: one entry per package version, dependencies given as raw
// "name (op version) | alternate" strings the way a Debian control file
// writes them.
type systemCatalogFile struct {
	Packages []systemCatalogPackage `yaml:"packages"`
}

type systemCatalogPackage struct {
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version"`
	Dependencies []string `yaml:"dependencies"`
}

// SystemCatalogFileAdapter serves raw system-package versions and
// manifests from an offline yaml snapshot.
type SystemCatalogFileAdapter struct {
	Path   string
	loaded bool
	byName map[string][]systemCatalogPackage
}

func NewSystemCatalogFileAdapter(path string) *SystemCatalogFileAdapter {
	return &SystemCatalogFileAdapter{Path: path}
}

func (a *SystemCatalogFileAdapter) ensureLoaded() error {
	if a.loaded {
		return nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("system catalog file not found").
			WithCause(err)
	}
	var raw systemCatalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse system catalog yaml").
			WithCause(err)
	}
	a.byName = map[string][]systemCatalogPackage{}
	for _, p := range raw.Packages {
		a.byName[p.Name] = append(a.byName[p.Name], p)
	}
	a.loaded = true
	return nil
}

func (a *SystemCatalogFileAdapter) RawVersions(_ context.Context, ref types.PackageRef) ([]string, error) {
	if err := a.ensureLoaded(); err != nil {
		return nil, err
	}
	entries, ok := a.byName[ref.Name]
	if !ok && ref.Description == "pip" {
		entries, ok = a.byName[shared.NormalizePipName(ref.Name)]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, ref.Name)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Version)
	}
	return out, nil
}

func (a *SystemCatalogFileAdapter) RawPubspec(_ context.Context, ref types.PackageRef, rawVersion string) (ports.SystemManifest, error) {
	if err := a.ensureLoaded(); err != nil {
		return ports.SystemManifest{}, err
	}
	entries, ok := a.byName[ref.Name]
	if !ok && ref.Description == "pip" {
		entries = a.byName[shared.NormalizePipName(ref.Name)]
	}
	for _, e := range entries {
		if e.Version != rawVersion {
			continue
		}
		manifest := ports.SystemManifest{Name: e.Name, RawVersion: e.Version}
		for _, raw := range e.Dependencies {
			manifest.Dependencies = append(manifest.Dependencies, parseSystemDependency(raw))
		}
		return manifest, nil
	}
	return ports.SystemManifest{}, fmt.Errorf("%w: %s@%s", ErrPackageNotFound, ref.Name, rawVersion)
}

// parseSystemDependency parses a Debian-control-style dependency clause,
// e.g. "libfoo (>= 1.2) | libfoo-compat", into its ordered alternatives.
func parseSystemDependency(raw string) ports.SystemDependency {
	var dep ports.SystemDependency
	for _, alt := range strings.Split(raw, "|") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			continue
		}
		name := alt
		op, version := "", ""
		if open := strings.Index(alt, "("); open >= 0 {
			name = strings.TrimSpace(alt[:open])
			inner := strings.TrimSuffix(strings.TrimSpace(alt[open+1:]), ")")
			fields := strings.Fields(inner)
			if len(fields) == 2 {
				op, version = fields[0], fields[1]
			}
		}
		dep.Alternatives = append(dep.Alternatives, ports.SystemDependencySpec{Name: name, Op: op, Version: version})
	}
	return dep
}

var _ ports.SystemCatalog = (*SystemCatalogFileAdapter)(nil)
