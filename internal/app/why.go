package app

import (
	"context"
	"fmt"

	"depsolve/internal/types"
)

// Why explains why a resolved package is at its locked version: which
// direct dependency named it, and which other resolved packages also
// require it.
func (s Service) Why(ctx context.Context, req WhyRequest) (WhyResponse, error) {
	manifest, err := s.ManifestLoader.Load(req.ManifestPath)
	if err != nil {
		return WhyResponse{}, err
	}
	oracle, err := oracleFor(req.RegistryPath, req.RegistryURL)
	if err != nil {
		return WhyResponse{}, err
	}

	var lock types.Lockfile
	if req.LockfilePath != "" {
		lock, err = s.LockReader.Read(req.LockfilePath)
		if err != nil {
			return WhyResponse{}, err
		}
	}
	locked, ok := lock.VersionFor(req.Package)
	if !ok {
		return WhyResponse{}, fmt.Errorf("%s is not in the lockfile; run a solve first", req.Package)
	}

	var lines []string
	for _, dep := range manifest.AllDependencies() {
		if dep.Ref.Name == req.Package {
			lines = append(lines, fmt.Sprintf("%s is a direct dependency allowing %s", req.Package, dep.Constraint.String()))
		}
	}

	for _, other := range lock.Packages {
		if other.Ref.Name == req.Package {
			continue
		}
		spec, err := oracle.Pubspec(ctx, types.PackageId{Ref: other.Ref, Version: other.Version, RawVersion: other.RawVersion})
		if err != nil {
			continue
		}
		for _, dep := range spec.Dependencies {
			if dep.Ref.Name == req.Package {
				lines = append(lines, fmt.Sprintf("%s requires %s %s", other.Ref.String(), req.Package, dep.Constraint.String()))
			}
		}
	}

	if len(lines) == 0 {
		lines = append(lines, fmt.Sprintf("%s@%s is locked but nothing in the current manifest still depends on it", req.Package, locked.RawVersion))
	}
	return WhyResponse{Package: req.Package, Lines: lines}, nil
}
