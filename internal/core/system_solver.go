package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/crillab/gophersat/solver"

	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// SystemSolver resolves "system"-sourced packages (apt, pip) as one batch
// SAT problem instead of running them through the CDCL decision loop: their
// version ordering is foreign (dpkg, PEP 440), their dependency specs carry
// "|" alternation the hosted model has no notion of, and a single SAT pass
// over the whole closure is both simpler and exactly how a real apt/pip
// solver is built.
type SystemSolver struct {
	ctx     context.Context
	catalog ports.SystemCatalog
	family  systemVersionFamily
}

// NewSystemSolver builds a SystemSolver backed by catalog, whose raw
// versions are ordered according to family.
func NewSystemSolver(ctx context.Context, catalog ports.SystemCatalog, family systemVersionFamily) *SystemSolver {
	return &SystemSolver{ctx: ctx, catalog: catalog, family: family}
}

// ResolveSystemPackages is the entry point the top-level Solver calls for
// the "system" partition of a dependency graph. One version ordering is used
// for the whole call: PEP 440 if any root is a pip package, dpkg otherwise.
func ResolveSystemPackages(ctx context.Context, catalog ports.SystemCatalog, roots []types.PackageRef) ([]types.PackageId, error) {
	family := systemFamilyDeb
	for _, r := range roots {
		if r.Description == "pip" {
			family = systemFamilyPep440
			break
		}
	}
	return NewSystemSolver(ctx, catalog, family).Resolve(roots)
}

type systemVar struct {
	name    string
	version string
}

// Resolve finds one version per package reachable from roots, honoring
// every dependency alternative, and preferring the most recent version of
// each package when more than one assignment satisfies the demand clauses.
func (sv *SystemSolver) Resolve(roots []types.PackageRef) ([]types.PackageId, error) {
	versionsByName := map[string][]string{}
	manifestsByName := map[string]map[string]ports.SystemManifest{}

	queue := append([]types.PackageRef(nil), roots...)
	seen := map[string]bool{}
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		if seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true

		raw, err := sv.catalog.RawVersions(sv.ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("list versions for %s: %w", ref.Name, err)
		}
		sorted, err := sortSystemVersions(sv.family, raw)
		if err != nil {
			return nil, fmt.Errorf("order versions for %s: %w", ref.Name, err)
		}
		versionsByName[ref.Name] = sorted
		manifestsByName[ref.Name] = map[string]ports.SystemManifest{}

		for _, v := range sorted {
			manifest, err := sv.catalog.RawPubspec(sv.ctx, ref, v)
			if err != nil {
				return nil, fmt.Errorf("read manifest for %s %s: %w", ref.Name, v, err)
			}
			manifestsByName[ref.Name][v] = manifest
			for _, dep := range manifest.Dependencies {
				for _, alt := range dep.Alternatives {
					queue = append(queue, types.PackageRef{Name: alt.Name, Source: types.SourceSystem})
				}
			}
		}
	}

	vars, varID, costs := buildSystemVars(versionsByName)
	if len(vars) == 0 {
		return nil, nil
	}

	clauses := buildSystemClauses(versionsByName, manifestsByName, roots, varID, sv.family)

	problem, err := solver.ParseSliceNb(clauses, len(vars))
	if err != nil {
		return nil, fmt.Errorf("build system sat problem: %w", err)
	}
	problem.SetCostFunc(costs)

	s := solver.New(problem)
	if status := s.Solve(); status != solver.Sat {
		return nil, fmt.Errorf("no assignment satisfies the requested system packages")
	}
	s.Minimize()
	model := s.Model()

	var out []types.PackageId
	for name, versions := range versionsByName {
		for _, v := range versions {
			idx := varID[systemVar{name: name, version: v}]
			if idx-1 >= len(model) || !model[idx-1] {
				continue
			}
			id := types.PackageId{Ref: types.PackageRef{Name: name, Source: types.SourceSystem}, RawVersion: v}
			if parsed, err := types.ParseVersion(v); err == nil {
				id.Version = parsed
			}
			out = append(out, id)
			break
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref.Name < out[j].Ref.Name })
	return out, nil
}

// buildSystemVars assigns one 1-based SAT variable per (package, version)
// pair and a cost that favors later versions: the newest version of a
// package costs 0, each older version costs one more than the version
// above it, so Minimize prefers the newest candidate that still satisfies
// every clause.
func buildSystemVars(versionsByName map[string][]string) ([]systemVar, map[systemVar]int, []int) {
	var vars []systemVar
	varID := map[systemVar]int{}
	var costs []int
	for name, versions := range versionsByName {
		for i, v := range versions {
			sv := systemVar{name: name, version: v}
			vars = append(vars, sv)
			varID[sv] = len(vars)
			costs = append(costs, i)
		}
	}
	return vars, varID, costs
}

func buildSystemClauses(
	versionsByName map[string][]string,
	manifestsByName map[string]map[string]ports.SystemManifest,
	roots []types.PackageRef,
	varID map[systemVar]int,
	family systemVersionFamily,
) [][]int {
	var clauses [][]int

	for name, versions := range versionsByName {
		for i := range versions {
			for j := i + 1; j < len(versions); j++ {
				a := varID[systemVar{name: name, version: versions[i]}]
				b := varID[systemVar{name: name, version: versions[j]}]
				clauses = append(clauses, []int{-a, -b})
			}
		}
	}

	for _, root := range roots {
		var demand []int
		for _, v := range versionsByName[root.Name] {
			demand = append(demand, varID[systemVar{name: root.Name, version: v}])
		}
		if len(demand) > 0 {
			clauses = append(clauses, demand)
		}
	}

	for name, versions := range versionsByName {
		for _, v := range versions {
			manifest := manifestsByName[name][v]
			from := varID[systemVar{name: name, version: v}]
			for _, dep := range manifest.Dependencies {
				clause := []int{-from}
				for _, alt := range dep.Alternatives {
					for _, candidateVersion := range versionsByName[alt.Name] {
						ok, err := satisfiesSystemConstraint(family, candidateVersion, alt.Op, alt.Version)
						if err != nil || !ok {
							continue
						}
						clause = append(clause, varID[systemVar{name: alt.Name, version: candidateVersion}])
					}
				}
				if len(clause) > 1 {
					clauses = append(clauses, clause)
				}
			}
		}
	}

	return clauses
}
