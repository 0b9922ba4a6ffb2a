package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"depsolve/internal/policies"
	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// Solver runs a single CDCL solve: it owns the mutable State plus
// everything needed to answer "what versions exist" and "what does this
// version require" while the decision loop runs.
type Solver struct {
	ctx           context.Context
	oracle        ports.VersionOracle
	systemCatalog ports.SystemCatalog
	sdks          types.SdkVersions
	mode          types.SolveMode
	sink          ports.DecisionSink
	root          types.RootManifest
	lock          types.Lockfile

	state          *State
	normalizers    map[string]*Normalizer
	manifests      map[string][]types.Pubspec
	refs           map[string]types.PackageRef
	refOrder       []string
	sdkChecked     map[string]bool
	systemPackages []types.PackageId
	attempts       int
	maxAttempts    int
}

// NewSolver builds a Solver ready to run. sink and systemCatalog may be
// nil; systemCatalog is only consulted when the root manifest references a
// "system"-sourced dependency.
func NewSolver(ctx context.Context, oracle ports.VersionOracle, systemCatalog ports.SystemCatalog, sdks types.SdkVersions, mode types.SolveMode, sink ports.DecisionSink, root types.RootManifest, lock types.Lockfile) *Solver {
	return &Solver{
		ctx:           ctx,
		oracle:        oracle,
		systemCatalog: systemCatalog,
		sdks:          sdks,
		mode:          mode,
		sink:          sink,
		root:          root,
		lock:          lock,
		state:         NewState(),
		normalizers:   map[string]*Normalizer{},
		manifests:     map[string][]types.Pubspec{},
		refs:          map[string]types.PackageRef{},
		sdkChecked:    map[string]bool{},
		maxAttempts:   50_000,
	}
}

// Solve runs the decision loop to completion, returning either a resolved
// package set or a failure explanation.
func (sv *Solver) Solve() (types.SolveResult, *types.SolveFailure, error) {
	assert.NotEmpty(sv.ctx, sv.root.Name, "root manifest must declare a name")

	if !sv.root.AllowsSdks(sv.sdks) {
		return types.SolveResult{}, &types.SolveFailure{
			Summary:     fmt.Sprintf("%s requires an SDK environment the current one does not satisfy", sv.root.Name),
			Explanation: []string{fmt.Sprintf("%s needs runtime %s", sv.root.Name, sv.root.RuntimeSDKConstraint.String())},
		}, nil
	}

	var systemRoots []types.PackageRef
	for _, dep := range sv.root.AllDependencies() {
		dep = sv.applyOverride(dep)
		if dep.Ref.Source == types.SourceSystem {
			systemRoots = append(systemRoots, dep.Ref)
			continue
		}
		sv.registerRef(dep.Ref)
		clause := NewFact(ClauseRequirement, NewTerm(dep.Ref, dep.Constraint))
		if conflict := AddClause(sv.state, clause); conflict != nil {
			return types.SolveResult{}, sv.explain(conflict), nil
		}
	}
	if len(systemRoots) > 0 {
		if sv.systemCatalog == nil {
			return types.SolveResult{}, nil, fmt.Errorf("root manifest references system packages but no system catalog was configured")
		}
		packages, err := ResolveSystemPackages(sv.ctx, sv.systemCatalog, systemRoots)
		if err != nil {
			return types.SolveResult{}, nil, fmt.Errorf("resolve system packages: %w", err)
		}
		sv.systemPackages = packages
	}
	for _, o := range sv.root.Overrides {
		if o.Action == types.OverrideBlock {
			sv.registerRef(o.Ref)
			clause := NewFact(ClauseProhibition, NewNegativeTerm(o.Ref, types.Any()))
			if conflict := AddClause(sv.state, clause); conflict != nil {
				return types.SolveResult{}, sv.explain(conflict), nil
			}
		}
	}

	for {
		sv.attempts++
		if sv.attempts > sv.maxAttempts {
			return types.SolveResult{}, nil, fmt.Errorf("solve exceeded %d attempts without converging", sv.maxAttempts)
		}

		if conflict := Propagate(sv.state); conflict != nil {
			learned, level, ok := Backjump(sv.state, conflict)
			if !ok {
				return types.SolveResult{}, sv.explain(conflict), nil
			}
			if sv.sink != nil {
				sv.sink.BackjumpedTo(level, learned.String())
			}
			if c2 := AddClause(sv.state, learned); c2 != nil {
				return types.SolveResult{}, sv.explain(c2), nil
			}
			continue
		}

		ref, done, err := sv.pickUndecided()
		if err != nil {
			return types.SolveResult{}, nil, err
		}
		if done {
			return sv.buildResult(), nil, nil
		}

		conflict, err := sv.decide(ref)
		if err != nil {
			return types.SolveResult{}, nil, err
		}
		if conflict != nil {
			learned, level, ok := Backjump(sv.state, conflict)
			if !ok {
				return types.SolveResult{}, sv.explain(conflict), nil
			}
			if sv.sink != nil {
				sv.sink.BackjumpedTo(level, learned.String())
			}
			if c2 := AddClause(sv.state, learned); c2 != nil {
				return types.SolveResult{}, sv.explain(c2), nil
			}
		}
	}
}

// applyOverride rewrites dep through the root manifest's override for its
// package, if any. A block directive is handled globally as a prohibition
// fact in Solve, so a malformed or block directive here just falls back to
// dep unchanged rather than failing the whole solve on a policy error.
func (sv *Solver) applyOverride(dep types.PackageDep) types.PackageDep {
	o, ok := sv.root.OverrideFor(dep.Ref)
	if !ok {
		return dep
	}
	rewritten, err := policies.ApplyOverride(dep, o)
	if err != nil {
		return dep
	}
	return rewritten
}

func (sv *Solver) explain(conflict *Clause) *types.SolveFailure {
	return &types.SolveFailure{
		Summary:     "version solving failed: " + conflict.String(),
		Explanation: Explain(conflict),
	}
}

func (sv *Solver) buildResult() types.SolveResult {
	result := types.SolveResult{
		Root:      sv.root.Name,
		Mode:      sv.mode,
		Attempts:  sv.attempts,
		Decisions: len(sv.state.Decisions()),
	}
	for _, d := range sv.state.Decisions() {
		result.Packages = append(result.Packages, d.Id)
	}
	result.Packages = append(result.Packages, sv.systemPackages...)
	return result
}
