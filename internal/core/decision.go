package core

import (
	"errors"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// registerRef remembers a package name the solver has seen, in first-seen
// order, so pickUndecided has a deterministic traversal order independent
// of Go's map iteration.
func (sv *Solver) registerRef(ref types.PackageRef) {
	if _, ok := sv.refs[ref.Name]; ok {
		return
	}
	sv.refs[ref.Name] = ref
	sv.refOrder = append(sv.refOrder, ref.Name)
}

// pickUndecided returns the next package awaiting a concrete version, or
// done=true once every referenced package has one.
func (sv *Solver) pickUndecided() (types.PackageRef, bool, error) {
	for _, name := range sv.refOrder {
		if _, ok := sv.state.DecisionFor(name); ok {
			continue
		}
		return sv.refs[name], false, nil
	}
	return types.PackageRef{}, true, nil
}

// manifestsFor returns every candidate manifest for ref, ascending by
// version, fetching and caching them from the oracle on first use.
func (sv *Solver) manifestsFor(ref types.PackageRef) ([]types.Pubspec, error) {
	if cached, ok := sv.manifests[ref.Name]; ok {
		return cached, nil
	}
	versions, err := sv.oracle.Versions(sv.ctx, ref)
	if err != nil {
		return nil, err
	}
	types.SortVersions(versions)
	specs := make([]types.Pubspec, 0, len(versions))
	for _, v := range versions {
		spec, err := sv.oracle.Pubspec(sv.ctx, types.PackageId{Ref: ref, Version: v})
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	sv.manifests[ref.Name] = specs
	sv.normalizers[ref.Name] = NewNormalizer(versions)
	return specs, nil
}

func findPubspec(candidates []types.Pubspec, v types.Version) (types.Pubspec, bool) {
	for _, c := range candidates {
		if c.ID.Version.Equal(v) {
			return c, true
		}
	}
	return types.Pubspec{}, false
}

// SelectVersion orders candidates per the solve mode and returns the
// preferred one: highest stable release for get/upgrade, lowest stable
// release for downgrade.
func SelectVersion(candidates []types.Version, mode types.SolveMode) (types.Version, bool) {
	if len(candidates) == 0 {
		return types.Version{}, false
	}
	if mode == types.SolveDowngrade {
		return types.Antiprioritize(candidates)[0], true
	}
	return types.Prioritize(candidates)[0], true
}

// Decide pins id as a new decision at a freshly opened level, returning a
// conflict clause if doing so is already contradictory (a prior clause
// excluded exactly this version).
func Decide(s *State, id types.PackageId) *Clause {
	s.PushLevel()
	term := NewTerm(id.Ref, types.Exact(id.Version))
	contradiction := applyTerm(s, term, nil)
	s.RecordDecision(id)
	if contradiction {
		return NewFact(ClauseNoVersions, term.Negate())
	}
	return nil
}

// decide resolves the next version for ref: it runs the SDK gate once,
// narrows to the versions still allowed, picks one, commits it as a
// decision, and registers its own dependencies as new clauses.
func (sv *Solver) decide(ref types.PackageRef) (*Clause, error) {
	assert.NotEmpty(sv.ctx, ref.Name, "package ref must have a name")
	candidates, err := sv.manifestsFor(ref)
	if err != nil {
		if errors.Is(err, ports.ErrPackageNotFound) {
			clause := NewFact(ClauseProhibition, NewNegativeTerm(ref, types.Any()))
			if conflict := AddClause(sv.state, clause); conflict != nil {
				return conflict, nil
			}
			return clause, nil
		}
		return nil, err
	}
	if !sv.sdkChecked[ref.Name] {
		sv.sdkChecked[ref.Name] = true
		ValidateSdkConstraint(sv.state, ref, candidates, sv.sdks)
	}

	norm := sv.normalizers[ref.Name]
	effective := sv.state.ConstraintFor(ref).Effective()
	versions := norm.Candidates(norm.Maximize(effective))
	if len(versions) == 0 {
		clause := NewNoVersionsClause(ref, effective)
		clause.Comment = describeNearestVersions(norm, effective)
		if conflict := AddClause(sv.state, clause); conflict != nil {
			return conflict, nil
		}
		return clause, nil
	}

	chosen, _ := SelectVersion(versions, sv.mode)
	pubspec, ok := findPubspec(candidates, chosen)
	if !ok {
		return nil, nil
	}

	if sv.sink != nil {
		sv.sink.Decided(pubspec.ID, sv.state.Level()+1)
	}
	if conflict := Decide(sv.state, pubspec.ID); conflict != nil {
		return conflict, nil
	}

	for _, dep := range pubspec.Dependencies {
		dep = sv.applyOverride(dep)
		sv.registerRef(dep.Ref)
		clause := NewDependencyClause(pubspec.ID, dep)
		if conflict := AddClause(sv.state, clause); conflict != nil {
			return conflict, nil
		}
	}
	return nil, nil
}
