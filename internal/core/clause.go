package core

import "depsolve/internal/types"

// ClauseKind records why a clause exists, purely for diagnostics and for
// picking a rendering strategy when a clause takes part in a failure
// explanation.
type ClauseKind string

const (
	// ClauseRequirement comes from the root manifest's own dependency list:
	// "root is selected" implies "dep is in range".
	ClauseRequirement ClauseKind = "requirement"
	// ClauseDependency comes from a concrete package version's manifest:
	// "pkg@v is selected" implies "dep is in range".
	ClauseDependency ClauseKind = "dependency"
	// ClauseProhibition rules out a combination outright: incompatible SDK
	// constraints, a blocked override, or two packages that cannot coexist.
	ClauseProhibition ClauseKind = "prohibition"
	// ClauseNoVersions records that no candidate version of a package
	// satisfies the range still open to it.
	ClauseNoVersions ClauseKind = "no-versions"
	// ClauseLearned is derived during conflict resolution.
	ClauseLearned ClauseKind = "learned"
)

// Clause is a disjunction of terms: at least one must hold. A learned clause
// points at the conflict clause that produced it through Cause1; Cause1 and
// Cause2 form the cause DAG that failure.go walks to build an explanation.
type Clause struct {
	Kind    ClauseKind
	Terms   []Term
	Cause1  *Clause
	Cause2  *Clause
	Comment string
}

// NewFact returns a unit clause asserting t unconditionally.
func NewFact(kind ClauseKind, t Term) *Clause {
	return &Clause{Kind: kind, Terms: []Term{t}}
}

// NewRequirementClause builds "¬from ∨ dep": if from is selected at version
// v, dep must be satisfied.
func NewRequirementClause(from types.PackageId, dep types.PackageDep) *Clause {
	return &Clause{
		Kind: ClauseRequirement,
		Terms: []Term{
			NewNegativeTerm(from.Ref, types.Exact(from.Version)),
			NewTerm(dep.Ref, dep.Constraint),
		},
	}
}

// NewDependencyClause builds the same shape as NewRequirementClause but
// tags it as coming from a concrete version's own manifest rather than the
// root manifest, which matters for how failure.go renders it.
func NewDependencyClause(from types.PackageId, dep types.PackageDep) *Clause {
	c := NewRequirementClause(from, dep)
	c.Kind = ClauseDependency
	return c
}

// NewProhibitionClause builds "¬a ∨ ¬b": a and b cannot both hold.
func NewProhibitionClause(a, b Term) *Clause {
	return &Clause{Kind: ClauseProhibition, Terms: []Term{a.Negate(), b.Negate()}}
}

// NewNoVersionsClause records that ref has no candidate left inside the
// range still open to it.
func NewNoVersionsClause(ref types.PackageRef, remaining types.VersionConstraint) *Clause {
	return &Clause{Kind: ClauseNoVersions, Terms: []Term{NewNegativeTerm(ref, remaining)}}
}

// Names returns the distinct package names this clause mentions, in the
// order they first appear.
func (c *Clause) Names() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range c.Terms {
		if !seen[t.Ref.Name] {
			seen[t.Ref.Name] = true
			out = append(out, t.Ref.Name)
		}
	}
	return out
}

func (c *Clause) String() string {
	out := ""
	for i, t := range c.Terms {
		if i > 0 {
			out += " or "
		}
		out += t.String()
	}
	if out == "" {
		return "<empty clause>"
	}
	return out
}
