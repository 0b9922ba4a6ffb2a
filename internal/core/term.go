package core

import "depsolve/internal/types"

// Term is a single atomic predicate about a package: either "the selected
// version of Ref lies in Constraint" (Positive) or its negation. Clauses are
// built as disjunctions of terms; a Constraint accumulator tracks how much
// of a package's version space remains possible after every term touching
// it has been applied.
type Term struct {
	Ref        types.PackageRef
	Constraint types.VersionConstraint
	Positive   bool
}

// NewTerm builds a positive term: "the selected version of ref is in c".
func NewTerm(ref types.PackageRef, c types.VersionConstraint) Term {
	return Term{Ref: ref, Constraint: c, Positive: true}
}

// NewNegativeTerm builds a negative term: "the selected version of ref is
// not in c".
func NewNegativeTerm(ref types.PackageRef, c types.VersionConstraint) Term {
	return Term{Ref: ref, Constraint: c, Positive: false}
}

// Negate returns the logical complement of t.
func (t Term) Negate() Term {
	return Term{Ref: t.Ref, Constraint: t.Constraint, Positive: !t.Positive}
}

func (t Term) String() string {
	return t.describe(false)
}

// describe renders t the same way String does, but names the ref by its
// full (source, name, description) identity when qualified is true,
// distinguishing two packages that share a name but come from different
// places (a hosted dependency and a path or git override of it).
func (t Term) describe(qualified bool) string {
	name := t.Ref.Name
	if qualified {
		name = t.Ref.String()
	}
	if t.Positive {
		return name + " " + t.Constraint.String()
	}
	return "not (" + name + " " + t.Constraint.String() + ")"
}
