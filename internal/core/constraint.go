package core

import "depsolve/internal/types"

// Relation is the result of testing a Term against the current accumulated
// state of a package: definitely satisfied, definitely violated, or not yet
// decided either way.
type Relation int

const (
	RelationUndetermined Relation = iota
	RelationTrue
	RelationFalse
)

// Constraint accumulates every term that has been applied to one package
// over the course of a solve: Positive is the intersection of everything
// asserted about it, Negative is the union of everything excluded from it.
// The package's remaining possible versions are Positive minus Negative.
type Constraint struct {
	Ref      types.PackageRef
	Positive types.VersionConstraint
	Negative types.VersionConstraint
}

// NewConstraint returns the starting accumulator for ref: every version is
// still possible.
func NewConstraint(ref types.PackageRef) Constraint {
	return Constraint{Ref: ref, Positive: types.Any(), Negative: types.None()}
}

// Effective returns the range of versions this accumulator still admits.
func (c Constraint) Effective() types.VersionConstraint {
	return c.Positive.Difference(c.Negative)
}

// IsContradiction reports whether no version at all remains possible.
func (c Constraint) IsContradiction() bool { return c.Effective().IsEmpty() }

// WithTerm folds t into c and returns the updated value; c is left
// unmodified. It only applies t when t talks about the same (name, source,
// description) package c does — a term about a different instance of the
// same name, like a path override shadowing a hosted dependency, leaves c
// untouched.
func (c Constraint) WithTerm(t Term) Constraint {
	if !t.Ref.SamePackage(c.Ref) {
		return c
	}
	if t.Positive {
		return Constraint{Ref: c.Ref, Positive: c.Positive.Intersect(t.Constraint), Negative: c.Negative}
	}
	return Constraint{Ref: c.Ref, Positive: c.Positive, Negative: c.Negative.Union(t.Constraint)}
}

// Relation tests whether the remaining possible versions already force t to
// be true or false, or leave it undetermined.
func (c Constraint) Relation(t Term) Relation {
	eff := c.Effective()
	if eff.IsEmpty() {
		return RelationTrue
	}
	overlap := eff.Intersect(t.Constraint)
	switch {
	case overlap.IsEmpty():
		if t.Positive {
			return RelationFalse
		}
		return RelationTrue
	case eff.Equal(overlap):
		if t.Positive {
			return RelationTrue
		}
		return RelationFalse
	default:
		return RelationUndetermined
	}
}
