package core

// unitToPropagate inspects one clause against the current constraint table
// and reports what it learns: conflict if every term is already false, a
// forced term if exactly one term remains undetermined while the rest are
// false, or nothing if the clause is already satisfied or still has more
// than one open term.
func unitToPropagate(s *State) func(c *Clause) (term Term, hasUnit bool, conflict bool) {
	return func(c *Clause) (Term, bool, bool) {
		var pending Term
		pendingCount := 0
		for _, t := range c.Terms {
			switch s.ConstraintFor(t.Ref).Relation(t) {
			case RelationTrue:
				return Term{}, false, false
			case RelationUndetermined:
				pending = t
				pendingCount++
			}
		}
		if pendingCount == 0 {
			return Term{}, false, true
		}
		if pendingCount == 1 {
			return pending, true, false
		}
		return Term{}, false, false
	}
}

// applyTerm folds t into the accumulator for its package, logs the
// implication, and reports whether doing so left that package with no
// possible version at all. cause is nil for a decision (a term chosen, not
// forced) and the forcing clause for anything derived by propagation.
func applyTerm(s *State, t Term, cause *Clause) bool {
	updated := s.ConstraintFor(t.Ref).WithTerm(t)
	s.SetConstraint(updated)
	s.RecordImplication(t, cause)
	return updated.IsContradiction()
}

// propagateUnit is applyTerm specialized to the propagation path.
func propagateUnit(s *State, t Term, cause *Clause) bool {
	return applyTerm(s, t, cause)
}

// Propagate repeatedly scans every registered clause until a fixed point:
// no clause yields a new forced term. It returns the first clause found
// fully false, or that forced a package into having no possible version
// left, or nil if propagation reached quiescence without conflict.
func Propagate(s *State) *Clause {
	check := unitToPropagate(s)
	for {
		changed := false
		for _, c := range s.Clauses() {
			term, hasUnit, conflict := check(c)
			if conflict {
				return c
			}
			if !hasUnit {
				continue
			}
			if s.ConstraintFor(term.Ref).Relation(term) != RelationUndetermined {
				continue
			}
			if propagateUnit(s, term, c) {
				return c
			}
			changed = true
		}
		if !changed {
			return nil
		}
	}
}

// AddClause registers c and immediately propagates, returning the first
// conflicting clause if registering c made one or more clauses
// unsatisfiable.
func AddClause(s *State, c *Clause) *Clause {
	s.AddClause(c)
	return Propagate(s)
}
