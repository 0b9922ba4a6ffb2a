package core

import "depsolve/internal/types"

// lastImplication returns the most recently recorded implication touching
// name. Because a package's accumulated constraint only ever shrinks, the
// latest touch already reflects every earlier one, so it alone explains the
// package's current state.
func lastImplication(s *State, name string) (Implication, bool) {
	for i := len(s.implications) - 1; i >= 0; i-- {
		if s.implications[i].Term.Ref.Name == name {
			return s.implications[i], true
		}
	}
	return Implication{}, false
}

// transitiveImplicators walks the antecedent chain behind every term in c
// back to the root decisions that ultimately forced it, the way a CDCL
// solver walks the implication graph to find the decisions responsible for
// a conflict.
func transitiveImplicators(s *State, c *Clause) []Decision {
	seenRef := map[string]bool{}
	seenDecision := map[string]bool{}
	var decisions []Decision

	var walk func(ref types.PackageRef)
	walk = func(ref types.PackageRef) {
		if seenRef[ref.Name] {
			return
		}
		seenRef[ref.Name] = true
		impl, ok := lastImplication(s, ref.Name)
		if !ok {
			return
		}
		if impl.Cause == nil {
			if d, ok2 := s.DecisionFor(ref.Name); ok2 && !seenDecision[ref.Name] {
				seenDecision[ref.Name] = true
				decisions = append(decisions, d)
			}
			return
		}
		for _, t := range impl.Cause.Terms {
			if t.Ref.Name == ref.Name {
				continue
			}
			walk(t.Ref)
		}
	}

	for _, t := range c.Terms {
		walk(t.Ref)
	}
	return decisions
}

// backjumpLevel returns the level to land on after undoing the most
// recently made decision among the contributing decisions: one less than
// the highest level among them. Since Decide opens exactly one new level
// per decision, decision order and decision level coincide, so this is the
// level right before the last implicating decision — not merely the second
// distinct level value among implicators. Any decision below that level,
// whether or not it took part in the conflict, is left standing.
func backjumpLevel(decisions []Decision) int {
	maxLevel := 0
	for _, d := range decisions {
		if d.Level > maxLevel {
			maxLevel = d.Level
		}
	}
	if maxLevel == 0 {
		return 0
	}
	return maxLevel - 1
}

// learnClause builds a clause asserting that the given decisions cannot all
// hold at once, which is sound because together they already produced a
// conflict.
func learnClause(decisions []Decision) *Clause {
	terms := make([]Term, 0, len(decisions))
	for _, d := range decisions {
		terms = append(terms, NewNegativeTerm(d.Id.Ref, types.Exact(d.Id.Version)))
	}
	return &Clause{Kind: ClauseLearned, Terms: terms}
}

// Backjump resolves a conflict clause: it identifies the decisions that
// caused it, rewinds the state to just before the most recent one, and
// returns a learned clause ruling that combination out. Any decision that
// played no part in the conflict survives the rewind even if it was made
// after an earlier implicator. ok is false when the conflict traces back to
// no decision at all, meaning the root requirements are unsatisfiable
// regardless of any choice made.
func Backjump(s *State, conflict *Clause) (learned *Clause, level int, ok bool) {
	decisions := transitiveImplicators(s, conflict)
	if len(decisions) == 0 {
		return nil, 0, false
	}
	level = backjumpLevel(decisions)
	learned = learnClause(decisions)
	learned.Cause1 = conflict
	s.BackjumpTo(level)
	return learned, level, true
}
