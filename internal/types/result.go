package types

// SolveResult is a successful resolution: one concrete PackageId per
// resolved package, plus bookkeeping about how much work the solver did.
type SolveResult struct {
	Root               string
	Packages           []PackageId
	Mode               SolveMode
	Attempts           int
	Decisions          int
	Backjumps          int
}

// PackageByName returns the resolved id for name, if present.
func (r SolveResult) PackageByName(name string) (PackageId, bool) {
	for _, p := range r.Packages {
		if p.Ref.Name == name {
			return p, true
		}
	}
	return PackageId{}, false
}

// SolveFailure is the outcome of a solve that could not find any valid
// assignment. Explanation holds the numbered proof derived from the
// conflict cause DAG, one rendered line per step, in the order a human
// reader should see them.
type SolveFailure struct {
	Summary     string
	Explanation []string
}

func (f SolveFailure) Error() string { return f.Summary }
