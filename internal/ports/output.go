package ports

import "depsolve/internal/types"

// OutputPort reports the outcome of a solve to the user: a resolved package
// list, or the explanation of why none could be found.
type OutputPort interface {
	WriteResult(result types.SolveResult) error
	WriteFailure(failure types.SolveFailure) error
}

// DecisionSink receives a live trace of the solver's decisions and
// backjumps. A nil sink disables tracing; the CLI's --trace flag wires in
// a sink that logs through zerolog.
type DecisionSink interface {
	Decided(id types.PackageId, level int)
	Derived(id types.PackageId, level int)
	BackjumpedTo(level int, reason string)
}
