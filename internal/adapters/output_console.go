package adapters

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// ConsoleOutputAdapter reports solve results to stdout and failures to
// stderr, the way the teacher's compat/output adapters print to the
// invoking terminal.
type ConsoleOutputAdapter struct{}

func NewConsoleOutputAdapter() ConsoleOutputAdapter {
	return ConsoleOutputAdapter{}
}

func (a ConsoleOutputAdapter) WriteResult(result types.SolveResult) error {
	fmt.Printf("resolved %d packages for %s in %d attempt(s)\n", len(result.Packages), result.Root, result.Attempts)
	for _, pkg := range result.Packages {
		fmt.Printf("  %s\n", pkg.String())
	}
	return nil
}

func (a ConsoleOutputAdapter) WriteFailure(failure types.SolveFailure) error {
	fmt.Fprintln(os.Stderr, failure.Summary)
	for _, line := range failure.Explanation {
		fmt.Fprintln(os.Stderr, line)
	}
	return nil
}

var _ ports.OutputPort = ConsoleOutputAdapter{}

// LogDecisionSink traces solver decisions and backjumps at debug level via
// zerolog, wired in when the CLI is run with --trace; its lines show only
// when the log level is debug.
type LogDecisionSink struct{}

func NewLogDecisionSink() LogDecisionSink { return LogDecisionSink{} }

func (s LogDecisionSink) Decided(id types.PackageId, level int) {
	log.Debug().Str("package", id.String()).Int("level", level).Msg("decided")
}

func (s LogDecisionSink) Derived(id types.PackageId, level int) {
	log.Debug().Str("package", id.String()).Int("level", level).Msg("derived")
}

func (s LogDecisionSink) BackjumpedTo(level int, reason string) {
	log.Debug().Int("level", level).Str("reason", reason).Msg("backjumped")
}

var _ ports.DecisionSink = LogDecisionSink{}
