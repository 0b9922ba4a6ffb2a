package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolve/internal/types"
)

// ApplyOverride rewrites dep per directive, the way the solver's root
// manifest asks a dependency to be forced, relaxed, replaced, or blocked
// before it ever reaches the CDCL engine.
func ApplyOverride(dep types.PackageDep, directive types.OverrideDirective) (types.PackageDep, error) {
	switch directive.Action {
	case types.OverrideForce:
		if directive.Constraint.IsEmpty() {
			return types.PackageDep{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("force override for %s requires a constraint", dep.Ref.Name))
		}
		return types.PackageDep{Ref: dep.Ref, Constraint: directive.Constraint, Type: dep.Type}, nil
	case types.OverrideRelax:
		return types.PackageDep{Ref: dep.Ref, Constraint: dep.Constraint.Union(directive.Constraint), Type: dep.Type}, nil
	case types.OverrideReplace:
		if directive.Replacement == nil {
			return types.PackageDep{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("replace override for %s requires a replacement package", dep.Ref.Name))
		}
		return types.PackageDep{Ref: *directive.Replacement, Constraint: directive.Constraint, Type: dep.Type}, nil
	case types.OverrideBlock:
		return types.PackageDep{}, errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("dependency blocked by override: %s", dep.Ref.Name))
	default:
		return types.PackageDep{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown override action %q for %s", strings.ToLower(string(directive.Action)), dep.Ref.Name))
	}
}
