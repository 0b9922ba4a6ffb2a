package app

import "depsolve/internal/types"

// SolveRequest describes one solve invocation: which manifest to solve,
// which registry to consult, and where to persist the result.
type SolveRequest struct {
	ManifestPath       string
	LockfilePath       string
	RegistryPath       string
	RegistryURL        string
	SystemCatalogPath  string
	Mode               types.SolveMode
	Trace              bool
}

// SolveResponse is what a solve produces: either a resolved package set
// (written to the lockfile) or a failure explanation.
type SolveResponse struct {
	Result      types.SolveResult
	Failure     *types.SolveFailure
	LockWritten string
}

// WhyRequest asks the solver to explain the currently locked version of one
// package in terms of the manifest that demanded it.
type WhyRequest struct {
	ManifestPath string
	LockfilePath string
	RegistryPath string
	RegistryURL  string
	Package      string
}

// WhyResponse carries the explanation lines for a WhyRequest.
type WhyResponse struct {
	Package string
	Lines   []string
}

// InspectRequest asks for a summary of an existing lockfile.
type InspectRequest struct {
	LockfilePath string
}

// InspectPackageSummary describes one locked package for display.
type InspectPackageSummary struct {
	Name    string
	Source  string
	Version string
	Type    string
}

// InspectResponse is the summary of a lockfile's contents.
type InspectResponse struct {
	Root     string
	Packages []InspectPackageSummary
}
