package app

import (
	"context"

	"depsolve/internal/adapters"
	"depsolve/internal/core"
	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// Solve loads the root manifest and (if present) the existing lockfile,
// runs the CDCL solver against the configured registry, and persists the
// result. Mode distinguishes "get" and "upgrade" (both choose the highest
// allowed versions) from "downgrade" (the lowest). The lockfile is only read
// for "get"; the solver does not consult it when choosing versions.
func (s Service) Solve(ctx context.Context, req SolveRequest) (SolveResponse, error) {
	manifest, err := s.ManifestLoader.Load(req.ManifestPath)
	if err != nil {
		return SolveResponse{}, err
	}

	var lock types.Lockfile
	if req.Mode == types.SolveGet && req.LockfilePath != "" {
		lock, err = s.LockReader.Read(req.LockfilePath)
		if err != nil {
			return SolveResponse{}, err
		}
	}

	oracle, err := oracleFor(req.RegistryPath, req.RegistryURL)
	if err != nil {
		return SolveResponse{}, err
	}
	var systemCatalog ports.SystemCatalog
	if req.SystemCatalogPath != "" {
		systemCatalog = adapters.NewSystemCatalogFileAdapter(req.SystemCatalogPath)
	}

	sdks, err := s.SDKProbe.Probe()
	if err != nil {
		return SolveResponse{}, err
	}

	var sink ports.DecisionSink
	if req.Trace {
		sink = s.Trace
	}

	solver := core.NewSolver(ctx, oracle, systemCatalog, sdks, req.Mode, sink, manifest, lock)
	result, failure, err := solver.Solve()
	if err != nil {
		return SolveResponse{}, err
	}
	if failure != nil {
		if writeErr := s.Output.WriteFailure(*failure); writeErr != nil {
			return SolveResponse{}, writeErr
		}
		return SolveResponse{Failure: failure}, nil
	}

	if err := s.Output.WriteResult(result); err != nil {
		return SolveResponse{}, err
	}

	lockPath := req.LockfilePath
	if lockPath != "" {
		if err := s.LockWriter.Write(lockPath, result); err != nil {
			return SolveResponse{}, err
		}
	}
	return SolveResponse{Result: result, LockWritten: lockPath}, nil
}
