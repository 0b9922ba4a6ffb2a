package app

import (
	"time"

	"depsolve/internal/adapters"
	"depsolve/internal/ports"
)

// Service wires together the ambient adapters every command needs: the
// manifest and lockfile readers/writers, the SDK probe, and where to report
// results. The version oracle varies per request (an offline file or an
// HTTP registry), so it is not part of the fixed Service.
type Service struct {
	ManifestLoader ports.RootManifestPort
	LockReader     ports.LockfileReaderPort
	LockWriter     ports.LockfileWriterPort
	SDKProbe       ports.SDKProbe
	Output         ports.OutputPort
	Trace          ports.DecisionSink
	Clock          func() time.Time
}

// NewService builds a Service with the concrete file/console adapters a
// real CLI invocation uses.
func NewService() Service {
	lock := adapters.NewLockfileFileAdapter()
	return Service{
		ManifestLoader: adapters.NewManifestFileAdapter(),
		LockReader:     lock,
		LockWriter:     lock,
		SDKProbe:       adapters.NewSDKProbeEnvAdapter(),
		Output:         adapters.NewConsoleOutputAdapter(),
		Trace:          adapters.NewLogDecisionSink(),
		Clock:          time.Now,
	}
}

// oracleFor builds the version oracle for one request, from whichever of
// RegistryPath/RegistryURL was supplied. The system catalog is built
// separately by Solve.
func oracleFor(registryPath, registryURL string) (ports.VersionOracle, error) {
	if registryURL != "" {
		return adapters.NewRegistryHTTPOracle(registryURL), nil
	}
	return adapters.NewRegistryFileAdapter(registryPath), nil
}
