package ports

import "depsolve/internal/types"

// SDKProbe reports the runtime and platform SDK versions of the environment
// a solve is running against.
type SDKProbe interface {
	Probe() (types.SdkVersions, error)
}
