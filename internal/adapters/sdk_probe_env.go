package adapters

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/viper"

	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// SDKProbeEnvAdapter reads the runtime and platform SDK versions the solve
// should target from configuration (flags, env vars, config file), the way
// the rest of the CLI layers configuration through viper.
type SDKProbeEnvAdapter struct{}

func NewSDKProbeEnvAdapter() SDKProbeEnvAdapter {
	return SDKProbeEnvAdapter{}
}

func (a SDKProbeEnvAdapter) Probe() (types.SdkVersions, error) {
	runtimeRaw := viper.GetString("sdk_runtime")
	if runtimeRaw == "" {
		return types.SdkVersions{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk runtime version is required (set --sdk-runtime or DEPSOLVE_SDK_RUNTIME)")
	}
	runtime, err := types.ParseVersion(runtimeRaw)
	if err != nil {
		return types.SdkVersions{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid sdk runtime version").
			WithCause(err)
	}
	sdks := types.SdkVersions{Runtime: runtime}
	if platformRaw := viper.GetString("sdk_platform"); platformRaw != "" {
		platform, err := types.ParseVersion(platformRaw)
		if err != nil {
			return types.SdkVersions{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid sdk platform version").
				WithCause(err)
		}
		sdks.Platform = &platform
	}
	return sdks, nil
}

var _ ports.SDKProbe = SDKProbeEnvAdapter{}
