package cli

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsolve/internal/app"
	"depsolve/internal/types"
)

// failureError turns a solve failure explanation into the
// errbuilder.CodeFailedPrecondition error exitCodeForError dispatches on,
// mirroring "no compatible version" exiting with code 4.
func failureError(failure types.SolveFailure) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("no compatible version: " + failure.Summary)
}

type solveOptions struct {
	Manifest      string
	Lockfile      string
	Registry      string
	RegistryURL   string
	SystemCatalog string
	SdkRuntime    string
	SdkPlatform   string
	Trace         bool
}

func bindSolveFlags(cmd *cobra.Command, opts *solveOptions) {
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "depsolve.yaml", "Root manifest path")
	cmd.Flags().StringVar(&opts.Lockfile, "lockfile", "depsolve.lock", "Lockfile path")
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "Offline registry yaml file")
	cmd.Flags().StringVar(&opts.RegistryURL, "registry-url", "", "HTTP registry base URL")
	cmd.Flags().StringVar(&opts.SystemCatalog, "system-catalog", "", "Offline system (apt/pip) catalog yaml file")
	cmd.Flags().StringVar(&opts.SdkRuntime, "sdk-runtime", "", "Runtime SDK version")
	cmd.Flags().StringVar(&opts.SdkPlatform, "sdk-platform", "", "Platform SDK version")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "Log every decision and backjump at debug level")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("lockfile", cmd.Flags().Lookup("lockfile"))
	_ = viper.BindPFlag("registry", cmd.Flags().Lookup("registry"))
	_ = viper.BindPFlag("registry_url", cmd.Flags().Lookup("registry-url"))
	_ = viper.BindPFlag("system_catalog", cmd.Flags().Lookup("system-catalog"))
	_ = viper.BindPFlag("sdk_runtime", cmd.Flags().Lookup("sdk-runtime"))
	_ = viper.BindPFlag("sdk_platform", cmd.Flags().Lookup("sdk-platform"))
	_ = viper.BindPFlag("trace", cmd.Flags().Lookup("trace"))
}

func newGetCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Resolve dependencies to the highest versions that satisfy every constraint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), opts, types.SolveGet)
		},
	}
	bindSolveFlags(cmd, &opts)
	return cmd
}

func newUpgradeCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Resolve dependencies to the highest versions, as get does, without reading the existing lockfile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), opts, types.SolveUpgrade)
		},
	}
	bindSolveFlags(cmd, &opts)
	return cmd
}

func newDowngradeCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "downgrade",
		Short: "Resolve dependencies to the lowest versions that still satisfy every constraint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), opts, types.SolveDowngrade)
		},
	}
	bindSolveFlags(cmd, &opts)
	return cmd
}

func runSolve(ctx context.Context, opts solveOptions, mode types.SolveMode) error {
	service := app.NewService()
	resp, err := service.Solve(ctx, app.SolveRequest{
		ManifestPath:      viper.GetString("manifest"),
		LockfilePath:      viper.GetString("lockfile"),
		RegistryPath:      viper.GetString("registry"),
		RegistryURL:       viper.GetString("registry_url"),
		SystemCatalogPath: viper.GetString("system_catalog"),
		Mode:              mode,
		Trace:             viper.GetBool("trace"),
	})
	if err != nil {
		return err
	}
	if resp.Failure != nil {
		return failureError(*resp.Failure)
	}
	return nil
}
