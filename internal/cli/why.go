package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsolve/internal/app"
)

func newWhyCommand() *cobra.Command {
	opts := struct {
		Manifest    string
		Lockfile    string
		Registry    string
		RegistryURL string
	}{}
	cmd := &cobra.Command{
		Use:   "why <package>",
		Short: "Explain why a locked package is at its resolved version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := app.NewService()
			resp, err := service.Why(cmd.Context(), app.WhyRequest{
				ManifestPath: viper.GetString("manifest"),
				LockfilePath: viper.GetString("lockfile"),
				RegistryPath: viper.GetString("registry"),
				RegistryURL:  viper.GetString("registry_url"),
				Package:      args[0],
			})
			if err != nil {
				return err
			}
			for _, line := range resp.Lines {
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "depsolve.yaml", "Root manifest path")
	cmd.Flags().StringVar(&opts.Lockfile, "lockfile", "depsolve.lock", "Lockfile path")
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "Offline registry yaml file")
	cmd.Flags().StringVar(&opts.RegistryURL, "registry-url", "", "HTTP registry base URL")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("lockfile", cmd.Flags().Lookup("lockfile"))
	_ = viper.BindPFlag("registry", cmd.Flags().Lookup("registry"))
	_ = viper.BindPFlag("registry_url", cmd.Flags().Lookup("registry-url"))
	return cmd
}
