package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsolve/internal/app"
)

func newInspectCommand() *cobra.Command {
	var lockfile string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the current lockfile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := app.NewService()
			resp, err := service.Inspect(cmd.Context(), app.InspectRequest{LockfilePath: viper.GetString("lockfile")})
			if err != nil {
				return err
			}
			fmt.Printf("root: %s\n", resp.Root)
			for _, pkg := range resp.Packages {
				fmt.Printf("  %-30s %-10s %s (%s)\n", pkg.Name, pkg.Source, pkg.Version, pkg.Type)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lockfile, "lockfile", "depsolve.lock", "Lockfile path")
	_ = viper.BindPFlag("lockfile", cmd.Flags().Lookup("lockfile"))
	return cmd
}
