package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: `Init writes a default config.yaml if none exists and creates the data
directory with the built-in species and regions. Running it again is safe.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.EnsureDefault(a.configDir); err != nil {
				return systemError(err)
			}
			dataDir, err := a.resolvedDataDir()
			if err != nil {
				return systemError(err)
			}
			store, err := a.attachStore(dataDir)
			if err != nil {
				return err
			}
			if err := store.Detach(); err != nil {
				return systemError(fmt.Errorf("detach store: %w", err))
			}

			out := cmd.OutOrStdout()
			if a.jsonMode {
				return writeJSON(out, map[string]string{
					"config": config.Path(a.configDir),
					"data":   dataDir,
				})
			}
			fmt.Fprintln(out, "nuzlocke initialized")
			fmt.Fprintln(out, "  config:", config.Path(a.configDir))
			fmt.Fprintln(out, "  data:  ", dataDir)
			return nil
		},
	}
}
