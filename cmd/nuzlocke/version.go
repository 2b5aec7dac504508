package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/pkg/nuzlocke"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nuzlocke version",
		Args:  noArgs,
		// version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "nuzlocke %s\nmodule: %s\n", nuzlocke.Version, nuzlocke.ModulePath)
			return nil
		},
	}
}
