package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func newSpeciesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "species",
		Short: "Browse the species catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the built-in species",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd.Context(), func(svc types.Tracker) error {
				species, err := svc.ListSpecies(cmd.Context())
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), species)
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME")
				for _, s := range species {
					fmt.Fprintf(tw, "%d\t%s\n", s.ID, s.Name)
				}
				return tw.Flush()
			})
		},
	})
	return cmd
}
