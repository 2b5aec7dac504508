package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func newPoolCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pool <run-id>",
		Short: "Show the partner candidates and known locations of a run",
		Long: `Pool prints what the editor offers for a run: every entry as a partner
candidate and every location of the run's region.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd.Context(), func(svc types.Tracker) error {
				run, err := svc.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				pool, err := svc.GetCandidatePool(cmd.Context(), run.RegionID, run.ID)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), pool)
				}

				out := cmd.OutOrStdout()
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tCANDIDATE")
				for _, c := range pool.Candidates {
					fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nLocations (%s): %s\n", run.RegionID, strings.Join(pool.Locations, ", "))
				return nil
			})
		},
	}
}
