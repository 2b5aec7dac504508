package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func newRunShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a run and its entries",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd.Context(), func(svc types.Tracker) error {
				run, err := svc.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), run)
				}
				return printRun(cmd, run)
			})
		},
	}
}

func printRun(cmd *cobra.Command, run types.Run) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  %s/%s  %d entries\n\n",
		run.ID, run.Mode, run.RegionID, orDash(run.GameID), len(run.Entries))

	tw := newTable(out)
	if types.IsPaired(run) {
		fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tLOCATION\tSTATUS\tPARTNER")
	} else {
		fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tLOCATION\tSTATUS")
	}
	for _, e := range run.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s", e.ID, e.DisplayName(), e.Species.Name, orDash(e.Location), e.Status)
		if types.IsPaired(run) {
			fmt.Fprintf(tw, "\t%s", partnerName(run, e))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
