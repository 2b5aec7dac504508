package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func newRunListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd.Context(), func(svc types.Tracker) error {
				runs, err := svc.ListRuns(cmd.Context())
				if err != nil {
					return err
				}
				if a.jsonMode {
					if runs == nil {
						runs = []types.Run{}
					}
					return writeJSON(cmd.OutOrStdout(), runs)
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tMODE\tREGION\tGAME\tCREATED")
				for _, r := range runs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						r.ID, r.Mode, r.RegionID, orDash(r.GameID), r.CreatedAt.Local().Format(time.DateTime))
				}
				return tw.Flush()
			})
		},
	}
}
