package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func newRunCreateCmd(a *app) *cobra.Command {
	var mode, region, game string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a new run",
		Example: `  nuzlocke run create --region kanto --game red
  nuzlocke run create --mode soul_link --region johto --game gold`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := types.Mode(strings.ToUpper(mode))
			return a.withTracker(cmd.Context(), func(svc types.Tracker) error {
				run, err := svc.CreateRun(cmd.Context(), m, region, game)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), run)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s run %s in %s\n", run.Mode, run.ID, run.RegionID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(types.ModeNuzlocke), "NUZLOCKE, SOUL_LINK or WONDERLOCKE")
	cmd.Flags().StringVar(&region, "region", "", "region id (kanto, johto, hoenn)")
	cmd.Flags().StringVar(&game, "game", "", "game id")
	cmd.MarkFlagRequired("region")
	return cmd
}
