package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func newEntryAddCmd(a *app) *cobra.Command {
	var (
		species  int
		nickname string
		location string
		status   string
		partner  string
	)
	cmd := &cobra.Command{
		Use:     "add <run-id>",
		Short:   "Add an entry to a run",
		Example: `  nuzlocke entry add 0190c5e2-... --species 25 --nickname Sparky --location "Route 1" --status in_team`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := types.EntryInput{
				Species:  species,
				Nickname: nickname,
				Location: location,
				Partner:  partnerFlag(partner),
			}
			if status != "" {
				s, err := types.ParseStatus(status)
				if err != nil {
					return userError(fmt.Errorf("%w: %q", err, status))
				}
				input.Status = s
			}

			return a.withTracker(cmd.Context(), func(svc types.Tracker) error {
				entry, err := svc.AddEntry(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), entry)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) as %s\n", entry.DisplayName(), entry.ID, entry.Status)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&species, "species", 0, "species id")
	cmd.Flags().StringVar(&nickname, "nickname", "", "nickname")
	cmd.Flags().StringVar(&location, "location", "", "where it was caught")
	cmd.Flags().StringVar(&status, "status", "", "IN_TEAM, IN_PC, SEEN or DEAD (default SEEN)")
	cmd.Flags().StringVar(&partner, "partner", "", "partner entry id (soul link runs)")
	cmd.MarkFlagRequired("species")
	return cmd
}
