package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/internal/cache"
	"github.com/mesh-intelligence/nuzlocke/internal/editor"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// entryEdits are the flags of entry update; nil fields were not given.
type entryEdits struct {
	nickname *string
	location *string
	status   *types.Status

	// partnerSet marks a --partner flag; partner nil then clears it.
	partnerSet bool
	partner    *string
}

func newEntryUpdateCmd(a *app) *cobra.Command {
	var nickname, location, status, partner string
	cmd := &cobra.Command{
		Use:   "update <run-id> <entry-id>",
		Short: "Edit an entry the way the editor does",
		Long: `Update opens an editing session on the entry, applies the given flags
and submits the whole entry. Fields without a flag keep their stored
values. --partner none clears the partner of a soul link entry.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edits entryEdits
			flags := cmd.Flags()
			if flags.Changed("nickname") {
				edits.nickname = &nickname
			}
			if flags.Changed("location") {
				edits.location = &location
			}
			if flags.Changed("status") {
				s, err := types.ParseStatus(status)
				if err != nil {
					return userError(fmt.Errorf("%w: %q", err, status))
				}
				edits.status = &s
			}
			if flags.Changed("partner") {
				edits.partnerSet = true
				edits.partner = partnerFlag(partner)
			}

			logger := a.cliLogger()
			svc, closeFn, err := a.openTracker(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer closeFn()

			entry, err := updateEntry(cmd.Context(), svc, logger, args[0], args[1], edits)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), entry)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s): %s\n", entry.DisplayName(), entry.ID, entry.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&nickname, "nickname", "", "new nickname")
	cmd.Flags().StringVar(&location, "location", "", "new location")
	cmd.Flags().StringVar(&status, "status", "", "IN_TEAM, IN_PC, SEEN or DEAD")
	cmd.Flags().StringVar(&partner, "partner", "", "partner entry id, or none")
	return cmd
}

// updateEntry drives an editor session without a terminal: open, edit,
// submit. The returned entry is read back from the session's cache.
func updateEntry(ctx context.Context, svc types.Service, logger *slog.Logger, runID, entryID string, edits entryEdits) (types.Entry, error) {
	client := cache.NewClient(svc, nil)
	run, err := client.GetRun(ctx, runID)
	if err != nil {
		return types.Entry{}, err
	}

	ctrl := editor.NewController(client, client.Cache(), logger)
	if err := ctrl.Open(run, entryID); err != nil {
		return types.Entry{}, userError(fmt.Errorf("entry %s in run %s: %w", entryID, runID, err))
	}
	defer ctrl.Close()
	if err := applyEdits(ctx, ctrl, edits); err != nil {
		return types.Entry{}, err
	}

	if err := ctrl.Submit(ctx); err != nil {
		return types.Entry{}, err
	}
	updated, ok := cachedRun(client, runID).Entry(entryID)
	if !ok {
		return types.Entry{}, fmt.Errorf("entry %s missing after update", entryID)
	}
	return updated, nil
}

func applyEdits(ctx context.Context, ctrl *editor.Controller, edits entryEdits) error {
	form := ctrl.Form()
	if edits.nickname != nil {
		if err := form.SetNickname(*edits.nickname); err != nil {
			return err
		}
	}
	if edits.location != nil {
		if err := form.SetLocation(*edits.location); err != nil {
			return err
		}
	}
	if edits.status != nil {
		if err := form.SetStatus(*edits.status); err != nil {
			return err
		}
	}
	if edits.partnerSet {
		return choosePartner(ctx, ctrl, edits.partner)
	}
	return nil
}

// choosePartner loads the candidate pool and selects partnerID from it,
// as the partner select does. nil clears the partner.
func choosePartner(ctx context.Context, ctrl *editor.Controller, partnerID *string) error {
	if !ctrl.Form().Paired() {
		return userError(editor.ErrPartnerUnavailable)
	}
	if partnerID != nil {
		if state := ctrl.LoadPool(ctx); state.Err != nil {
			return state.Err
		}
		candidates, err := ctrl.Candidates()
		if err != nil {
			return err
		}
		known := slices.ContainsFunc(candidates, func(c types.Candidate) bool { return c.ID == *partnerID })
		if !known {
			return userError(fmt.Errorf("%w: %s", types.ErrPartnerNotInRun, *partnerID))
		}
	}
	return ctrl.Form().SetPartner(partnerID)
}

func cachedRun(client *cache.Client, runID string) types.Run {
	run, _ := client.Cache().ReadRun(runID)
	return run
}
