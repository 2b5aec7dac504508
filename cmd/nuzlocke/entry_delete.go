package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/internal/cache"
	"github.com/mesh-intelligence/nuzlocke/internal/editor"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func newEntryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id> <entry-id>",
		Short: "Delete an entry",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := a.cliLogger()
			svc, closeFn, err := a.openTracker(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer closeFn()

			remaining, err := deleteEntry(cmd.Context(), svc, logger, args[0], args[1])
			if err != nil {
				return err
			}
			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"id": args[1], "remaining": remaining})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s (%d left in run)\n", args[1], remaining)
			return nil
		},
	}
}

// deleteEntry deletes through an editor session and returns how many
// entries the patched cache still holds for the run.
func deleteEntry(ctx context.Context, svc types.Service, logger *slog.Logger, runID, entryID string) (int, error) {
	client := cache.NewClient(svc, nil)
	run, err := client.GetRun(ctx, runID)
	if err != nil {
		return 0, err
	}

	ctrl := editor.NewController(client, client.Cache(), logger)
	if err := ctrl.Open(run, entryID); err != nil {
		return 0, userError(fmt.Errorf("entry %s in run %s: %w", entryID, runID, err))
	}
	defer ctrl.Close()

	if err := ctrl.Delete(ctx); err != nil {
		return 0, err
	}
	return len(cachedRun(client, runID).Entries), nil
}
