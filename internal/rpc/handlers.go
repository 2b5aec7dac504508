package rpc

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// Register binds every tracker action on server to tracker.
func Register(server *Server, tracker types.Tracker) {
	server.Handle(ActionGetRun, func(ctx context.Context, raw []byte) (any, error) {
		var req runRequest
		if err := decodeRequest(raw, &req); err != nil {
			return nil, err
		}
		return tracker.GetRun(ctx, req.RunID)
	})

	server.Handle(ActionGetCandidatePool, func(ctx context.Context, raw []byte) (any, error) {
		var req candidatePoolRequest
		if err := decodeRequest(raw, &req); err != nil {
			return nil, err
		}
		return tracker.GetCandidatePool(ctx, req.RegionID, req.RunID)
	})

	server.Handle(ActionUpdateEntryStatus, func(ctx context.Context, raw []byte) (any, error) {
		var req updateEntryRequest
		if err := decodeRequest(raw, &req); err != nil {
			return nil, err
		}
		return tracker.UpdateEntryStatus(ctx, req.RunID, req.Payload)
	})

	server.Handle(ActionDeleteEntry, func(ctx context.Context, raw []byte) (any, error) {
		var req deleteEntryRequest
		if err := decodeRequest(raw, &req); err != nil {
			return nil, err
		}
		id, err := tracker.DeleteEntry(ctx, req.RunID, req.EntryID)
		if err != nil {
			return nil, err
		}
		return deleteEntryResponse{ID: id}, nil
	})

	server.Handle(ActionCreateRun, func(ctx context.Context, raw []byte) (any, error) {
		var req createRunRequest
		if err := decodeRequest(raw, &req); err != nil {
			return nil, err
		}
		return tracker.CreateRun(ctx, req.Mode, req.RegionID, req.GameID)
	})

	server.Handle(ActionAddEntry, func(ctx context.Context, raw []byte) (any, error) {
		var req addEntryRequest
		if err := decodeRequest(raw, &req); err != nil {
			return nil, err
		}
		return tracker.AddEntry(ctx, req.RunID, req.Input)
	})

	server.Handle(ActionListRuns, func(ctx context.Context, _ []byte) (any, error) {
		return tracker.ListRuns(ctx)
	})

	server.Handle(ActionListSpecies, func(ctx context.Context, _ []byte) (any, error) {
		return tracker.ListSpecies(ctx)
	})
}

func decodeRequest(raw []byte, target any) error {
	if err := Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
