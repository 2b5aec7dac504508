package rpc

import (
	"context"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

var _ types.Tracker = (*Remote)(nil)

// Remote implements types.Tracker by calling a Server over its socket.
type Remote struct {
	client *Client
}

// NewRemote returns a Remote for the server listening on socketPath.
func NewRemote(socketPath string) *Remote {
	return &Remote{client: NewClient(socketPath)}
}

func (r *Remote) GetRun(ctx context.Context, runID string) (types.Run, error) {
	var run types.Run
	err := r.client.Call(ctx, ActionGetRun, map[string]any{"run_id": runID}, &run)
	return run, err
}

func (r *Remote) GetCandidatePool(ctx context.Context, regionID, runID string) (types.CandidatePool, error) {
	var pool types.CandidatePool
	err := r.client.Call(ctx, ActionGetCandidatePool,
		map[string]any{"region_id": regionID, "run_id": runID}, &pool)
	return pool, err
}

func (r *Remote) UpdateEntryStatus(ctx context.Context, runID string, payload types.UpdatePayload) (types.Entry, error) {
	var entry types.Entry
	err := r.client.Call(ctx, ActionUpdateEntryStatus,
		map[string]any{"run_id": runID, "payload": payload}, &entry)
	return entry, err
}

func (r *Remote) DeleteEntry(ctx context.Context, runID, entryID string) (string, error) {
	var resp deleteEntryResponse
	err := r.client.Call(ctx, ActionDeleteEntry,
		map[string]any{"run_id": runID, "entry_id": entryID}, &resp)
	return resp.ID, err
}

func (r *Remote) CreateRun(ctx context.Context, mode types.Mode, regionID, gameID string) (types.Run, error) {
	var run types.Run
	err := r.client.Call(ctx, ActionCreateRun,
		map[string]any{"mode": mode, "region_id": regionID, "game_id": gameID}, &run)
	return run, err
}

func (r *Remote) AddEntry(ctx context.Context, runID string, input types.EntryInput) (types.Entry, error) {
	var entry types.Entry
	err := r.client.Call(ctx, ActionAddEntry,
		map[string]any{"run_id": runID, "input": input}, &entry)
	return entry, err
}

func (r *Remote) ListRuns(ctx context.Context) ([]types.Run, error) {
	var runs []types.Run
	err := r.client.Call(ctx, ActionListRuns, nil, &runs)
	return runs, err
}

func (r *Remote) ListSpecies(ctx context.Context) ([]types.Species, error) {
	var species []types.Species
	err := r.client.Call(ctx, ActionListSpecies, nil, &species)
	return species, err
}

// Ping reports whether the server is reachable.
func (r *Remote) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
