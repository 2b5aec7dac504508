// Package tracker implements the run tracker service over a types.Store.
// It owns every update rule: the editor client sends full payloads and
// relies on this layer to accept or reject them.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

var _ types.Tracker = (*Tracker)(nil)

// Tracker is the local implementation of types.Tracker.
type Tracker struct {
	store  types.Store
	logger *slog.Logger
}

// New returns a Tracker over an attached store. A nil logger discards.
func New(store types.Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{store: store, logger: logger}
}

// GetRun returns the run with its entries in display order.
func (t *Tracker) GetRun(ctx context.Context, runID string) (types.Run, error) {
	if err := ctx.Err(); err != nil {
		return types.Run{}, err
	}
	run, err := t.run(runID)
	if err != nil {
		return types.Run{}, err
	}
	run.Entries, err = t.entries(runID)
	if err != nil {
		return types.Run{}, err
	}
	return run, nil
}

// GetCandidatePool returns every entry of the run reduced to a candidate,
// plus the region's locations. The editor removes the entry being edited.
func (t *Tracker) GetCandidatePool(ctx context.Context, regionID, runID string) (types.CandidatePool, error) {
	if err := ctx.Err(); err != nil {
		return types.CandidatePool{}, err
	}
	region, err := t.region(regionID)
	if err != nil {
		return types.CandidatePool{}, err
	}
	if _, err := t.run(runID); err != nil {
		return types.CandidatePool{}, err
	}
	entries, err := t.entries(runID)
	if err != nil {
		return types.CandidatePool{}, err
	}

	pool := types.CandidatePool{
		Candidates: make([]types.Candidate, 0, len(entries)),
		Locations:  region.Locations,
	}
	for _, e := range entries {
		pool.Candidates = append(pool.Candidates, types.Candidate{
			ID:     e.ID,
			Name:   e.DisplayName(),
			Sprite: e.Species.Sprite,
		})
	}
	return pool, nil
}

// UpdateEntryStatus applies the full payload to the entry. The species
// must match the stored one; the partner must be another entry of the
// same run and is only accepted for paired runs.
func (t *Tracker) UpdateEntryStatus(ctx context.Context, runID string, payload types.UpdatePayload) (types.Entry, error) {
	if err := ctx.Err(); err != nil {
		return types.Entry{}, err
	}
	run, err := t.run(runID)
	if err != nil {
		return types.Entry{}, err
	}
	current, err := t.entry(runID, payload.ID)
	if err != nil {
		return types.Entry{}, err
	}

	updated := current.Clone()
	if err := updated.SetStatus(payload.Status); err != nil {
		return types.Entry{}, err
	}
	if _, err := t.species(payload.Pokemon); err != nil {
		return types.Entry{}, err
	}
	if payload.Pokemon != current.Species.ID {
		return types.Entry{}, types.ErrSpeciesMismatch
	}
	partner, err := t.checkPartner(run, payload.ID, payload.PartnerID())
	if err != nil {
		return types.Entry{}, err
	}
	updated.Nickname = payload.Nickname
	updated.Location = payload.Location
	updated.Partner = partner

	table, err := t.store.GetTable(types.TableEntries)
	if err != nil {
		return types.Entry{}, err
	}
	if _, err := table.Set(updated.ID, &updated); err != nil {
		return types.Entry{}, fmt.Errorf("updating entry %s: %w", updated.ID, err)
	}

	t.logger.Info("entry updated",
		"run_id", runID, "entry_id", updated.ID, "status", updated.Status, "partner", updated.PartnerID())
	return updated, nil
}

// DeleteEntry removes the entry and returns its id. Entries that named it
// as partner keep the dangling reference, which reads back as no partner.
func (t *Tracker) DeleteEntry(ctx context.Context, runID, entryID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := t.run(runID); err != nil {
		return "", err
	}
	if _, err := t.entry(runID, entryID); err != nil {
		return "", err
	}

	table, err := t.store.GetTable(types.TableEntries)
	if err != nil {
		return "", err
	}
	if err := table.Delete(entryID); err != nil {
		return "", fmt.Errorf("deleting entry %s: %w", entryID, err)
	}

	t.logger.Info("entry deleted", "run_id", runID, "entry_id", entryID)
	return entryID, nil
}

// CreateRun starts an empty run in a known region.
func (t *Tracker) CreateRun(ctx context.Context, mode types.Mode, regionID, gameID string) (types.Run, error) {
	if err := ctx.Err(); err != nil {
		return types.Run{}, err
	}
	if !mode.Valid() {
		return types.Run{}, types.ErrInvalidMode
	}
	if _, err := t.region(regionID); err != nil {
		return types.Run{}, err
	}

	table, err := t.store.GetTable(types.TableRuns)
	if err != nil {
		return types.Run{}, err
	}
	run := types.Run{Mode: mode, RegionID: regionID, GameID: gameID}
	if _, err := table.Set("", &run); err != nil {
		return types.Run{}, fmt.Errorf("creating run: %w", err)
	}
	run.Entries = []types.Entry{}

	t.logger.Info("run created", "run_id", run.ID, "mode", mode, "region_id", regionID)
	return run, nil
}

// AddEntry appends a new entry to the run. An empty status means SEEN.
func (t *Tracker) AddEntry(ctx context.Context, runID string, input types.EntryInput) (types.Entry, error) {
	if err := ctx.Err(); err != nil {
		return types.Entry{}, err
	}
	run, err := t.run(runID)
	if err != nil {
		return types.Entry{}, err
	}
	species, err := t.species(input.Species)
	if err != nil {
		return types.Entry{}, err
	}

	entry := types.Entry{
		RunID:    runID,
		Nickname: input.Nickname,
		Location: input.Location,
		Species:  species,
		Status:   types.StatusSeen,
	}
	if input.Status != "" {
		if err := entry.SetStatus(input.Status); err != nil {
			return types.Entry{}, err
		}
	}
	partnerID := ""
	if input.Partner != nil {
		partnerID = *input.Partner
	}
	if entry.Partner, err = t.checkPartner(run, "", partnerID); err != nil {
		return types.Entry{}, err
	}

	table, err := t.store.GetTable(types.TableEntries)
	if err != nil {
		return types.Entry{}, err
	}
	if _, err := table.Set("", &entry); err != nil {
		return types.Entry{}, fmt.Errorf("adding entry: %w", err)
	}

	t.logger.Info("entry added", "run_id", runID, "entry_id", entry.ID, "species", species.Name)
	return entry, nil
}

// ListRuns returns every run, newest first, without entries.
func (t *Tracker) ListRuns(ctx context.Context) ([]types.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := t.store.GetTable(types.TableRuns)
	if err != nil {
		return nil, err
	}
	rows, err := table.Fetch(nil)
	if err != nil {
		return nil, err
	}
	runs := make([]types.Run, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, *row.(*types.Run))
	}
	return runs, nil
}

// ListSpecies returns the species catalog ordered by id.
func (t *Tracker) ListSpecies(ctx context.Context) ([]types.Species, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := t.store.GetTable(types.TableSpecies)
	if err != nil {
		return nil, err
	}
	rows, err := table.Fetch(nil)
	if err != nil {
		return nil, err
	}
	species := make([]types.Species, 0, len(rows))
	for _, row := range rows {
		species = append(species, *row.(*types.Species))
	}
	return species, nil
}

// checkPartner resolves partnerID for an entry of run. An empty partnerID
// clears the partner. selfID is "" for entries not yet created.
func (t *Tracker) checkPartner(run types.Run, selfID, partnerID string) (*types.PartnerRef, error) {
	if partnerID == "" {
		return nil, nil
	}
	if !types.IsPaired(run) {
		return nil, types.ErrPartnerNotAllowed
	}
	if partnerID == selfID {
		return nil, types.ErrSelfPartner
	}
	partner, err := t.entry(run.ID, partnerID)
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrPartnerNotInRun
	}
	if err != nil {
		return nil, err
	}
	return &types.PartnerRef{
		ID:    partner.ID,
		Name:  partner.DisplayName(),
		Image: partner.Species.Image,
	}, nil
}

func (t *Tracker) run(runID string) (types.Run, error) {
	table, err := t.store.GetTable(types.TableRuns)
	if err != nil {
		return types.Run{}, err
	}
	row, err := table.Get(runID)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return types.Run{}, types.ErrRunNotFound
	}
	if err != nil {
		return types.Run{}, err
	}
	return *row.(*types.Run), nil
}

// entry returns the entry only if it belongs to runID.
func (t *Tracker) entry(runID, entryID string) (types.Entry, error) {
	table, err := t.store.GetTable(types.TableEntries)
	if err != nil {
		return types.Entry{}, err
	}
	row, err := table.Get(entryID)
	if errors.Is(err, types.ErrInvalidID) {
		return types.Entry{}, types.ErrNotFound
	}
	if err != nil {
		return types.Entry{}, err
	}
	entry := row.(*types.Entry)
	if entry.RunID != runID {
		return types.Entry{}, types.ErrNotFound
	}
	return *entry, nil
}

func (t *Tracker) entries(runID string) ([]types.Entry, error) {
	table, err := t.store.GetTable(types.TableEntries)
	if err != nil {
		return nil, err
	}
	rows, err := table.Fetch(types.Filter{"run_id": runID})
	if err != nil {
		return nil, err
	}
	entries := make([]types.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, *row.(*types.Entry))
	}
	return entries, nil
}

func (t *Tracker) region(regionID string) (types.Region, error) {
	table, err := t.store.GetTable(types.TableRegions)
	if err != nil {
		return types.Region{}, err
	}
	row, err := table.Get(regionID)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return types.Region{}, types.ErrRegionNotFound
	}
	if err != nil {
		return types.Region{}, err
	}
	return *row.(*types.Region), nil
}

func (t *Tracker) species(id int) (types.Species, error) {
	table, err := t.store.GetTable(types.TableSpecies)
	if err != nil {
		return types.Species{}, err
	}
	row, err := table.Get(strconv.Itoa(id))
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return types.Species{}, types.ErrInvalidSpecies
	}
	if err != nil {
		return types.Species{}, err
	}
	return *row.(*types.Species), nil
}
