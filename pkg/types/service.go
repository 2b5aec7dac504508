package types

import "context"

// Service is the remote typed-query boundary the editor consumes. Each
// method is one named operation with typed variables; implementations
// return the typed result or an error. The local tracker, the socket
// client and the caching client all implement it.
type Service interface {
	// GetRun returns the run with its entries in display order.
	// Returns ErrRunNotFound if the run does not exist.
	GetRun(ctx context.Context, runID string) (Run, error)

	// GetCandidatePool returns the partner candidates of the run and the
	// known locations of the region.
	GetCandidatePool(ctx context.Context, regionID, runID string) (CandidatePool, error)

	// UpdateEntryStatus applies payload to the entry it names and returns
	// the stored entry.
	UpdateEntryStatus(ctx context.Context, runID string, payload UpdatePayload) (Entry, error)

	// DeleteEntry removes the entry and returns its id.
	DeleteEntry(ctx context.Context, runID, entryID string) (string, error)
}

// Tracker extends Service with the operations that create runs and
// entries and list the built-in catalog.
type Tracker interface {
	Service

	// CreateRun starts a new run with no entries.
	CreateRun(ctx context.Context, mode Mode, regionID, gameID string) (Run, error)

	// AddEntry appends an entry to the run.
	AddEntry(ctx context.Context, runID string, input EntryInput) (Entry, error)

	// ListRuns returns every run, newest first, without entries.
	ListRuns(ctx context.Context) ([]Run, error)

	// ListSpecies returns the species catalog ordered by id.
	ListSpecies(ctx context.Context) ([]Species, error)
}
