package editor

import (
	"context"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// ShouldFetch reports whether the candidate pool may be fetched: only for
// an active session with both ids known.
func ShouldFetch(active bool, regionID, runID string) bool {
	return active && regionID != "" && runID != ""
}

// PoolState is what the form renders from. Data is nil until a fetch
// succeeds; the form is replaced by a loading indicator or by Err until
// then.
type PoolState struct {
	Data    *types.CandidatePool
	Loading bool
	Err     error
}

// PoolTicket identifies one fetch. Its result is consumed only while the
// ticket is still the loader's latest.
type PoolTicket struct {
	RegionID   string
	RunID      string
	generation uint64
}

// PoolResult is the outcome of one fetch.
type PoolResult struct {
	Ticket PoolTicket
	Pool   types.CandidatePool
	Err    error
}

type poolKey struct {
	regionID string
	runID    string
}

// Loader gates the candidate-pool fetch on visibility. It fetches at most
// once per (regionID, runID) while active; going inactive forgets the key
// so the next activation fetches again, and any fetch still in flight is
// left to finish unobserved.
type Loader struct {
	service    types.Service
	key        poolKey
	generation uint64
	state      PoolState
}

// NewLoader returns a loader over service.
func NewLoader(service types.Service) *Loader {
	return &Loader{service: service}
}

// State returns the current pool state.
func (l *Loader) State() PoolState { return l.state }

// Sync reconciles the loader with the session. It returns a ticket when a
// fetch must start: the session just became active, or its ids changed
// while active.
func (l *Loader) Sync(active bool, regionID, runID string) (PoolTicket, bool) {
	if !ShouldFetch(active, regionID, runID) {
		if l.key != (poolKey{}) || l.state.Loading {
			l.generation++
			l.key = poolKey{}
			l.state = PoolState{}
		}
		return PoolTicket{}, false
	}

	key := poolKey{regionID: regionID, runID: runID}
	if key == l.key {
		return PoolTicket{}, false
	}
	l.generation++
	l.key = key
	l.state = PoolState{Loading: true}
	return PoolTicket{RegionID: regionID, RunID: runID, generation: l.generation}, true
}

// Fetch performs the remote call for ticket. It touches no loader state
// and may run on any goroutine.
func (l *Loader) Fetch(ctx context.Context, ticket PoolTicket) PoolResult {
	pool, err := l.service.GetCandidatePool(ctx, ticket.RegionID, ticket.RunID)
	if err != nil {
		err = &LoadError{RegionID: ticket.RegionID, RunID: ticket.RunID, Err: err}
	}
	return PoolResult{Ticket: ticket, Pool: pool, Err: err}
}

// Complete applies result if its ticket is still current and reports
// whether it did. Results of superseded or deactivated fetches are
// dropped.
func (l *Loader) Complete(result PoolResult) bool {
	if result.Ticket.generation != l.generation || !l.state.Loading {
		return false
	}
	if result.Err != nil {
		l.state = PoolState{Err: result.Err}
		return true
	}
	pool := result.Pool
	l.state = PoolState{Data: &pool}
	return true
}
