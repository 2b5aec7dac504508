// Package servicetest provides an in-memory types.Service for tests of the
// layers above the transport.
package servicetest

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// Method names for CallCount, Fail and Hold.
const (
	GetRun            = "GetRun"
	GetCandidatePool  = "GetCandidatePool"
	UpdateEntryStatus = "UpdateEntryStatus"
	DeleteEntry       = "DeleteEntry"
)

var _ types.Service = (*Fake)(nil)

// Fake is a types.Service over in-memory runs. It counts calls, records
// the payloads it receives, and can fail or hold any method.
type Fake struct {
	mu        sync.Mutex
	runs      map[string]types.Run
	locations map[string][]string
	calls     map[string]int
	failures  map[string]error
	holds     map[string]chan struct{}
	updates   []types.UpdatePayload
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		runs:      make(map[string]types.Run),
		locations: make(map[string][]string),
		calls:     make(map[string]int),
		failures:  make(map[string]error),
		holds:     make(map[string]chan struct{}),
	}
}

// AddRun stores a copy of run.
func (f *Fake) AddRun(run types.Run) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[run.ID] = run.Clone()
}

// SetLocations sets the locations returned for regionID.
func (f *Fake) SetLocations(regionID string, locations ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locations[regionID] = locations
}

// Fail makes every later call of method return err. A nil err clears it.
func (f *Fake) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, method)
		return
	}
	f.failures[method] = err
}

// Hold makes calls of method block until the returned release function is
// called or the call's context ends.
func (f *Fake) Hold(method string) (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.holds[method] = ch
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.holds, method)
			f.mu.Unlock()
			close(ch)
		})
	}
}

// CallCount returns how many times method was called.
func (f *Fake) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Updates returns the payloads received by UpdateEntryStatus, in order.
func (f *Fake) Updates() []types.UpdatePayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.UpdatePayload(nil), f.updates...)
}

// Run returns a copy of the stored run.
func (f *Fake) Run(runID string) (types.Run, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	return run.Clone(), ok
}

// enter counts the call, waits on a hold and returns an injected failure.
func (f *Fake) enter(ctx context.Context, method string) error {
	f.mu.Lock()
	f.calls[method]++
	hold := f.holds[method]
	f.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failures[method]
}

func (f *Fake) GetRun(ctx context.Context, runID string) (types.Run, error) {
	if err := f.enter(ctx, GetRun); err != nil {
		return types.Run{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return types.Run{}, types.ErrRunNotFound
	}
	return run.Clone(), nil
}

func (f *Fake) GetCandidatePool(ctx context.Context, regionID, runID string) (types.CandidatePool, error) {
	if err := f.enter(ctx, GetCandidatePool); err != nil {
		return types.CandidatePool{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return types.CandidatePool{}, types.ErrRunNotFound
	}
	pool := types.CandidatePool{Locations: append([]string{}, f.locations[regionID]...)}
	for _, e := range run.Entries {
		pool.Candidates = append(pool.Candidates, types.Candidate{ID: e.ID, Name: e.DisplayName(), Sprite: e.Species.Sprite})
	}
	return pool, nil
}

// UpdateEntryStatus applies the payload without validating it beyond
// entry lookup.
func (f *Fake) UpdateEntryStatus(ctx context.Context, runID string, payload types.UpdatePayload) (types.Entry, error) {
	f.mu.Lock()
	f.updates = append(f.updates, payload)
	f.mu.Unlock()

	if err := f.enter(ctx, UpdateEntryStatus); err != nil {
		return types.Entry{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return types.Entry{}, types.ErrRunNotFound
	}
	for i, e := range run.Entries {
		if e.ID != payload.ID {
			continue
		}
		e.Nickname = payload.Nickname
		e.Location = payload.Location
		e.Status = payload.Status
		e.Partner = nil
		if partner, ok := run.Entry(payload.PartnerID()); ok {
			e.Partner = &types.PartnerRef{ID: partner.ID, Name: partner.DisplayName(), Image: partner.Species.Image}
		}
		run.Entries[i] = e
		f.runs[runID] = run
		return e.Clone(), nil
	}
	return types.Entry{}, types.ErrNotFound
}

func (f *Fake) DeleteEntry(ctx context.Context, runID, entryID string) (string, error) {
	if err := f.enter(ctx, DeleteEntry); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return "", types.ErrRunNotFound
	}
	if _, ok := run.Entry(entryID); !ok {
		return "", types.ErrNotFound
	}
	kept := make([]types.Entry, 0, len(run.Entries))
	for _, e := range run.Entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	run.Entries = kept
	f.runs[runID] = run
	return entryID, nil
}
