// Package cache holds the client-side image of runs the editor reads
// from. Cached runs are patched locally after successful mutations instead
// of being refetched.
package cache

import (
	"sync"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// Cache maps run ids to the last known run. Values are copied on the way
// in and on the way out so callers never alias cached state.
type Cache struct {
	mu   sync.RWMutex
	runs map[string]types.Run
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{runs: make(map[string]types.Run)}
}

// ReadRun returns a copy of the cached run.
func (c *Cache) ReadRun(runID string) (types.Run, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	run, ok := c.runs[runID]
	if !ok {
		return types.Run{}, false
	}
	return run.Clone(), true
}

// WriteRun stores a copy of run under run.ID, replacing any earlier image.
func (c *Cache) WriteRun(run types.Run) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs[run.ID] = run.Clone()
}

// WriteEntry replaces the cached entry with the same id in the run's
// collection, keeping its position. It reports whether the run and the
// entry were both cached.
func (c *Cache) WriteEntry(runID string, entry types.Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	run, ok := c.runs[runID]
	if !ok {
		return false
	}
	entries, found := replaceEntry(run.Entries, entry)
	if !found {
		return false
	}
	run.Entries = entries
	c.runs[runID] = run
	return true
}

// PatchDeleted removes entryID from the cached run. An uncached run is
// left alone; it reports whether a run image was patched.
func (c *Cache) PatchDeleted(runID, entryID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	run, ok := c.runs[runID]
	if !ok {
		return false
	}
	run.Entries = RemoveEntry(run.Entries, entryID)
	c.runs[runID] = run
	return true
}

// Evict drops the cached run so the next read fetches it.
func (c *Cache) Evict(runID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.runs, runID)
}
