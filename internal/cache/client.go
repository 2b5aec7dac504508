package cache

import (
	"context"
	"errors"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

var _ types.Service = (*Client)(nil)

// Client is a types.Service that reads runs through a Cache.
type Client struct {
	service types.Service
	cache   *Cache
}

// NewClient wraps service. A nil cache gets a fresh one.
func NewClient(service types.Service, cache *Cache) *Client {
	if cache == nil {
		cache = New()
	}
	return &Client{service: service, cache: cache}
}

// Cache returns the cache the client reads through.
func (c *Client) Cache() *Cache {
	return c.cache
}

// GetRun answers from the cache when it can and fetches otherwise.
func (c *Client) GetRun(ctx context.Context, runID string) (types.Run, error) {
	if run, ok := c.cache.ReadRun(runID); ok {
		return run, nil
	}
	return c.Refresh(ctx, runID)
}

// Refresh fetches the run, replaces its cached image and returns it. A run
// the service no longer knows is evicted.
func (c *Client) Refresh(ctx context.Context, runID string) (types.Run, error) {
	run, err := c.service.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, types.ErrRunNotFound) {
			c.cache.Evict(runID)
		}
		return types.Run{}, err
	}
	c.cache.WriteRun(run)
	return run.Clone(), nil
}

// GetCandidatePool is never cached; each editing session loads its own.
func (c *Client) GetCandidatePool(ctx context.Context, regionID, runID string) (types.CandidatePool, error) {
	return c.service.GetCandidatePool(ctx, regionID, runID)
}

// UpdateEntryStatus forwards the update and writes the stored entry back
// into the cached run.
func (c *Client) UpdateEntryStatus(ctx context.Context, runID string, payload types.UpdatePayload) (types.Entry, error) {
	entry, err := c.service.UpdateEntryStatus(ctx, runID, payload)
	if err != nil {
		return types.Entry{}, err
	}
	c.cache.WriteEntry(runID, entry)
	return entry, nil
}

// DeleteEntry forwards the delete. The cached run is patched by the
// caller once the deletion is confirmed.
func (c *Client) DeleteEntry(ctx context.Context, runID, entryID string) (string, error) {
	return c.service.DeleteEntry(ctx, runID, entryID)
}
