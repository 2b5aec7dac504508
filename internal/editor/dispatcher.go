package editor

import (
	"context"
	"sync/atomic"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// Dispatcher sends the two mutations of one entry. Each has its own busy
// flag so a surface can disable only the control whose operation is in
// flight. A caller reserves an operation before sending it; a second
// reservation while the first is in flight is refused, not queued.
type Dispatcher struct {
	service  types.Service
	updating atomic.Bool
	deleting atomic.Bool
}

// NewDispatcher returns a dispatcher over service.
func NewDispatcher(service types.Service) *Dispatcher {
	return &Dispatcher{service: service}
}

// Updating reports whether an update is in flight.
func (d *Dispatcher) Updating() bool { return d.updating.Load() }

// Deleting reports whether a delete is in flight.
func (d *Dispatcher) Deleting() bool { return d.deleting.Load() }

// Idle reports whether neither operation is in flight.
func (d *Dispatcher) Idle() bool { return !d.Updating() && !d.Deleting() }

// ReserveUpdate marks an update in flight. It fails with
// ErrSubmitInFlight while another update is.
func (d *Dispatcher) ReserveUpdate() error {
	if !d.updating.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	return nil
}

// ReleaseUpdate drops a reservation that will not be sent.
func (d *Dispatcher) ReleaseUpdate() { d.updating.Store(false) }

// ReserveDelete marks a delete in flight. It fails with
// ErrDeleteInFlight while another delete is.
func (d *Dispatcher) ReserveDelete() error {
	if !d.deleting.CompareAndSwap(false, true) {
		return ErrDeleteInFlight
	}
	return nil
}

// ReleaseDelete drops a reservation that will not be sent.
func (d *Dispatcher) ReleaseDelete() { d.deleting.Store(false) }

// UpdateStatus sends payload as one request under a reservation taken
// with ReserveUpdate, and releases it once the service answers. Failures
// are returned as *RemoteOperationError; nothing is retried.
func (d *Dispatcher) UpdateStatus(ctx context.Context, runID string, payload types.UpdatePayload) (types.Entry, error) {
	defer d.ReleaseUpdate()
	return d.update(ctx, runID, payload)
}

// DeleteEntry removes entryID under a reservation taken with
// ReserveDelete and returns the id the service confirmed.
func (d *Dispatcher) DeleteEntry(ctx context.Context, runID, entryID string) (string, error) {
	defer d.ReleaseDelete()
	return d.remove(ctx, runID, entryID)
}

func (d *Dispatcher) update(ctx context.Context, runID string, payload types.UpdatePayload) (types.Entry, error) {
	entry, err := d.service.UpdateEntryStatus(ctx, runID, payload)
	if err != nil {
		return types.Entry{}, &RemoteOperationError{Op: OpUpdate, EntryID: payload.ID, Err: err}
	}
	return entry, nil
}

func (d *Dispatcher) remove(ctx context.Context, runID, entryID string) (string, error) {
	id, err := d.service.DeleteEntry(ctx, runID, entryID)
	if err != nil {
		return "", &RemoteOperationError{Op: OpDelete, EntryID: entryID, Err: err}
	}
	return id, nil
}
