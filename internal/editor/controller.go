// Package editor is the entry editing session: the form state machine,
// the gated candidate-pool loader, the mutation dispatcher and the panel
// controller that composes them.
//
// A Controller is driven from a single goroutine, typically a UI event
// loop. Remote calls are split into Begin, Do and Finish steps: Begin and
// Finish touch session state and run on the loop, Do only talks to the
// service and may run anywhere. Every Finish checks the session generation
// and drops completions that belong to a session that has since closed.
package editor

import (
	"context"
	"log/slog"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// Patcher removes a deleted entry from cached state. *cache.Cache
// implements it.
type Patcher interface {
	PatchDeleted(runID, entryID string) bool
}

// UpdateTicket is an update that has begun.
type UpdateTicket struct {
	RunID      string
	Payload    types.UpdatePayload
	generation uint64
	dispatcher *Dispatcher
}

// UpdateResult is the outcome of an update.
type UpdateResult struct {
	Ticket UpdateTicket
	Entry  types.Entry
	Err    error
}

// DeleteTicket is a delete that has begun.
type DeleteTicket struct {
	RunID      string
	EntryID    string
	generation uint64
	dispatcher *Dispatcher
}

// DeleteResult is the outcome of a delete.
type DeleteResult struct {
	Ticket DeleteTicket
	ID     string
	Err    error
}

// Controller owns the open flag and the bound run and entry, and composes
// one editing session from them.
type Controller struct {
	service types.Service
	patcher Patcher
	logger  *slog.Logger
	loader  *Loader

	// dispatchers outlive sessions so an entry reopened while one of its
	// mutations is in flight stays busy. Idle ones are pruned.
	dispatchers map[string]*Dispatcher

	open       bool
	generation uint64
	run        types.Run
	entry      *types.Entry
	form       *Form
	dispatcher *Dispatcher
	updateErr  error
	deleteErr  error
}

// NewController returns a closed controller. A nil logger discards.
func NewController(service types.Service, patcher Patcher, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		service: service,
		patcher: patcher,
		logger:  logger,
		loader:  NewLoader(service),

		dispatchers: make(map[string]*Dispatcher),
	}
}

// Open binds the controller to entryID of run and starts a session. A
// session already open is replaced and its pending completions become
// stale. Returns ErrNoEntry, leaving the controller unchanged, when the
// run has no such entry.
func (c *Controller) Open(run types.Run, entryID string) error {
	entry, ok := run.Entry(entryID)
	if !ok {
		return ErrNoEntry
	}

	var previous string
	if c.entry != nil {
		previous = c.entry.ID
	}

	c.generation++
	c.open = true
	c.run = run.Clone()
	c.entry = &entry
	c.form = NewForm(c.run, entry)
	c.dispatcher = c.dispatcherFor(entryID)
	c.updateErr = nil
	c.deleteErr = nil
	if previous != "" {
		c.prune(previous)
	}

	c.logger.Debug("editor opened",
		"run_id", run.ID, "entry_id", entryID, "generation", c.generation, "paired", types.IsPaired(run))
	return nil
}

// Close ends the session and discards its form. Completions still in
// flight are dropped when they arrive.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.generation++
	c.open = false
	if c.form != nil {
		c.form.Close()
	}
	var entryID string
	if c.entry != nil {
		entryID = c.entry.ID
	}
	c.form = nil
	c.entry = nil
	c.dispatcher = nil
	c.prune(entryID)
	c.updateErr = nil
	c.deleteErr = nil
	c.loader.Sync(false, "", "")

	c.logger.Debug("editor closed", "run_id", c.run.ID, "generation", c.generation)
}

// dispatcherFor returns the dispatcher of entryID, creating it when the
// entry has none.
func (c *Controller) dispatcherFor(entryID string) *Dispatcher {
	d, ok := c.dispatchers[entryID]
	if !ok {
		d = NewDispatcher(c.service)
		c.dispatchers[entryID] = d
	}
	return d
}

// prune forgets the dispatcher of entryID once it is idle and no session
// holds it.
func (c *Controller) prune(entryID string) {
	d, ok := c.dispatchers[entryID]
	if !ok || d == c.dispatcher || !d.Idle() {
		return
	}
	delete(c.dispatchers, entryID)
}

// IsOpen reports the open flag.
func (c *Controller) IsOpen() bool { return c.open }

// Visible reports whether there is anything to render: the session is
// open and an entry is bound.
func (c *Controller) Visible() bool { return c.open && c.entry != nil }

// Generation returns the session counter. It changes on every Open and
// Close.
func (c *Controller) Generation() uint64 { return c.generation }

// Run returns the bound run.
func (c *Controller) Run() types.Run { return c.run }

// Entry returns the bound entry.
func (c *Controller) Entry() (types.Entry, bool) {
	if c.entry == nil {
		return types.Entry{}, false
	}
	return *c.entry, true
}

// Form returns the session form, or nil when closed.
func (c *Controller) Form() *Form { return c.form }

// Pool returns the candidate-pool state.
func (c *Controller) Pool() PoolState { return c.loader.State() }

// Updating and Deleting report the busy flags of the bound entry. They
// survive Close, so reopening an entry whose mutation is pending shows it
// busy.
func (c *Controller) Updating() bool { return c.dispatcher != nil && c.dispatcher.Updating() }
func (c *Controller) Deleting() bool { return c.dispatcher != nil && c.dispatcher.Deleting() }

// UpdateErr and DeleteErr return the last failure of each operation in
// this session.
func (c *Controller) UpdateErr() error { return c.updateErr }
func (c *Controller) DeleteErr() error { return c.deleteErr }

// Candidates returns the partner candidates of the session, without the
// bound entry itself.
func (c *Controller) Candidates() ([]types.Candidate, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	pool := c.loader.State().Data
	if pool == nil {
		return nil, ErrPoolNotLoaded
	}
	return pool.Excluding(c.entry.ID), nil
}

// Locations returns the known locations of the run's region.
func (c *Controller) Locations() ([]string, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	pool := c.loader.State().Data
	if pool == nil {
		return nil, ErrPoolNotLoaded
	}
	return pool.Locations, nil
}

func (c *Controller) ready() error {
	if !c.open {
		return ErrSessionClosed
	}
	if c.entry == nil {
		return ErrNoEntry
	}
	return nil
}

// PoolRequest returns a ticket when the candidate pool must be fetched
// for the current session.
func (c *Controller) PoolRequest() (PoolTicket, bool) {
	return c.loader.Sync(c.Visible(), c.run.RegionID, c.run.ID)
}

// FetchPool performs the fetch of ticket.
func (c *Controller) FetchPool(ctx context.Context, ticket PoolTicket) PoolResult {
	return c.loader.Fetch(ctx, ticket)
}

// ApplyPool consumes a fetch result and reports whether it was current.
func (c *Controller) ApplyPool(result PoolResult) bool {
	if !c.loader.Complete(result) {
		c.logger.Debug("stale candidate pool dropped", "run_id", result.Ticket.RunID)
		return false
	}
	if result.Err != nil {
		c.logger.Warn("candidate pool failed", "run_id", result.Ticket.RunID, "error", result.Err)
	}
	return true
}

// LoadPool runs PoolRequest, FetchPool and ApplyPool in sequence.
func (c *Controller) LoadPool(ctx context.Context) PoolState {
	if ticket, ok := c.PoolRequest(); ok {
		c.ApplyPool(c.FetchPool(ctx, ticket))
	}
	return c.Pool()
}

// BeginSubmit moves the form to submitting and returns the update to
// send. It fails with ErrSubmitInFlight while an update is pending.
func (c *Controller) BeginSubmit() (UpdateTicket, error) {
	if err := c.ready(); err != nil {
		return UpdateTicket{}, err
	}
	if err := c.dispatcher.ReserveUpdate(); err != nil {
		return UpdateTicket{}, err
	}
	payload, err := c.form.BeginSubmit()
	if err != nil {
		c.dispatcher.ReleaseUpdate()
		return UpdateTicket{}, err
	}
	c.updateErr = nil
	return UpdateTicket{
		RunID:      c.run.ID,
		Payload:    payload,
		generation: c.generation,
		dispatcher: c.dispatcher,
	}, nil
}

// DoSubmit sends the update of ticket. The busy flag clears when the
// service answers.
func (c *Controller) DoSubmit(ctx context.Context, ticket UpdateTicket) UpdateResult {
	entry, err := ticket.dispatcher.UpdateStatus(ctx, ticket.RunID, ticket.Payload)
	return UpdateResult{Ticket: ticket, Entry: entry, Err: err}
}

// FinishSubmit applies an update result. Success closes the session;
// failure returns the form to editing and is returned. A result from an
// earlier session is dropped.
func (c *Controller) FinishSubmit(result UpdateResult) error {
	c.prune(result.Ticket.Payload.ID)
	if result.Ticket.generation != c.generation {
		c.logger.Debug("stale update completion dropped",
			"entry_id", result.Ticket.Payload.ID, "generation", result.Ticket.generation)
		return nil
	}
	if result.Err != nil {
		c.form.SubmitFailed(result.Err)
		c.updateErr = result.Err
		c.logger.Warn("entry update failed", "entry_id", result.Ticket.Payload.ID, "error", result.Err)
		return result.Err
	}
	c.form.SubmitSucceeded()
	c.logger.Info("entry updated", "run_id", result.Ticket.RunID, "entry_id", result.Entry.ID)
	c.Close()
	return nil
}

// Submit sends the working values and waits for the outcome.
func (c *Controller) Submit(ctx context.Context) error {
	ticket, err := c.BeginSubmit()
	if err != nil {
		return err
	}
	return c.FinishSubmit(c.DoSubmit(ctx, ticket))
}

// BeginDelete marks the delete busy and returns the request to send. It
// fails with ErrDeleteInFlight while a delete is pending.
func (c *Controller) BeginDelete() (DeleteTicket, error) {
	if err := c.ready(); err != nil {
		return DeleteTicket{}, err
	}
	if err := c.dispatcher.ReserveDelete(); err != nil {
		return DeleteTicket{}, err
	}
	c.deleteErr = nil
	return DeleteTicket{
		RunID:      c.run.ID,
		EntryID:    c.entry.ID,
		generation: c.generation,
		dispatcher: c.dispatcher,
	}, nil
}

// DoDelete sends the delete of ticket.
func (c *Controller) DoDelete(ctx context.Context, ticket DeleteTicket) DeleteResult {
	id, err := ticket.dispatcher.DeleteEntry(ctx, ticket.RunID, ticket.EntryID)
	return DeleteResult{Ticket: ticket, ID: id, Err: err}
}

// FinishDelete applies a delete result. A confirmed delete removes the
// returned id from the cached run, then closes the session. The cache is
// patched even when the session has moved on, since the entry is gone
// either way; the session itself is only touched by a current result.
func (c *Controller) FinishDelete(result DeleteResult) error {
	c.prune(result.Ticket.EntryID)
	if result.Err == nil && c.patcher != nil {
		c.patcher.PatchDeleted(result.Ticket.RunID, result.ID)
	}
	if result.Ticket.generation != c.generation {
		c.logger.Debug("stale delete completion dropped",
			"entry_id", result.Ticket.EntryID, "generation", result.Ticket.generation)
		return nil
	}
	if result.Err != nil {
		c.deleteErr = result.Err
		c.logger.Warn("entry delete failed", "entry_id", result.Ticket.EntryID, "error", result.Err)
		return result.Err
	}
	c.logger.Info("entry deleted", "run_id", result.Ticket.RunID, "entry_id", result.ID)
	c.Close()
	return nil
}

// Delete removes the bound entry and waits for the outcome.
func (c *Controller) Delete(ctx context.Context) error {
	ticket, err := c.BeginDelete()
	if err != nil {
		return err
	}
	return c.FinishDelete(c.DoDelete(ctx, ticket))
}
