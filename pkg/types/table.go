package types

import "errors"

// Filter selects rows in Table.Fetch. Keys are table specific (for example
// "run_id" on the entries table); unknown keys are ignored.
type Filter map[string]any

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity struct.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every entity in the table.
	Fetch(filter Filter) ([]any, error)
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
	ErrReadOnly      = errors.New("table is read-only")
)

// Entity rule errors.
var (
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidMode       = errors.New("invalid run mode")
	ErrInvalidSpecies    = errors.New("unknown species")
	ErrSpeciesMismatch   = errors.New("species does not match the stored entry")
	ErrRunNotFound       = errors.New("run not found")
	ErrRegionNotFound    = errors.New("region not found")
	ErrPartnerNotAllowed = errors.New("partner is only allowed in soul link runs")
	ErrPartnerNotInRun   = errors.New("partner does not belong to the run")
	ErrSelfPartner       = errors.New("entry cannot be its own partner")
)
