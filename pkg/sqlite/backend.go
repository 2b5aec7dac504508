// Package sqlite exposes the SQLite store while keeping its tables
// internal.
package sqlite

import (
	"github.com/mesh-intelligence/nuzlocke/internal/sqlite"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// NewBackend returns an unattached SQLite store. Call Attach before use.
//
//	store := sqlite.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".nuzlocke-db",
//	})
//	defer store.Detach()
func NewBackend() types.Store {
	return sqlite.NewBackend()
}
