// Package sqlite implements the SQLite storage backend for the run tracker.
// SQLite is the query engine; the JSONL files in DataDir are the source of
// truth and are loaded into a fresh database on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// dbFileName is the SQLite file created inside DataDir.
const dbFileName = "nuzlocke.db"

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface using SQLite as the query engine
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table

	// writeMu serializes mutations so that multi-statement writes (position
	// assignment, JSONL rewrite) never interleave.
	writeMu sync.Mutex

	// dirty holds JSONL-backed tables with unflushed changes under the
	// on_close sync strategy.
	dirty map[string]bool
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
		dirty:  make(map[string]bool),
	}
}

// GetTable returns a Table for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, builds the SQLite schema, seeds the
// built-in catalog, and loads runs and entries from JSONL.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is rebuilt from JSONL on every attach.
	dbPath := filepath.Join(config.DataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// One connection: SQLite serializes writers anyway and this keeps
	// PRAGMA state consistent across statements.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}
	if err := seedCatalog(db); err != nil {
		db.Close()
		return fmt.Errorf("seeding catalog: %w", err)
	}
	if err := initJSONLFiles(config.DataDir); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, config.DataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dirty = make(map[string]bool)
	b.attached = true

	b.tables[types.TableRuns] = &runsTable{backend: b}
	b.tables[types.TableEntries] = &entriesTable{backend: b}
	b.tables[types.TableSpecies] = &speciesTable{backend: b}
	b.tables[types.TableRegions] = &regionsTable{backend: b}

	return nil
}

// Detach flushes pending JSONL writes and closes the database. After
// Detach, GetTable returns ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.writeMu.Lock()
	err := b.flushDirtyLocked()
	b.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.attached = false
	b.tables = make(map[string]types.Table)

	return nil
}

// conn returns the open database, or ErrStoreDetached.
func (b *Backend) conn() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}

// persist records a change to a JSONL-backed table. Under SyncImmediate the
// file is rewritten now; under SyncOnClose the table is marked dirty and
// written on Detach. The caller must hold b.writeMu.
func (b *Backend) persist(tableName string) error {
	if b.config.EffectiveSyncStrategy() == types.SyncOnClose {
		b.dirty[tableName] = true
		return nil
	}
	return persistTableJSONL(b.db, b.config.DataDir, tableName)
}

// flushDirtyLocked writes every dirty table. The caller must hold b.writeMu.
func (b *Backend) flushDirtyLocked() error {
	for _, mapping := range jsonlTableMapping {
		if !b.dirty[mapping.table] {
			continue
		}
		if err := persistTableJSONL(b.db, b.config.DataDir, mapping.table); err != nil {
			return fmt.Errorf("flush %s: %w", mapping.table, err)
		}
		delete(b.dirty, mapping.table)
	}
	return nil
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
