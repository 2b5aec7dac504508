package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for all tables.
const (
	createRuns = `CREATE TABLE runs (
    run_id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    region_id TEXT NOT NULL,
    game_id TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createSpecies = `CREATE TABLE species (
    species_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    image TEXT NOT NULL,
    sprite TEXT NOT NULL
);`

	createEntries = `CREATE TABLE entries (
    entry_id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    species_id INTEGER NOT NULL,
    nickname TEXT NOT NULL,
    location TEXT NOT NULL,
    status TEXT NOT NULL,
    partner_id TEXT,
    position INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id),
    FOREIGN KEY (species_id) REFERENCES species(species_id)
);`

	createRegions = `CREATE TABLE regions (
    region_id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);`

	createRegionLocations = `CREATE TABLE region_locations (
    region_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (region_id, ordinal),
    FOREIGN KEY (region_id) REFERENCES regions(region_id)
);`
)

// Index DDL for common queries.
const (
	idxEntriesRun      = `CREATE INDEX idx_entries_run ON entries(run_id, position);`
	idxEntriesPartner  = `CREATE INDEX idx_entries_partner ON entries(partner_id);`
	idxRunsCreated     = `CREATE INDEX idx_runs_created ON runs(created_at);`
	idxRegionLocations = `CREATE INDEX idx_region_locations ON region_locations(region_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createRuns,
	createSpecies,
	createEntries,
	createRegions,
	createRegionLocations,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEntriesRun,
	idxEntriesPartner,
	idxRunsCreated,
	idxRegionLocations,
}

// createSchema executes every table and index statement.
func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
