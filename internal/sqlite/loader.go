package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTable describes one JSONL-backed table: its file, its SQLite table,
// the columns carried in each record, and the row order used when writing.
type jsonlTable struct {
	file    string
	table   string
	columns []string
	orderBy string
}

// jsonlTableMapping lists the persisted tables. Order matters: tables with
// foreign keys load after the tables they reference. The species and
// regions catalog is seeded, not persisted.
var jsonlTableMapping = []jsonlTable{
	{
		file:    "runs.jsonl",
		table:   "runs",
		columns: []string{"run_id", "mode", "region_id", "game_id", "created_at"},
		orderBy: "created_at, run_id",
	},
	{
		file:    "entries.jsonl",
		table:   "entries",
		columns: []string{"entry_id", "run_id", "species_id", "nickname", "location", "status", "partner_id", "position", "created_at", "updated_at"},
		orderBy: "run_id, position",
	},
}

// jsonlMappingFor returns the mapping for a SQLite table name.
func jsonlMappingFor(table string) (jsonlTable, bool) {
	for _, m := range jsonlTableMapping {
		if m.table == table {
			return m, true
		}
	}
	return jsonlTable{}, false
}

// loadAllJSONL reads each JSONL file from dataDir and inserts its records
// into the corresponding table. Loading is transactional: either every file
// loads or the database stays empty. Malformed lines and records that
// violate constraints are skipped; unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only the
// listed columns are extracted; missing columns insert NULL.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, joinColumns(columns), joinColumns(placeholders),
	))
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = obj[col]
		}
		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
	}
	return nil
}

// joinColumns joins column names with commas.
func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
