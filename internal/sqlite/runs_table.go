package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

var _ types.Table = (*runsTable)(nil)

// runsTable implements Table for runs. Runs are returned without entries;
// the entries table is queried separately by run_id.
type runsTable struct {
	backend *Backend
}

// Get retrieves a run by ID and hydrates it to *types.Run.
func (rt *runsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := rt.backend.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT run_id, mode, region_id, game_id, created_at FROM runs WHERE run_id = ?", id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}
	return run, nil
}

// Set creates or updates a run. An empty id creates a run with a new UUID
// v7 and the current time as CreatedAt. Mode and region are not validated
// here; the service layer owns those rules.
func (rt *runsTable) Set(id string, data any) (string, error) {
	run, ok := data.(*types.Run)
	if !ok {
		return "", types.ErrInvalidData
	}
	db, err := rt.backend.conn()
	if err != nil {
		return "", err
	}

	rt.backend.writeMu.Lock()
	defer rt.backend.writeMu.Unlock()

	if id == "" {
		run.ID = generateUUID()
		run.CreatedAt = time.Now().UTC()
		id = run.ID
		_, err = db.Exec(
			"INSERT INTO runs (run_id, mode, region_id, game_id, created_at) VALUES (?, ?, ?, ?, ?)",
			id, string(run.Mode), run.RegionID, run.GameID, formatTime(run.CreatedAt),
		)
	} else {
		var res sql.Result
		res, err = db.Exec(
			"UPDATE runs SET mode = ?, region_id = ?, game_id = ? WHERE run_id = ?",
			string(run.Mode), run.RegionID, run.GameID, id,
		)
		if err == nil {
			if n, _ := res.RowsAffected(); n == 0 {
				return "", types.ErrNotFound
			}
		}
	}
	if err != nil {
		return "", fmt.Errorf("persisting run: %w", err)
	}

	if err := rt.backend.persist(types.TableRuns); err != nil {
		return "", fmt.Errorf("persisting runs.jsonl: %w", err)
	}
	return id, nil
}

// Delete removes a run and every entry that belongs to it.
func (rt *runsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := rt.backend.conn()
	if err != nil {
		return err
	}

	rt.backend.writeMu.Lock()
	defer rt.backend.writeMu.Unlock()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM runs WHERE run_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM entries WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("deleting run entries: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run deletion: %w", err)
	}

	if err := rt.backend.persist(types.TableRuns); err != nil {
		return fmt.Errorf("persisting runs.jsonl: %w", err)
	}
	if err := rt.backend.persist(types.TableEntries); err != nil {
		return fmt.Errorf("persisting entries.jsonl: %w", err)
	}
	return nil
}

// Fetch returns runs ordered by created_at DESC. Supported filter keys:
// "mode" (types.Mode or string) and "region_id" (string).
func (rt *runsTable) Fetch(filter types.Filter) ([]any, error) {
	db, err := rt.backend.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT run_id, mode, region_id, game_id, created_at FROM runs"
	var conditions []string
	var args []any

	if v, ok := filter["mode"]; ok {
		switch mode := v.(type) {
		case types.Mode:
			args = append(args, string(mode))
		case string:
			args = append(args, mode)
		default:
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "mode = ?")
	}
	if v, ok := filter["region_id"]; ok {
		regionID, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "region_id = ?")
		args = append(args, regionID)
	}
	query += whereClause(conditions) + " ORDER BY created_at DESC, run_id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching runs: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating run: %w", err)
		}
		results = append(results, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return results, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*types.Run, error) {
	var run types.Run
	var mode, createdAt string
	if err := s.Scan(&run.ID, &mode, &run.RegionID, &run.GameID, &createdAt); err != nil {
		return nil, err
	}
	run.Mode = types.Mode(mode)
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}
