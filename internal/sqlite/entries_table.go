package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

var _ types.Table = (*entriesTable)(nil)

// entriesTable implements Table for entries. Each entry is hydrated with
// its species and, when partner_id points at an entry of the same run,
// the partner reference. A partner_id whose entry is gone reads as no
// partner.
type entriesTable struct {
	backend *Backend
}

// entrySelect joins an entry with its species and its partner.
const entrySelect = `SELECT e.entry_id, e.run_id, e.nickname, e.location, e.status,
    e.created_at, e.updated_at,
    s.species_id, s.name, s.image, s.sprite,
    p.entry_id, p.nickname, ps.name, ps.image
FROM entries e
JOIN species s ON s.species_id = e.species_id
LEFT JOIN entries p ON p.entry_id = e.partner_id AND p.run_id = e.run_id
LEFT JOIN species ps ON ps.species_id = p.species_id`

// Get retrieves an entry by ID.
func (et *entriesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := et.backend.conn()
	if err != nil {
		return nil, err
	}

	entry, err := scanEntry(db.QueryRow(entrySelect+" WHERE e.entry_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting entry %s: %w", id, err)
	}
	return entry, nil
}

// Set creates or updates an entry. An empty id creates the entry with a
// new UUID v7 at the end of its run. An update rewrites the editable
// columns and the species; run, position and CreatedAt never change.
// The entry is re-read after the write so the returned struct carries the
// resolved species and partner.
func (et *entriesTable) Set(id string, data any) (string, error) {
	entry, ok := data.(*types.Entry)
	if !ok {
		return "", types.ErrInvalidData
	}
	if !entry.Status.Valid() {
		return "", types.ErrInvalidStatus
	}
	if entry.RunID == "" {
		return "", types.ErrInvalidData
	}
	db, err := et.backend.conn()
	if err != nil {
		return "", err
	}

	et.backend.writeMu.Lock()
	defer et.backend.writeMu.Unlock()

	now := time.Now().UTC()
	var partnerID any
	if entry.Partner != nil && entry.Partner.ID != "" {
		partnerID = entry.Partner.ID
	}

	if id == "" {
		id = generateUUID()
		var position int
		if err := db.QueryRow(
			"SELECT COALESCE(MAX(position), -1) + 1 FROM entries WHERE run_id = ?", entry.RunID,
		).Scan(&position); err != nil {
			return "", fmt.Errorf("assigning position: %w", err)
		}
		_, err = db.Exec(
			`INSERT INTO entries (entry_id, run_id, species_id, nickname, location, status,
                partner_id, position, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, entry.RunID, entry.Species.ID, entry.Nickname, entry.Location,
			string(entry.Status), partnerID, position, formatTime(now), formatTime(now),
		)
	} else {
		var res sql.Result
		res, err = db.Exec(
			`UPDATE entries SET species_id = ?, nickname = ?, location = ?, status = ?,
                partner_id = ?, updated_at = ?
             WHERE entry_id = ? AND run_id = ?`,
			entry.Species.ID, entry.Nickname, entry.Location, string(entry.Status),
			partnerID, formatTime(now), id, entry.RunID,
		)
		if err == nil {
			if n, _ := res.RowsAffected(); n == 0 {
				return "", types.ErrNotFound
			}
		}
	}
	if err != nil {
		return "", fmt.Errorf("persisting entry: %w", err)
	}

	stored, err := scanEntry(db.QueryRow(entrySelect+" WHERE e.entry_id = ?", id))
	if err != nil {
		return "", fmt.Errorf("re-reading entry %s: %w", id, err)
	}
	*entry = *stored

	if err := et.backend.persist(types.TableEntries); err != nil {
		return "", fmt.Errorf("persisting entries.jsonl: %w", err)
	}
	return id, nil
}

// Delete removes one entry. Entries that name it as partner are left as
// they are.
func (et *entriesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := et.backend.conn()
	if err != nil {
		return err
	}

	et.backend.writeMu.Lock()
	defer et.backend.writeMu.Unlock()

	res, err := db.Exec("DELETE FROM entries WHERE entry_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}

	if err := et.backend.persist(types.TableEntries); err != nil {
		return fmt.Errorf("persisting entries.jsonl: %w", err)
	}
	return nil
}

// Fetch returns entries in insertion order. Supported filter keys:
// "run_id" (string) and "status" (types.Status or string).
func (et *entriesTable) Fetch(filter types.Filter) ([]any, error) {
	db, err := et.backend.conn()
	if err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if v, ok := filter["run_id"]; ok {
		runID, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "e.run_id = ?")
		args = append(args, runID)
	}
	if v, ok := filter["status"]; ok {
		switch status := v.(type) {
		case types.Status:
			args = append(args, string(status))
		case string:
			args = append(args, status)
		default:
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "e.status = ?")
	}

	query := entrySelect + whereClause(conditions) + " ORDER BY e.run_id, e.position"
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching entries: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating entry: %w", err)
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return results, nil
}

// scanEntry hydrates one row of entrySelect.
func scanEntry(s scanner) (*types.Entry, error) {
	var e types.Entry
	var status, createdAt, updatedAt string
	var partnerID, partnerNickname, partnerSpecies, partnerImage sql.NullString

	if err := s.Scan(
		&e.ID, &e.RunID, &e.Nickname, &e.Location, &status,
		&createdAt, &updatedAt,
		&e.Species.ID, &e.Species.Name, &e.Species.Image, &e.Species.Sprite,
		&partnerID, &partnerNickname, &partnerSpecies, &partnerImage,
	); err != nil {
		return nil, err
	}

	e.Status = types.Status(status)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	if partnerID.Valid {
		name := partnerNickname.String
		if name == "" {
			name = partnerSpecies.String
		}
		e.Partner = &types.PartnerRef{
			ID:    partnerID.String,
			Name:  name,
			Image: partnerImage.String,
		}
	}
	return &e, nil
}
