package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

var (
	_ types.Table = (*speciesTable)(nil)
	_ types.Table = (*regionsTable)(nil)
)

// speciesTable exposes the seeded species catalog. It is read-only.
type speciesTable struct {
	backend *Backend
}

// Get retrieves a species by its numeric id given in decimal.
func (st *speciesTable) Get(id string) (any, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := st.backend.conn()
	if err != nil {
		return nil, err
	}

	var s types.Species
	err = db.QueryRow(
		"SELECT species_id, name, image, sprite FROM species WHERE species_id = ?", n,
	).Scan(&s.ID, &s.Name, &s.Image, &s.Sprite)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting species %d: %w", n, err)
	}
	return &s, nil
}

func (st *speciesTable) Set(string, any) (string, error) { return "", types.ErrReadOnly }

func (st *speciesTable) Delete(string) error { return types.ErrReadOnly }

// Fetch returns every species ordered by id. Filters are ignored.
func (st *speciesTable) Fetch(types.Filter) ([]any, error) {
	db, err := st.backend.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT species_id, name, image, sprite FROM species ORDER BY species_id")
	if err != nil {
		return nil, fmt.Errorf("fetching species: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var s types.Species
		if err := rows.Scan(&s.ID, &s.Name, &s.Image, &s.Sprite); err != nil {
			return nil, fmt.Errorf("scanning species: %w", err)
		}
		results = append(results, &s)
	}
	return results, rows.Err()
}

// regionsTable exposes the seeded regions with their locations. It is
// read-only.
type regionsTable struct {
	backend *Backend
}

// Get retrieves a region with its locations in route order.
func (rt *regionsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := rt.backend.conn()
	if err != nil {
		return nil, err
	}

	region := types.Region{ID: id}
	err = db.QueryRow("SELECT name FROM regions WHERE region_id = ?", id).Scan(&region.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting region %s: %w", id, err)
	}

	region.Locations, err = regionLocations(db, id)
	if err != nil {
		return nil, err
	}
	return &region, nil
}

func (rt *regionsTable) Set(string, any) (string, error) { return "", types.ErrReadOnly }

func (rt *regionsTable) Delete(string) error { return types.ErrReadOnly }

// Fetch returns every region ordered by id, each with its locations.
func (rt *regionsTable) Fetch(types.Filter) ([]any, error) {
	db, err := rt.backend.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT region_id, name FROM regions ORDER BY region_id")
	if err != nil {
		return nil, fmt.Errorf("fetching regions: %w", err)
	}
	var regions []*types.Region
	for rows.Next() {
		var r types.Region
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning region: %w", err)
		}
		regions = append(regions, &r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating regions: %w", err)
	}

	results := make([]any, 0, len(regions))
	for _, r := range regions {
		if r.Locations, err = regionLocations(db, r.ID); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func regionLocations(db *sql.DB, regionID string) ([]string, error) {
	rows, err := db.Query(
		"SELECT name FROM region_locations WHERE region_id = ? ORDER BY ordinal", regionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying locations of %s: %w", regionID, err)
	}
	defer rows.Close()

	locations := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, name)
	}
	return locations, rows.Err()
}
