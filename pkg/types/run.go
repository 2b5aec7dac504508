package types

import "time"

// Mode is the rule set a run is played under.
type Mode string

// Run modes. Only ModeSoulLink pairs entries; every other mode disables
// the partner field entirely.
const (
	ModeNuzlocke    Mode = "NUZLOCKE"
	ModeSoulLink    Mode = "SOUL_LINK"
	ModeWonderlocke Mode = "WONDERLOCKE"
)

// validModes is the set of recognized run modes.
var validModes = map[Mode]bool{
	ModeNuzlocke:    true,
	ModeSoulLink:    true,
	ModeWonderlocke: true,
}

// Valid reports whether m is a recognized run mode.
func (m Mode) Valid() bool {
	return validModes[m]
}

// Run is a tracked play-through. Entries are kept in insertion order,
// which is also display order.
type Run struct {
	ID        string    `json:"id" cbor:"id"`
	Mode      Mode      `json:"type" cbor:"type"`
	RegionID  string    `json:"region_id" cbor:"region_id"`
	GameID    string    `json:"game_id" cbor:"game_id"`
	Entries   []Entry   `json:"pokemons" cbor:"pokemons"`
	CreatedAt time.Time `json:"created_at" cbor:"created_at"`
}

// IsPaired reports whether run pairs its entries. The partner field of an
// entry exists only when this is true.
func IsPaired(run Run) bool {
	return run.Mode == ModeSoulLink
}

// Entry returns the entry with the given id.
func (r Run) Entry(id string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Clone returns a deep copy of r. A nil entry slice stays nil.
func (r Run) Clone() Run {
	if r.Entries == nil {
		return r
	}
	entries := make([]Entry, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = e.Clone()
	}
	r.Entries = entries
	return r
}
