package types

import (
	"strings"
	"time"
)

// Status is the in-run status of an entry.
type Status string

// Entry statuses. There is no transition table: any status may move to any
// other, including out of StatusDead.
const (
	StatusInTeam Status = "IN_TEAM"
	StatusInPC   Status = "IN_PC"
	StatusSeen   Status = "SEEN"
	StatusDead   Status = "DEAD"
)

// Statuses lists the status vocabulary in display order.
var Statuses = []Status{
	StatusInTeam,
	StatusInPC,
	StatusSeen,
	StatusDead,
}

// statusLabels maps each status to its short human-readable label.
var statusLabels = map[Status]string{
	StatusInTeam: "in team",
	StatusInPC:   "in pc",
	StatusSeen:   "seen",
	StatusDead:   "dead",
}

// Valid reports whether s is part of the status vocabulary.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the short label shown next to a status in selects.
// Unknown statuses are returned verbatim.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseStatus converts user input into a Status. It accepts the wire value
// in any case and the label form ("in team", "in-pc").
// Returns ErrInvalidStatus for anything outside the vocabulary.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	s := Status(normalized)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Species is a creature definition from the built-in catalog. Entries
// reference a species and never edit it.
type Species struct {
	ID     int    `json:"id" cbor:"id"`
	Name   string `json:"name" cbor:"name"`
	Image  string `json:"image" cbor:"image"`
	Sprite string `json:"sprite" cbor:"sprite"`
}

// PartnerRef is the resolved reference from one entry to its paired
// entry in the same run.
type PartnerRef struct {
	ID    string `json:"id" cbor:"id"`
	Name  string `json:"name" cbor:"name"`
	Image string `json:"image" cbor:"image"`
}

// Entry is one tracked creature instance within a run.
type Entry struct {
	ID        string      `json:"id" cbor:"id"`
	RunID     string      `json:"run_id" cbor:"run_id"`
	Nickname  string      `json:"nickname" cbor:"nickname"`
	Location  string      `json:"location" cbor:"location"`
	Status    Status      `json:"status" cbor:"status"`
	Species   Species     `json:"pokemon" cbor:"pokemon"`
	Partner   *PartnerRef `json:"partner,omitempty" cbor:"partner,omitempty"`
	CreatedAt time.Time   `json:"created_at" cbor:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" cbor:"updated_at"`
}

// SetStatus sets the entry status. Any valid status is accepted from any
// other; returns ErrInvalidStatus otherwise and leaves the entry unchanged.
func (e *Entry) SetStatus(s Status) error {
	if !s.Valid() {
		return ErrInvalidStatus
	}
	e.Status = s
	return nil
}

// PartnerID returns the partner entry id, or "" when there is none.
func (e Entry) PartnerID() string {
	if e.Partner == nil {
		return ""
	}
	return e.Partner.ID
}

// DisplayName returns the nickname, falling back to the species name.
func (e Entry) DisplayName() string {
	if e.Nickname != "" {
		return e.Nickname
	}
	return e.Species.Name
}

// Clone returns a copy of e that shares no pointers with it.
func (e Entry) Clone() Entry {
	if e.Partner != nil {
		partner := *e.Partner
		e.Partner = &partner
	}
	return e
}
