package editor

import "github.com/mesh-intelligence/nuzlocke/pkg/types"

// Fields are the working values every run mode edits.
type Fields struct {
	Nickname string
	Location string
	Status   types.Status
}

// Values is the working state of one form. It is StandardValues or
// PairedValues, chosen once per session from the run mode, so a run that
// is not paired has no partner value to leak into a payload.
type Values interface {
	fields() *Fields
	partner() *string
}

// StandardValues are the working values of a run without pairing.
type StandardValues struct {
	Fields
}

// PairedValues are the working values of a SOUL_LINK run. A nil Partner
// means the entry has no partner.
type PairedValues struct {
	Fields
	Partner *string
}

func (v *StandardValues) fields() *Fields  { return &v.Fields }
func (v *StandardValues) partner() *string { return nil }

func (v *PairedValues) fields() *Fields { return &v.Fields }
func (v *PairedValues) partner() *string {
	if v.Partner == nil {
		return nil
	}
	id := *v.Partner
	return &id
}

// Seed builds the working values of entry verbatim. The partner is read
// only when run is paired.
func Seed(run types.Run, entry types.Entry) Values {
	fields := Fields{
		Nickname: entry.Nickname,
		Location: entry.Location,
		Status:   entry.Status,
	}
	if !types.IsPaired(run) {
		return &StandardValues{Fields: fields}
	}
	paired := &PairedValues{Fields: fields}
	if id := entry.PartnerID(); id != "" {
		paired.Partner = &id
	}
	return paired
}

// Payload builds the full update for entry from values. Partner is nil
// for standard values whatever the entry held.
func Payload(entry types.Entry, values Values) types.UpdatePayload {
	f := values.fields()
	return types.UpdatePayload{
		ID:       entry.ID,
		Pokemon:  entry.Species.ID,
		Nickname: f.Nickname,
		Location: f.Location,
		Status:   f.Status,
		Partner:  values.partner(),
	}
}
