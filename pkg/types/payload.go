package types

// UpdatePayload is the complete set of editable fields sent in one update.
// The shape does not depend on the run mode: Partner is always present and
// is nil for runs that are not paired.
type UpdatePayload struct {
	ID       string  `json:"id" cbor:"id"`
	Pokemon  int     `json:"pokemon" cbor:"pokemon"`
	Nickname string  `json:"nickname" cbor:"nickname"`
	Location string  `json:"location" cbor:"location"`
	Status   Status  `json:"status" cbor:"status"`
	Partner  *string `json:"partner" cbor:"partner"`
}

// PartnerID returns the partner id, or "" when Partner is nil.
func (p UpdatePayload) PartnerID() string {
	if p.Partner == nil {
		return ""
	}
	return *p.Partner
}

// EntryInput describes a new entry to add to a run.
type EntryInput struct {
	Species  int     `json:"pokemon" cbor:"pokemon"`
	Nickname string  `json:"nickname" cbor:"nickname"`
	Location string  `json:"location" cbor:"location"`
	Status   Status  `json:"status" cbor:"status"`
	Partner  *string `json:"partner" cbor:"partner"`
}
