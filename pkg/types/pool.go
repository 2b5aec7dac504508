package types

// Candidate is an entry reduced to what a partner select shows.
type Candidate struct {
	ID     string `json:"id" cbor:"id"`
	Name   string `json:"name" cbor:"name"`
	Sprite string `json:"sprite" cbor:"sprite"`
}

// CandidatePool is the read-only data an editing session loads once:
// partner candidates from the run and the region's known locations.
// Locations are advisory; nothing validates an entry against them.
type CandidatePool struct {
	Candidates []Candidate `json:"pokemons" cbor:"pokemons"`
	Locations  []string    `json:"locations" cbor:"locations"`
}

// Excluding returns the candidates other than entryID, in pool order.
func (p CandidatePool) Excluding(entryID string) []Candidate {
	out := make([]Candidate, 0, len(p.Candidates))
	for _, c := range p.Candidates {
		if c.ID != entryID {
			out = append(out, c)
		}
	}
	return out
}

// Region is a game region and the locations an entry can be caught at.
type Region struct {
	ID        string   `json:"id" cbor:"id"`
	Name      string   `json:"name" cbor:"name"`
	Locations []string `json:"locations" cbor:"locations"`
}
