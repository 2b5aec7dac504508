package cache

import "github.com/mesh-intelligence/nuzlocke/pkg/types"

// RemoveEntry returns entries without the entry whose id is id. The
// remaining entries keep their order and values. The input slice is not
// modified; when id is absent the result equals the input.
func RemoveEntry(entries []types.Entry, id string) []types.Entry {
	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// replaceEntry returns entries with the element carrying entry.ID swapped
// for entry, in place, and whether such an element existed.
func replaceEntry(entries []types.Entry, entry types.Entry) ([]types.Entry, bool) {
	out := make([]types.Entry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].ID == entry.ID {
			out[i] = entry.Clone()
			return out, true
		}
	}
	return out, false
}
