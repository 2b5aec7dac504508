// Package types defines the entities of a Nuzlocke run tracker (runs,
// entries, species, regions), the Store and Table interfaces of the
// server-side storage layer, the Service interface the editor talks to,
// and the standard error values shared by every layer.
//
// Entities are plain structs. Behavior is limited to field access and the
// derived predicates every other package relies on, most importantly
// IsPaired, which decides whether an entry's partner field exists at all.
package types
