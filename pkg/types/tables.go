package types

// Standard table names for Store.GetTable.
const (
	TableRuns    = "runs"
	TableEntries = "entries"
	TableSpecies = "species"
	TableRegions = "regions"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TableRuns,
	TableEntries,
	TableSpecies,
	TableRegions,
}
