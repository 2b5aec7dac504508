package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
)

// builtInSpecies is a species seeded into the catalog on every attach.
type builtInSpecies struct {
	id   int
	name string
}

// builtInSpeciesList covers the encounters of the early routes of the
// seeded regions.
var builtInSpeciesList = []builtInSpecies{
	{1, "Bulbasaur"},
	{4, "Charmander"},
	{7, "Squirtle"},
	{10, "Caterpie"},
	{13, "Weedle"},
	{16, "Pidgey"},
	{19, "Rattata"},
	{21, "Spearow"},
	{25, "Pikachu"},
	{29, "Nidoran-F"},
	{32, "Nidoran-M"},
	{41, "Zubat"},
	{43, "Oddish"},
	{56, "Mankey"},
	{63, "Abra"},
	{66, "Machop"},
	{74, "Geodude"},
	{92, "Gastly"},
	{129, "Magikarp"},
	{133, "Eevee"},
	{152, "Chikorita"},
	{155, "Cyndaquil"},
	{158, "Totodile"},
	{161, "Sentret"},
	{163, "Hoothoot"},
	{252, "Treecko"},
	{255, "Torchic"},
	{258, "Mudkip"},
	{261, "Poochyena"},
	{263, "Zigzagoon"},
}

// builtInRegion is a region and its ordered location list.
type builtInRegion struct {
	id        string
	name      string
	locations []string
}

var builtInRegions = []builtInRegion{
	{
		id:   "kanto",
		name: "Kanto",
		locations: []string{
			"Pallet Town", "Route 1", "Viridian City", "Route 22", "Route 2",
			"Viridian Forest", "Pewter City", "Route 3", "Mt. Moon", "Route 4",
			"Cerulean City", "Route 24", "Route 25", "Route 5", "Route 6",
			"Vermilion City", "S.S. Anne", "Route 11", "Diglett's Cave",
			"Route 9", "Route 10", "Rock Tunnel", "Lavender Town",
			"Pokemon Tower", "Celadon City", "Safari Zone", "Seafoam Islands",
			"Cinnabar Island", "Power Plant", "Victory Road",
		},
	},
	{
		id:   "johto",
		name: "Johto",
		locations: []string{
			"New Bark Town", "Route 29", "Cherrygrove City", "Route 30",
			"Route 31", "Violet City", "Sprout Tower", "Route 32",
			"Ruins of Alph", "Union Cave", "Route 33", "Azalea Town",
			"Slowpoke Well", "Ilex Forest", "Route 34", "Goldenrod City",
			"National Park", "Ecruteak City", "Burned Tower", "Route 42",
		},
	},
	{
		id:   "hoenn",
		name: "Hoenn",
		locations: []string{
			"Littleroot Town", "Route 101", "Oldale Town", "Route 103",
			"Route 102", "Petalburg City", "Route 104", "Petalburg Woods",
			"Rustboro City", "Route 116", "Rusturf Tunnel", "Dewford Town",
			"Granite Cave", "Route 109", "Slateport City", "Route 110",
		},
	},
}

// speciesImage and speciesSprite derive the artwork URLs of a species from
// its name.
func speciesImage(name string) string {
	return "https://img.pokemondb.net/artwork/" + speciesSlug(name) + ".jpg"
}

func speciesSprite(name string) string {
	return "https://img.pokemondb.net/sprites/home/normal/" + speciesSlug(name) + ".png"
}

func speciesSlug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// seedCatalog inserts the built-in species and regions.
func seedCatalog(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range builtInSpeciesList {
		if _, err := tx.Exec(
			"INSERT INTO species (species_id, name, image, sprite) VALUES (?, ?, ?, ?)",
			s.id, s.name, speciesImage(s.name), speciesSprite(s.name),
		); err != nil {
			return fmt.Errorf("seeding species %s: %w", s.name, err)
		}
	}

	for _, r := range builtInRegions {
		if _, err := tx.Exec(
			"INSERT INTO regions (region_id, name) VALUES (?, ?)", r.id, r.name,
		); err != nil {
			return fmt.Errorf("seeding region %s: %w", r.id, err)
		}
		for i, loc := range r.locations {
			if _, err := tx.Exec(
				"INSERT INTO region_locations (region_id, ordinal, name) VALUES (?, ?, ?)",
				r.id, i, loc,
			); err != nil {
				return fmt.Errorf("seeding location %s: %w", loc, err)
			}
		}
	}

	return tx.Commit()
}
