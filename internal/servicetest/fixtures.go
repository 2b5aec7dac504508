package servicetest

import "github.com/mesh-intelligence/nuzlocke/pkg/types"

// Species used by the fixtures.
var (
	Pikachu    = types.Species{ID: 25, Name: "Pikachu", Sprite: "pikachu.png", Image: "pikachu.jpg"}
	Pidgey     = types.Species{ID: 16, Name: "Pidgey", Sprite: "pidgey.png", Image: "pidgey.jpg"}
	Charmander = types.Species{ID: 4, Name: "Charmander", Sprite: "charmander.png", Image: "charmander.jpg"}
)

// PairedRun returns run r1 in kanto under SOUL_LINK with entries p1, p2
// and p3. p1 is Sparky, caught on Route 1, in the team, partnered with p2.
func PairedRun() types.Run {
	return types.Run{
		ID:       "r1",
		Mode:     types.ModeSoulLink,
		RegionID: "kanto",
		GameID:   "red",
		Entries: []types.Entry{
			{
				ID: "p1", RunID: "r1", Nickname: "Sparky", Location: "Route 1",
				Status: types.StatusInTeam, Species: Pikachu,
				Partner: &types.PartnerRef{ID: "p2", Name: "Pidgey", Image: Pidgey.Image},
			},
			{ID: "p2", RunID: "r1", Location: "Route 1", Status: types.StatusInTeam, Species: Pidgey},
			{ID: "p3", RunID: "r1", Nickname: "Char", Location: "Route 2", Status: types.StatusInPC, Species: Charmander},
		},
	}
}

// StandardRun returns PairedRun as a NUZLOCKE run with id r2. p1 keeps a
// stale partner reference that a standard run must never submit.
func StandardRun() types.Run {
	run := PairedRun()
	run.ID = "r2"
	run.Mode = types.ModeNuzlocke
	for i := range run.Entries {
		run.Entries[i].RunID = "r2"
	}
	return run
}

// Seeded returns a Fake holding PairedRun and StandardRun with kanto
// locations.
func Seeded() *Fake {
	f := New()
	f.AddRun(PairedRun())
	f.AddRun(StandardRun())
	f.SetLocations("kanto", "Pallet Town", "Route 1", "Route 2", "Viridian Forest")
	return f
}
