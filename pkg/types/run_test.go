package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPaired(t *testing.T) {
	tests := []struct {
		mode Mode
		want bool
	}{
		{mode: ModeSoulLink, want: true},
		{mode: ModeNuzlocke, want: false},
		{mode: ModeWonderlocke, want: false},
		{mode: "", want: false},
		{mode: "soul_link", want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, IsPaired(Run{ID: "r1", Mode: tt.mode}))
		})
	}
}

func TestModeValid(t *testing.T) {
	assert.True(t, ModeSoulLink.Valid())
	assert.True(t, ModeNuzlocke.Valid())
	assert.False(t, Mode("RANDOMIZER").Valid())
}

func TestRunEntryAndClone(t *testing.T) {
	run := Run{
		ID: "r1",
		Entries: []Entry{
			{ID: "p1", Nickname: "Sparky", Partner: &PartnerRef{ID: "p2"}},
			{ID: "p2", Nickname: "Blaze"},
		},
	}

	got, ok := run.Entry("p2")
	assert.True(t, ok)
	assert.Equal(t, "Blaze", got.Nickname)

	_, ok = run.Entry("missing")
	assert.False(t, ok)

	clone := run.Clone()
	clone.Entries[0].Nickname = "changed"
	clone.Entries[0].Partner.ID = "changed"
	assert.Equal(t, "Sparky", run.Entries[0].Nickname)
	assert.Equal(t, "p2", run.Entries[0].Partner.ID)

	assert.Nil(t, Run{ID: "empty"}.Clone().Entries)
}

func TestCandidatePoolExcluding(t *testing.T) {
	pool := CandidatePool{
		Candidates: []Candidate{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
	}

	got := pool.Excluding("p2")
	assert.Equal(t, []Candidate{{ID: "p1"}, {ID: "p3"}}, got)
	assert.Len(t, pool.Candidates, 3, "pool must not be modified")
	assert.Empty(t, CandidatePool{}.Excluding("p1"))
}
