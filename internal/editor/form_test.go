package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/nuzlocke/internal/servicetest"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func strPtr(s string) *string { return &s }

func TestSeedPairedRun(t *testing.T) {
	run := servicetest.PairedRun()
	form := NewForm(run, run.Entries[0])

	assert.Equal(t, StateEditing, form.State())
	assert.True(t, form.Paired())
	assert.Equal(t, Fields{Nickname: "Sparky", Location: "Route 1", Status: types.StatusInTeam}, form.Fields())
	partner, ok := form.Partner()
	assert.True(t, ok)
	assert.Equal(t, "p2", partner)
}

func TestSeedStandardRunDropsPartner(t *testing.T) {
	run := servicetest.StandardRun()
	require.NotNil(t, run.Entries[0].Partner, "fixture carries a stale partner")

	form := NewForm(run, run.Entries[0])
	assert.False(t, form.Paired())
	_, ok := form.Partner()
	assert.False(t, ok)
}

func TestSubmitPayload(t *testing.T) {
	t.Run("paired run keeps partner", func(t *testing.T) {
		run := servicetest.PairedRun()
		form := NewForm(run, run.Entries[0])
		require.NoError(t, form.SetStatus(types.StatusDead))

		payload, err := form.BeginSubmit()
		require.NoError(t, err)
		assert.Equal(t, types.UpdatePayload{
			ID: "p1", Pokemon: 25, Nickname: "Sparky", Location: "Route 1",
			Status: types.StatusDead, Partner: strPtr("p2"),
		}, payload)
	})

	t.Run("standard run always sends a null partner", func(t *testing.T) {
		run := servicetest.StandardRun()
		form := NewForm(run, run.Entries[0])
		assert.ErrorIs(t, form.SetPartner(strPtr("p3")), ErrPartnerUnavailable)
		require.NoError(t, form.SetNickname("Zap"))

		payload, err := form.BeginSubmit()
		require.NoError(t, err)
		assert.Nil(t, payload.Partner)
		assert.Equal(t, "Zap", payload.Nickname)
	})
}

func TestEditsChangeOneValue(t *testing.T) {
	run := servicetest.PairedRun()
	form := NewForm(run, run.Entries[0])
	before := form.Fields()

	require.NoError(t, form.SetPartner(strPtr("p3")))
	assert.Equal(t, before, form.Fields(), "partner edit leaves other fields")
	partner, _ := form.Partner()
	assert.Equal(t, "p3", partner)

	require.NoError(t, form.SetLocation("Viridian Forest"))
	after := form.Fields()
	assert.Equal(t, "Viridian Forest", after.Location)
	assert.Equal(t, before.Nickname, after.Nickname)
	assert.Equal(t, before.Status, after.Status)
	partner, _ = form.Partner()
	assert.Equal(t, "p3", partner)

	require.NoError(t, form.SetPartner(nil))
	_, ok := form.Partner()
	assert.False(t, ok)
}

func TestNoClientValidation(t *testing.T) {
	run := servicetest.PairedRun()
	form := NewForm(run, run.Entries[0])
	require.NoError(t, form.SetStatus("ASLEEP"))
	require.NoError(t, form.SetNickname(""))

	payload, err := form.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, types.Status("ASLEEP"), payload.Status)
}

func TestFormTransitions(t *testing.T) {
	run := servicetest.PairedRun()

	t.Run("double submit is refused", func(t *testing.T) {
		form := NewForm(run, run.Entries[0])
		_, err := form.BeginSubmit()
		require.NoError(t, err)
		assert.Equal(t, StateSubmitting, form.State())

		_, err = form.BeginSubmit()
		assert.ErrorIs(t, err, ErrSubmitInFlight)
		assert.ErrorIs(t, form.SetNickname("x"), ErrSubmitInFlight)
	})

	t.Run("failure returns to editing with values kept", func(t *testing.T) {
		form := NewForm(run, run.Entries[0])
		require.NoError(t, form.SetStatus(types.StatusDead))
		_, err := form.BeginSubmit()
		require.NoError(t, err)

		boom := errors.New("boom")
		form.SubmitFailed(boom)
		assert.Equal(t, StateEditing, form.State())
		assert.Equal(t, boom, form.Err())
		assert.Equal(t, types.StatusDead, form.Fields().Status)

		_, err = form.BeginSubmit()
		require.NoError(t, err)
		assert.NoError(t, form.Err(), "new attempt clears the old failure")
	})

	t.Run("success closes", func(t *testing.T) {
		form := NewForm(run, run.Entries[0])
		_, err := form.BeginSubmit()
		require.NoError(t, err)
		form.SubmitSucceeded()
		assert.Equal(t, StateClosed, form.State())
		assert.ErrorIs(t, form.SetLocation("x"), ErrSessionClosed)
		_, err = form.BeginSubmit()
		assert.ErrorIs(t, err, ErrSessionClosed)
	})

	t.Run("reseed discards edits", func(t *testing.T) {
		form := NewForm(run, run.Entries[0])
		require.NoError(t, form.SetNickname("edited"))
		form.Reseed(run, run.Entries[2])
		assert.Equal(t, "p3", form.EntryID())
		assert.Equal(t, "Char", form.Fields().Nickname)
		_, ok := form.Partner()
		assert.False(t, ok)
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "unknown", State(42).String())
}
