package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/nuzlocke/internal/cache"
	"github.com/mesh-intelligence/nuzlocke/internal/editor"
	"github.com/mesh-intelligence/nuzlocke/internal/servicetest"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func newTestModel(t *testing.T, runID string) (Model, *servicetest.Fake) {
	t.Helper()
	fake := servicetest.Seeded()
	client := cache.NewClient(fake, nil)
	model := NewModel(context.Background(), client, runID, nil)
	model = send(t, model, model.loadRun()())
	require.True(t, model.loaded)
	require.NoError(t, model.err)
	return model, fake
}

func send(t *testing.T, model Model, message tea.Msg) Model {
	t.Helper()
	next, _ := model.Update(message)
	return next.(Model)
}

// commandKeys are the keys whose commands the tests run synchronously.
// Other commands, such as cursor blinks, are dropped.
var commandKeys = map[tea.KeyType]bool{
	tea.KeyEnter: true,
	tea.KeyCtrlS: true,
	tea.KeyCtrlD: true,
}

// press sends a key and, for command keys, feeds the command's result
// back into the model.
func press(t *testing.T, model Model, message tea.KeyMsg) Model {
	t.Helper()
	next, cmd := model.Update(message)
	model = next.(Model)
	if cmd == nil || !commandKeys[message.Type] {
		return model
	}
	return send(t, model, cmd())
}

func keyOf(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func typeText(t *testing.T, model Model, s string) Model {
	t.Helper()
	for _, r := range s {
		model = press(t, model, runes(string(r)))
	}
	return model
}

func TestModelLoadsRun(t *testing.T) {
	model, _ := newTestModel(t, "r1")
	assert.Len(t, model.run.Entries, 3)

	view := model.View()
	assert.Contains(t, view, "SOUL_LINK")
	assert.Contains(t, view, "Sparky")
	assert.Contains(t, view, "⇄ Pidgey")
	assert.False(t, model.ctrl.Visible())
}

func TestModelRunLoadError(t *testing.T) {
	fake := servicetest.Seeded()
	model := NewModel(context.Background(), cache.NewClient(fake, nil), "missing", nil)
	model = send(t, model, model.loadRun()())
	assert.Error(t, model.err)
	assert.Contains(t, model.View(), "cannot load run missing")
}

func TestModelReloadFetchesRun(t *testing.T) {
	model, fake := newTestModel(t, "r1")
	run := servicetest.PairedRun()
	run.Entries[2].Nickname = "Blaze"
	fake.AddRun(run)

	next, cmd := model.Update(runes("r"))
	model = next.(Model)
	require.NotNil(t, cmd)
	model = send(t, model, cmd())
	assert.Equal(t, 2, fake.CallCount(servicetest.GetRun))
	assert.Contains(t, model.View(), "Blaze")
}

func TestModelListNavigation(t *testing.T) {
	model, _ := newTestModel(t, "r1")
	model = press(t, model, runes("k"))
	assert.Equal(t, 0, model.cursor)
	model = press(t, model, runes("j"))
	model = press(t, model, keyOf(tea.KeyDown))
	model = press(t, model, runes("j"))
	assert.Equal(t, 2, model.cursor, "cursor stops at the last entry")
}

func TestModelOpenShowsLoadingThenForm(t *testing.T) {
	model, fake := newTestModel(t, "r1")

	next, cmd := model.Update(keyOf(tea.KeyEnter))
	model = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, model.ctrl.Visible())
	assert.True(t, model.ctrl.Pool().Loading)
	assert.Contains(t, model.View(), "loading candidates")

	model = send(t, model, cmd())
	require.NotNil(t, model.ctrl.Pool().Data)
	assert.Equal(t, 1, fake.CallCount(servicetest.GetCandidatePool))

	view := model.View()
	assert.Contains(t, view, "Edit Sparky")
	assert.Contains(t, view, "Partner")
}

func TestModelEditAndSave(t *testing.T) {
	model, fake := newTestModel(t, "r1")
	model = press(t, model, keyOf(tea.KeyEnter))

	model = typeText(t, model, "!")
	assert.Equal(t, "Sparky!", model.ctrl.Form().Fields().Nickname)

	model = press(t, model, keyOf(tea.KeyTab))
	model = press(t, model, keyOf(tea.KeyTab))
	require.Equal(t, fieldStatus, model.drawer.focus)
	model = press(t, model, keyOf(tea.KeyRight))
	assert.Equal(t, types.StatusInPC, model.ctrl.Form().Fields().Status)

	model = press(t, model, keyOf(tea.KeyTab))
	require.Equal(t, fieldPartner, model.drawer.focus)
	model = press(t, model, keyOf(tea.KeyRight))
	partner, ok := model.ctrl.Form().Partner()
	require.True(t, ok)
	assert.Equal(t, "p3", partner)

	model = press(t, model, keyOf(tea.KeyCtrlS))
	updates := fake.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "Sparky!", updates[0].Nickname)
	assert.Equal(t, types.StatusInPC, updates[0].Status)
	assert.Equal(t, "p3", updates[0].PartnerID())

	assert.False(t, model.ctrl.Visible(), "saved session closes")
	assert.Equal(t, "Sparky!", model.run.Entries[0].Nickname, "list reads the written-back entry")
}

func TestModelKeepsLongValues(t *testing.T) {
	fake := servicetest.Seeded()
	run := servicetest.PairedRun()
	nickname := strings.Repeat("N", 30)
	location := "Victory Road, north cave entrance, second floor ledge"
	run.Entries[0].Nickname = nickname
	run.Entries[0].Location = location
	fake.AddRun(run)

	model := NewModel(context.Background(), cache.NewClient(fake, nil), "r1", nil)
	model = send(t, model, model.loadRun()())
	model = press(t, model, keyOf(tea.KeyEnter))

	model = press(t, model, keyOf(tea.KeyHome))
	model = press(t, model, keyOf(tea.KeyTab))
	model = press(t, model, keyOf(tea.KeyLeft))
	assert.Equal(t, nickname, model.ctrl.Form().Fields().Nickname)
	assert.Equal(t, location, model.ctrl.Form().Fields().Location)

	model = press(t, model, keyOf(tea.KeyCtrlS))
	require.Len(t, fake.Updates(), 1)
	assert.Equal(t, nickname, fake.Updates()[0].Nickname)
	assert.Equal(t, location, fake.Updates()[0].Location)
}

func TestModelPartnerCycleReachesNone(t *testing.T) {
	model, fake := newTestModel(t, "r1")
	model = press(t, model, keyOf(tea.KeyEnter))
	model = press(t, model, keyOf(tea.KeyShiftTab))
	require.Equal(t, fieldPartner, model.drawer.focus)

	model = press(t, model, keyOf(tea.KeyLeft))
	_, ok := model.ctrl.Form().Partner()
	assert.False(t, ok)

	model = press(t, model, keyOf(tea.KeyCtrlS))
	require.Len(t, fake.Updates(), 1)
	assert.Nil(t, fake.Updates()[0].Partner)
}

func TestModelStandardRunHasNoPartnerField(t *testing.T) {
	model, fake := newTestModel(t, "r2")
	model = press(t, model, keyOf(tea.KeyEnter))

	for range 3 {
		model = press(t, model, keyOf(tea.KeyTab))
	}
	assert.Equal(t, fieldNickname, model.drawer.focus, "focus wraps after status")
	assert.NotContains(t, model.View(), "Partner")

	model = press(t, model, keyOf(tea.KeyCtrlS))
	require.Len(t, fake.Updates(), 1)
	assert.Nil(t, fake.Updates()[0].Partner)
}

func TestModelAcceptsLocationSuggestion(t *testing.T) {
	model, _ := newTestModel(t, "r1")
	model = press(t, model, keyOf(tea.KeyEnter))
	model = press(t, model, keyOf(tea.KeyTab))
	require.Equal(t, fieldLocation, model.drawer.focus)

	for range len("Route 1") {
		model = press(t, model, keyOf(tea.KeyBackspace))
	}
	assert.Empty(t, model.ctrl.Form().Fields().Location)

	model = typeText(t, model, "vir")
	assert.Contains(t, model.View(), "Viridian Forest")

	model = press(t, model, keyOf(tea.KeyCtrlY))
	assert.Equal(t, "Viridian Forest", model.ctrl.Form().Fields().Location)
	assert.Equal(t, "Viridian Forest", model.drawer.location.Value())
}

func TestModelDeleteRemovesRow(t *testing.T) {
	model, fake := newTestModel(t, "r1")
	model = press(t, model, runes("j"))
	model = press(t, model, runes("j"))
	model = press(t, model, keyOf(tea.KeyEnter))
	require.Equal(t, "p3", model.ctrl.Form().EntryID())

	model = press(t, model, keyOf(tea.KeyCtrlD))
	assert.False(t, model.ctrl.Visible())
	require.Len(t, model.run.Entries, 2)
	assert.Equal(t, "p2", model.run.Entries[1].ID)
	assert.Equal(t, 1, model.cursor, "cursor clamps to the new last row")
	assert.Equal(t, 1, fake.CallCount(servicetest.GetRun))
}

func TestModelFailedSaveKeepsDrawer(t *testing.T) {
	model, fake := newTestModel(t, "r1")
	fake.Fail(servicetest.UpdateEntryStatus, assert.AnError)
	model = press(t, model, keyOf(tea.KeyEnter))

	model = press(t, model, keyOf(tea.KeyCtrlS))
	assert.True(t, model.ctrl.Visible())
	assert.Equal(t, editor.StateEditing, model.ctrl.Form().State())
	assert.Contains(t, model.View(), assert.AnError.Error())
}

func TestModelStaleSaveAfterClose(t *testing.T) {
	model, fake := newTestModel(t, "r1")
	model = press(t, model, keyOf(tea.KeyEnter))

	next, cmd := model.Update(keyOf(tea.KeyCtrlS))
	model = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, model.ctrl.Updating())

	model = press(t, model, keyOf(tea.KeyEsc))
	assert.False(t, model.ctrl.Visible())

	model = send(t, model, cmd())
	assert.False(t, model.ctrl.Visible(), "late completion does not reopen")
	assert.Len(t, fake.Updates(), 1)
}

func TestModelDrawerIgnoresQuitLetter(t *testing.T) {
	model, _ := newTestModel(t, "r1")
	model = press(t, model, keyOf(tea.KeyEnter))
	model = typeText(t, model, "q")
	assert.True(t, model.ctrl.Visible())
	assert.Equal(t, "Sparkyq", model.ctrl.Form().Fields().Nickname)
}
