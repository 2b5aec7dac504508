package editor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/nuzlocke/internal/cache"
	"github.com/mesh-intelligence/nuzlocke/internal/servicetest"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// harness is a controller over a seeded fake, reading through a cache
// that already holds both fixture runs.
type harness struct {
	fake   *servicetest.Fake
	client *cache.Client
	ctrl   *Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := servicetest.Seeded()
	client := cache.NewClient(fake, nil)
	for _, id := range []string{"r1", "r2"} {
		_, err := client.GetRun(context.Background(), id)
		require.NoError(t, err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &harness{
		fake:   fake,
		client: client,
		ctrl:   NewController(client, client.Cache(), logger),
	}
}

func (h *harness) open(t *testing.T, runID, entryID string) {
	t.Helper()
	run, err := h.client.GetRun(context.Background(), runID)
	require.NoError(t, err)
	require.NoError(t, h.ctrl.Open(run, entryID))
}

func (h *harness) cachedIDs(t *testing.T, runID string) []string {
	t.Helper()
	run, ok := h.client.Cache().ReadRun(runID)
	require.True(t, ok)
	out := make([]string, len(run.Entries))
	for i, e := range run.Entries {
		out[i] = e.ID
	}
	return out
}

func TestControllerClosedRendersNothing(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.ctrl.Visible())
	assert.Nil(t, h.ctrl.Form())

	_, ok := h.ctrl.PoolRequest()
	assert.False(t, ok, "closed editor never fetches")
	assert.Equal(t, 0, h.fake.CallCount(servicetest.GetCandidatePool))

	assert.ErrorIs(t, h.ctrl.Submit(context.Background()), ErrSessionClosed)
	assert.ErrorIs(t, h.ctrl.Delete(context.Background()), ErrSessionClosed)
	_, err := h.ctrl.Candidates()
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestControllerOpenUnknownEntry(t *testing.T) {
	h := newHarness(t)
	run, _ := h.client.GetRun(context.Background(), "r1")
	assert.ErrorIs(t, h.ctrl.Open(run, "p9"), ErrNoEntry)
	assert.False(t, h.ctrl.IsOpen())
}

func TestControllerOpenFetchesOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.open(t, "r1", "p1")

	state := h.ctrl.LoadPool(ctx)
	require.NotNil(t, state.Data)
	h.ctrl.LoadPool(ctx)
	assert.Equal(t, 1, h.fake.CallCount(servicetest.GetCandidatePool))

	candidates, err := h.ctrl.Candidates()
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "p2", candidates[0].ID)
	assert.Equal(t, "p3", candidates[1].ID)

	locations, err := h.ctrl.Locations()
	require.NoError(t, err)
	assert.Contains(t, locations, "Route 1")

	h.ctrl.Close()
	h.open(t, "r1", "p1")
	h.ctrl.LoadPool(ctx)
	assert.Equal(t, 2, h.fake.CallCount(servicetest.GetCandidatePool), "reopen refetches")
}

func TestControllerCandidatesBeforeLoad(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r1", "p1")
	_, ok := h.ctrl.PoolRequest()
	require.True(t, ok)
	assert.True(t, h.ctrl.Pool().Loading)

	_, err := h.ctrl.Candidates()
	assert.ErrorIs(t, err, ErrPoolNotLoaded)
}

func TestControllerSubmitScenario(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r1", "p1")

	form := h.ctrl.Form()
	require.NotNil(t, form)
	require.NoError(t, form.SetStatus(types.StatusDead))
	require.NoError(t, h.ctrl.Submit(context.Background()))

	updates := h.fake.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, types.UpdatePayload{
		ID: "p1", Pokemon: 25, Nickname: "Sparky", Location: "Route 1",
		Status: types.StatusDead, Partner: strPtr("p2"),
	}, updates[0])

	assert.False(t, h.ctrl.IsOpen(), "success closes the session")
	assert.Nil(t, h.ctrl.Form())

	cached, _ := h.client.Cache().ReadRun("r1")
	assert.Equal(t, types.StatusDead, cached.Entries[0].Status)
}

func TestControllerSubmitStandardRun(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r2", "p1")
	require.NoError(t, h.ctrl.Submit(context.Background()))

	updates := h.fake.Updates()
	require.Len(t, updates, 1)
	assert.Nil(t, updates[0].Partner, "stale partner is never sent")
}

func TestControllerSubmitFailure(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r1", "p1")
	offline := errors.New("offline")
	h.fake.Fail(servicetest.UpdateEntryStatus, offline)

	require.NoError(t, h.ctrl.Form().SetNickname("Bolt"))
	err := h.ctrl.Submit(context.Background())

	var remoteErr *RemoteOperationError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, OpUpdate, remoteErr.Op)
	assert.True(t, h.ctrl.IsOpen())
	assert.Equal(t, StateEditing, h.ctrl.Form().State())
	assert.Equal(t, "Bolt", h.ctrl.Form().Fields().Nickname)
	assert.ErrorIs(t, h.ctrl.UpdateErr(), offline)
	assert.False(t, h.ctrl.Updating())

	h.fake.Fail(servicetest.UpdateEntryStatus, nil)
	require.NoError(t, h.ctrl.Submit(context.Background()), "user retries")
	assert.Len(t, h.fake.Updates(), 2)
}

func TestControllerRejectsSecondSubmit(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r1", "p1")

	ticket, err := h.ctrl.BeginSubmit()
	require.NoError(t, err)
	assert.True(t, h.ctrl.Updating())

	_, err = h.ctrl.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	require.NoError(t, h.ctrl.FinishSubmit(h.ctrl.DoSubmit(context.Background(), ticket)))
	assert.Len(t, h.fake.Updates(), 1, "one request dispatched")
}

func TestControllerReopenKeepsEntryBusy(t *testing.T) {
	h := newHarness(t)
	release := h.fake.Hold(servicetest.UpdateEntryStatus)
	defer release()
	h.open(t, "r1", "p1")

	ticket, err := h.ctrl.BeginSubmit()
	require.NoError(t, err)
	results := make(chan UpdateResult, 1)
	go func() { results <- h.ctrl.DoSubmit(context.Background(), ticket) }()
	require.Eventually(t, func() bool {
		return h.fake.CallCount(servicetest.UpdateEntryStatus) == 1
	}, time.Second, time.Millisecond)

	h.ctrl.Close()
	h.open(t, "r1", "p1")
	assert.True(t, h.ctrl.Updating(), "pending update shows after reopening")
	assert.False(t, h.ctrl.Deleting())
	_, err = h.ctrl.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.Equal(t, StateEditing, h.ctrl.Form().State())

	h.open(t, "r1", "p3")
	assert.False(t, h.ctrl.Updating(), "other entries are not blocked")

	release()
	assert.NoError(t, h.ctrl.FinishSubmit(<-results))
	h.open(t, "r1", "p1")
	assert.False(t, h.ctrl.Updating())
	require.NoError(t, h.ctrl.Submit(context.Background()))
	assert.Equal(t, 2, h.fake.CallCount(servicetest.UpdateEntryStatus), "updates of one entry never overlap")
}

func TestControllerReopenKeepsDeleteBusy(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r1", "p2")
	ticket, err := h.ctrl.BeginDelete()
	require.NoError(t, err)

	h.ctrl.Close()
	h.open(t, "r1", "p2")
	assert.True(t, h.ctrl.Deleting())
	_, err = h.ctrl.BeginDelete()
	assert.ErrorIs(t, err, ErrDeleteInFlight)

	require.NoError(t, h.ctrl.FinishDelete(h.ctrl.DoDelete(context.Background(), ticket)))
	assert.Equal(t, []string{"p1", "p3"}, h.cachedIDs(t, "r1"))
	assert.Equal(t, 1, h.fake.CallCount(servicetest.DeleteEntry))
}

func TestControllerDeleteScenario(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r1", "p1")
	require.Equal(t, []string{"p1", "p2", "p3"}, h.cachedIDs(t, "r1"))

	require.NoError(t, h.ctrl.Delete(context.Background()))
	assert.Equal(t, []string{"p2", "p3"}, h.cachedIDs(t, "r1"))
	assert.False(t, h.ctrl.IsOpen())
	assert.Equal(t, 2, h.fake.CallCount(servicetest.GetRun), "no refetch after delete")
}

func TestControllerDeleteFailureKeepsCache(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r1", "p1")
	h.fake.Fail(servicetest.DeleteEntry, errors.New("offline"))

	err := h.ctrl.Delete(context.Background())
	var remoteErr *RemoteOperationError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, OpDelete, remoteErr.Op)
	assert.Equal(t, []string{"p1", "p2", "p3"}, h.cachedIDs(t, "r1"))
	assert.True(t, h.ctrl.IsOpen())
	assert.Error(t, h.ctrl.DeleteErr())
	assert.NoError(t, h.ctrl.UpdateErr(), "errors are tracked per operation")
}

func TestControllerPatchesAfterConfirmation(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r1", "p1")

	ticket, err := h.ctrl.BeginDelete()
	require.NoError(t, err)
	assert.True(t, h.ctrl.Deleting())
	assert.False(t, h.ctrl.Updating())
	_, err = h.ctrl.BeginDelete()
	assert.ErrorIs(t, err, ErrDeleteInFlight)

	result := h.ctrl.DoDelete(context.Background(), ticket)
	assert.Equal(t, []string{"p1", "p2", "p3"}, h.cachedIDs(t, "r1"), "nothing patched before Finish")

	require.NoError(t, h.ctrl.FinishDelete(result))
	assert.Equal(t, []string{"p2", "p3"}, h.cachedIDs(t, "r1"))
}

func TestControllerStaleCompletions(t *testing.T) {
	t.Run("update after close", func(t *testing.T) {
		h := newHarness(t)
		h.open(t, "r1", "p1")
		ticket, err := h.ctrl.BeginSubmit()
		require.NoError(t, err)
		h.ctrl.Close()

		result := h.ctrl.DoSubmit(context.Background(), ticket)
		result.Err = errors.New("late failure")
		assert.NoError(t, h.ctrl.FinishSubmit(result))
		assert.False(t, h.ctrl.IsOpen())
		assert.Nil(t, h.ctrl.Form())
	})

	t.Run("update after reopening another entry", func(t *testing.T) {
		h := newHarness(t)
		h.open(t, "r1", "p1")
		ticket, err := h.ctrl.BeginSubmit()
		require.NoError(t, err)
		h.open(t, "r1", "p3")

		assert.NoError(t, h.ctrl.FinishSubmit(h.ctrl.DoSubmit(context.Background(), ticket)))
		assert.True(t, h.ctrl.IsOpen(), "new session untouched")
		assert.Equal(t, "p3", h.ctrl.Form().EntryID())
		assert.Equal(t, StateEditing, h.ctrl.Form().State())
	})

	t.Run("delete after close still patches the cache", func(t *testing.T) {
		h := newHarness(t)
		h.open(t, "r1", "p1")
		ticket, err := h.ctrl.BeginDelete()
		require.NoError(t, err)
		h.ctrl.Close()

		assert.NoError(t, h.ctrl.FinishDelete(h.ctrl.DoDelete(context.Background(), ticket)))
		assert.Equal(t, []string{"p2", "p3"}, h.cachedIDs(t, "r1"))
		assert.False(t, h.ctrl.IsOpen())
	})

	t.Run("pool after close", func(t *testing.T) {
		h := newHarness(t)
		h.open(t, "r1", "p1")
		ticket, ok := h.ctrl.PoolRequest()
		require.True(t, ok)
		h.ctrl.Close()

		assert.False(t, h.ctrl.ApplyPool(h.ctrl.FetchPool(context.Background(), ticket)))
		assert.Nil(t, h.ctrl.Pool().Data)
	})
}

func TestControllerDeleteRacesPoolLoad(t *testing.T) {
	h := newHarness(t)
	h.open(t, "r1", "p1")
	_, ok := h.ctrl.PoolRequest()
	require.True(t, ok)

	require.NoError(t, h.ctrl.Delete(context.Background()), "delete does not wait for the pool")
}
