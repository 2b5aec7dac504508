package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/nuzlocke/internal/servicetest"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

func TestDispatcherRefusesConcurrentUpdate(t *testing.T) {
	fake := servicetest.Seeded()
	release := fake.Hold(servicetest.UpdateEntryStatus)
	d := NewDispatcher(fake)
	ctx := context.Background()
	payload := types.UpdatePayload{ID: "p1", Pokemon: 25, Status: types.StatusDead}

	require.NoError(t, d.ReserveUpdate())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := d.UpdateStatus(ctx, "r1", payload)
		assert.NoError(t, err)
	}()
	require.Eventually(t, func() bool {
		return fake.CallCount(servicetest.UpdateEntryStatus) == 1
	}, time.Second, time.Millisecond)

	assert.True(t, d.Updating())
	assert.ErrorIs(t, d.ReserveUpdate(), ErrSubmitInFlight)
	assert.False(t, d.Deleting(), "flags are independent")
	assert.False(t, d.Idle())

	release()
	wg.Wait()
	assert.False(t, d.Updating(), "flag clears when the service answers")
	assert.True(t, d.Idle())
	assert.Len(t, fake.Updates(), 1)
}

func TestDispatcherReleaseUnsent(t *testing.T) {
	d := NewDispatcher(servicetest.Seeded())
	require.NoError(t, d.ReserveDelete())
	assert.ErrorIs(t, d.ReserveDelete(), ErrDeleteInFlight)
	d.ReleaseDelete()
	assert.NoError(t, d.ReserveDelete())
}

func TestDispatcherWrapsFailures(t *testing.T) {
	fake := servicetest.Seeded()
	offline := errors.New("offline")
	fake.Fail(servicetest.DeleteEntry, offline)
	d := NewDispatcher(fake)
	require.NoError(t, d.ReserveDelete())

	_, err := d.DeleteEntry(context.Background(), "r1", "p1")
	var remoteErr *RemoteOperationError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, OpDelete, remoteErr.Op)
	assert.Equal(t, "p1", remoteErr.EntryID)
	assert.ErrorIs(t, err, offline)
	assert.False(t, d.Deleting(), "flag cleared after failure")
}

func TestDispatcherDelete(t *testing.T) {
	fake := servicetest.Seeded()
	d := NewDispatcher(fake)
	require.NoError(t, d.ReserveDelete())

	id, err := d.DeleteEntry(context.Background(), "r1", "p2")
	assert.False(t, d.Deleting())
	require.NoError(t, err)
	assert.Equal(t, "p2", id)

	run, _ := fake.Run("r1")
	assert.Len(t, run.Entries, 2)
}
