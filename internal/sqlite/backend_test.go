package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// setupBackend attaches a Backend to a fresh temp dir and detaches it when
// the test ends.
func setupBackend(t *testing.T, sync string) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      dir,
		SyncStrategy: sync,
	}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackendAttach(t *testing.T) {
	b, dir := setupBackend(t, "")

	assert.FileExists(t, filepath.Join(dir, dbFileName))
	assert.FileExists(t, filepath.Join(dir, "runs.jsonl"))
	assert.FileExists(t, filepath.Join(dir, "entries.jsonl"))

	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackendAttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)

	_, err = b.GetTable(types.TableRuns)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackendDetach(t *testing.T) {
	b, _ := setupBackend(t, "")

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach is a no-op")

	_, err := b.GetTable(types.TableRuns)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackendGetTable(t *testing.T) {
	b, _ := setupBackend(t, "")

	for _, name := range types.StandardTableNames {
		table, err := b.GetTable(name)
		require.NoError(t, err, name)
		assert.NotNil(t, table, name)
	}

	_, err := b.GetTable("trainers")
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestBackendReloadsFromJSONL(t *testing.T) {
	tests := []struct {
		name string
		sync string
	}{
		{"immediate", types.SyncImmediate},
		{"on close", types.SyncOnClose},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir, SyncStrategy: tt.sync}

			b := NewBackend()
			require.NoError(t, b.Attach(cfg))
			runs, _ := b.GetTable(types.TableRuns)
			entries, _ := b.GetTable(types.TableEntries)

			run := &types.Run{Mode: types.ModeSoulLink, RegionID: "kanto", GameID: "red"}
			runID, err := runs.Set("", run)
			require.NoError(t, err)

			first := &types.Entry{RunID: runID, Species: types.Species{ID: 25}, Nickname: "Sparky", Location: "Route 1", Status: types.StatusInTeam}
			firstID, err := entries.Set("", first)
			require.NoError(t, err)
			second := &types.Entry{
				RunID: runID, Species: types.Species{ID: 16}, Location: "Route 2", Status: types.StatusInPC,
				Partner: &types.PartnerRef{ID: firstID},
			}
			_, err = entries.Set("", second)
			require.NoError(t, err)
			require.NoError(t, b.Detach())

			b2 := NewBackend()
			require.NoError(t, b2.Attach(cfg))
			defer b2.Detach()

			runs2, _ := b2.GetTable(types.TableRuns)
			got, err := runs2.Get(runID)
			require.NoError(t, err)
			assert.Equal(t, types.ModeSoulLink, got.(*types.Run).Mode)

			entries2, _ := b2.GetTable(types.TableEntries)
			rows, err := entries2.Fetch(types.Filter{"run_id": runID})
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, "Sparky", rows[0].(*types.Entry).Nickname)
			reloaded := rows[1].(*types.Entry)
			require.NotNil(t, reloaded.Partner)
			assert.Equal(t, firstID, reloaded.Partner.ID)
			assert.Equal(t, "Sparky", reloaded.Partner.Name)
		})
	}
}

func TestBackendOnCloseDefersWrites(t *testing.T) {
	b, dir := setupBackend(t, types.SyncOnClose)
	runs, _ := b.GetTable(types.TableRuns)

	_, err := runs.Set("", &types.Run{Mode: types.ModeNuzlocke, RegionID: "kanto"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "runs.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, data, "nothing written before Detach")

	require.NoError(t, b.Detach())
	data, err = os.ReadFile(filepath.Join(dir, "runs.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode":"NUZLOCKE"`)
}

func TestBackendSkipsMalformedJSONL(t *testing.T) {
	dir := t.TempDir()
	lines := `{"run_id":"r1","mode":"NUZLOCKE","region_id":"kanto","game_id":"red","created_at":"2026-01-01T00:00:00Z"}
not json
{"run_id":"r2","mode":"SOUL_LINK","region_id":"johto","game_id":"gold","created_at":"2026-01-02T00:00:00Z"}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runs.jsonl"), []byte(lines), 0o644))

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	runs, _ := b.GetTable(types.TableRuns)
	rows, err := runs.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "r2", rows[0].(*types.Run).ID, "newest first")
}
