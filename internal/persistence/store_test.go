package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/eels-and-escalators/internal/sim"
)

func TestStoreAppendLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "history.jsonl")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first := NewRunRecord(started, 2*time.Second, RunConfig{Games: 10, Players: 3, Workers: 2},
		sim.Summary{Count: 10, Mean: 12.5, Median: 12, Min: 4, Max: 30, P90: 22})
	second := NewRunRecord(started.Add(time.Minute), time.Second, RunConfig{Board: "tiles.yaml", Games: 5, Players: 2, Workers: 1, LegacyDice: true},
		sim.Summary{Count: 4, Mean: 3, Median: 3, Min: 1, Max: 5, P90: 5, Faults: 1})

	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	records, err := store.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.ID, records[0].ID)
	assert.True(t, first.StartedAt.Equal(records[0].StartedAt))
	assert.Equal(t, first.Summary, records[0].Summary)
	assert.Equal(t, second.Config, records[1].Config)
	assert.Equal(t, time.Second, records[1].Elapsed)
}

func TestStoreLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0644))

	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load()
	assert.ErrorContains(t, err, "line 1")
}

func TestStoreLoadEmpty(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "history.jsonl"))
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}
