package cmd

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/kedare/lens/internal/history"
	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, entries ...search.HistoryEntry) kv.Store {
	t.Helper()

	store := kv.NewMemory()
	require.NoError(t, history.New(store).Save(entries))

	return store
}

func TestHistoryList(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	prev := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = prev })

	store := seedHistory(t,
		search.HistoryEntry{Query: "ocean", Timestamp: now.Add(-2 * time.Minute).UnixMilli(), Filters: search.DefaultFilters()},
		search.HistoryEntry{Query: "cat.png", Timestamp: now.Add(-3 * time.Hour).UnixMilli(), Filters: search.DefaultFilters(), IsImageSearch: true},
	)

	out, err := runCLI(t, store, "history", "list", "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "text  ocean (2 minutes ago)")
	assert.Contains(t, out, "image  cat.png (3 hours ago)")
}

func TestHistoryListEmpty(t *testing.T) {
	out, err := runCLI(t, kv.NewMemory(), "history", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "No search history.")
}

func TestHistoryRemove(t *testing.T) {
	store := seedHistory(t,
		search.HistoryEntry{Query: "ocean", Timestamp: 200, Filters: search.DefaultFilters()},
		search.HistoryEntry{Query: "city", Timestamp: 100, Filters: search.DefaultFilters()},
	)

	_, err := runCLI(t, store, "history", "remove", strconv.Itoa(200))
	require.NoError(t, err)

	entries := history.New(store).Load()
	require.Len(t, entries, 1)
	assert.Equal(t, "city", entries[0].Query)
}

func TestHistoryRemoveErrors(t *testing.T) {
	store := seedHistory(t, search.HistoryEntry{Query: "ocean", Timestamp: 200, Filters: search.DefaultFilters()})

	_, err := runCLI(t, store, "history", "remove", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timestamp")

	_, err = runCLI(t, store, "history", "rm", "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history entry")

	assert.Len(t, history.New(store).Load(), 1)
}

func TestHistoryClear(t *testing.T) {
	store := seedHistory(t,
		search.HistoryEntry{Query: "ocean", Timestamp: 200, Filters: search.DefaultFilters()},
		search.HistoryEntry{Query: "city", Timestamp: 100, Filters: search.DefaultFilters()},
	)

	_, err := runCLI(t, store, "history", "clear")
	require.NoError(t, err)

	raw, ok, err := store.Get(history.Key)
	require.NoError(t, err)
	require.True(t, ok)

	var entries []search.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	assert.Empty(t, entries)
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "y", plural(1, "y", "ies"))
	assert.Equal(t, "ies", plural(0, "y", "ies"))
	assert.Equal(t, "ies", plural(2, "y", "ies"))
}
