package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/kedare/lens/internal/backend"
	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/search"
	"github.com/kedare/lens/internal/suggest"
	"github.com/kedare/lens/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTrending struct{}

func (failingTrending) Trending(context.Context) ([]backend.TrendingSearch, error) {
	return nil, errors.New("trending unavailable")
}

func withTrending(t *testing.T, src backend.TrendingSource) {
	t.Helper()

	prev := trendingSource
	trendingSource = src
	t.Cleanup(func() { trendingSource = prev })
}

func TestSuggestCommand(t *testing.T) {
	store := seedHistory(t, search.HistoryEntry{Query: "Nature walk", Timestamp: 1, Filters: search.DefaultFilters()})

	out, err := runCLI(t, store, "suggest", "NAT", "-o", "json")
	require.NoError(t, err)

	var got []suggest.Suggestion
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)

	assert.Equal(t, suggest.Suggestion{Text: "Nature walk", Type: suggest.TypeHistory}, got[0])
	assert.Contains(t, got, suggest.Suggestion{Text: "NAT images", Type: suggest.TypeSuggestion})
	assert.LessOrEqual(t, len(got), suggest.MaxSuggestions)
}

func TestSuggestCommandMatchesTrending(t *testing.T) {
	out, err := runCLI(t, kv.NewMemory(), "suggest", "nike", "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "nike air max 2024")
}

func TestSuggestCommandSurvivesTrendingFailure(t *testing.T) {
	withTrending(t, failingTrending{})

	out, err := runCLI(t, kv.NewMemory(), "suggest", "lake", "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "lake photos")
}

func TestTrendingCommand(t *testing.T) {
	out, err := runCLI(t, kv.NewMemory(), "trending", "-o", "json")
	require.NoError(t, err)

	var got []backend.TrendingSearch
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []backend.TrendingSearch(backend.DefaultTrending), got)
}

func TestTrendingCommandError(t *testing.T) {
	withTrending(t, failingTrending{})

	_, err := runCLI(t, kv.NewMemory(), "trending")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trending unavailable")
}

func TestInteractiveCommandWiresTUI(t *testing.T) {
	store := seedHistory(t, search.HistoryEntry{Query: "mountain lake", Timestamp: 5, Filters: search.DefaultFilters()})

	var got tui.Deps

	prev := runTUI
	runTUI = func(_ context.Context, deps tui.Deps) error {
		got = deps
		return nil
	}
	t.Cleanup(func() { runTUI = prev })

	_, err := runCLI(t, store, "interactive")
	require.NoError(t, err)

	require.NotNil(t, got.Orchestrator)
	assert.Equal(t, backend.TrendingTexts(backend.DefaultTrending), got.Trending)
	assert.Equal(t, 8, got.PerPage)
	require.NotNil(t, got.Candidates)

	candidates := got.Candidates("lake")
	require.NotEmpty(t, candidates)
	assert.Equal(t, "mountain lake", candidates[0].Text)

	history := got.Orchestrator.History()
	require.Len(t, history, 1)
	assert.Equal(t, int64(5), history[0].Timestamp)
}
