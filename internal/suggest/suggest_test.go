package suggest

import (
	"fmt"
	"testing"

	"github.com/kedare/lens/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, x := range s {
		out[i] = x.Text
	}

	return out
}

func TestGetCaseInsensitiveSubstring(t *testing.T) {
	got := Get("NAT", FromTexts([]string{"nature", "ocean"}, TypeSuggestion))
	assert.Equal(t, []string{"nature"}, texts(got))

	got = Get("ea", FromTexts([]string{"Ocean", "beach", "forest"}, TypeSuggestion))
	assert.Equal(t, []string{"Ocean", "beach"}, texts(got))
}

func TestGetBlankQuery(t *testing.T) {
	for _, q := range []string{"", "   "} {
		got := Get(q, FromTexts([]string{"nature"}, TypeSuggestion))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestGetTruncatesInOrder(t *testing.T) {
	var candidates []string
	for i := range 20 {
		candidates = append(candidates, fmt.Sprintf("cat %02d", i))
	}

	got := Get("cat", FromTexts(candidates, TypeSuggestion))
	require.Len(t, got, MaxSuggestions)
	assert.Equal(t, candidates[:MaxSuggestions], texts(got))
}

func TestGetKeepsType(t *testing.T) {
	got := Get("cat", []Suggestion{{Text: "cats", Type: TypeHistory}})
	require.Len(t, got, 1)
	assert.Equal(t, TypeHistory, got[0].Type)
}

func TestCatalog(t *testing.T) {
	history := []search.HistoryEntry{
		{Query: "cats"},
		{Query: "photo.png", IsImageSearch: true},
		{Query: "dogs"},
	}

	got := Catalog(history, []string{"cats images", "CATS"}, []string{"dogs", "zara new launches"})

	assert.Equal(t, []Suggestion{
		{Text: "cats", Type: TypeHistory},
		{Text: "dogs", Type: TypeHistory},
		{Text: "cats images", Type: TypeSuggestion},
		{Text: "zara new launches", Type: TypeSuggestion},
	}, got)
}
