package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/kedare/lens/internal/backend"
	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/search"
	"github.com/kedare/lens/internal/suggest"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() search.Snapshot {
	return search.Snapshot{
		Query:       "mountain lake",
		Filters:     search.DefaultFilters(),
		CurrentPage: 1,
		TotalPages:  1,
		Results: []search.ImageResult{
			{ID: "1", Title: "Beautiful Mountain Landscape", URL: "https://example.com/1", Source: "Unsplash", Width: 800, Height: 600, Size: "1.2 MB", Type: "JPEG"},
			{ID: "7", Title: "Mountain Lake", URL: "https://example.com/7", Source: "Unsplash", Width: 800, Height: 600, Type: "JPEG"},
		},
	}
}

func TestDisplaySearchTable(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)
	t.Setenv("COLUMNS", "120")

	var buf bytes.Buffer
	require.NoError(t, DisplaySearch(&buf, sampleSnapshot(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Beautiful Mountain Landscape")
	assert.Contains(t, out, "800x600")
	assert.Contains(t, out, "Page 1 of 1  [1]")
}

func TestDisplaySearchText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplaySearch(&buf, sampleSnapshot(), FormatText))

	out := buf.String()
	assert.Contains(t, out, `Found 2 image(s) for "mountain lake"`)
	assert.Contains(t, out, "Source:    Unsplash (800x600, 1.2 MB)")
	assert.Contains(t, out, "Source:    Unsplash (800x600)\n")
}

func TestDisplaySearchJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplaySearch(&buf, search.Snapshot{Query: "x"}, FormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "x", decoded["query"])
	assert.Equal(t, []interface{}{}, decoded["results"])
}

func TestDisplaySearchEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplaySearch(&buf, search.Snapshot{}, FormatTable))
	assert.Equal(t, "No images found.\n", buf.String())
}

func TestPageLine(t *testing.T) {
	assert.Equal(t, "Page 0 of 0", PageLine(1, 0))
	assert.Equal(t, "Page 2 of 3  1 [2] 3", PageLine(2, 3))
	assert.Equal(t, "Page 10 of 10  6 7 8 9 [10]", PageLine(10, 10))
}

func TestDisplayImageResult(t *testing.T) {
	r := search.ImageResult{
		ID:    "abc",
		Title: "Similar to cat.png - Ocean Sunset",
		Metadata: &search.Metadata{UploadedImage: &search.UploadedImage{
			Width: 20, Height: 10, Type: "image/png", Size: "68 B",
		}},
		DetectedObjects: []search.DetectedObject{
			{Label: "Person", Confidence: 0.95, BoundingBox: search.BoundingBox{X: 100, Y: 100, Width: 200, Height: 400}},
		},
		DetectedText:   "hello",
		TranslatedText: "bonjour",
	}

	var buf bytes.Buffer
	require.NoError(t, DisplayImageResult(&buf, r, FormatText))

	out := buf.String()
	assert.Contains(t, out, "Upload: 20x10 image/png, 68 B")
	assert.Contains(t, out, "- Person 95% at (100,100) 200x400")
	assert.Contains(t, out, "Text:   hello")
	assert.Contains(t, out, "Translation: bonjour")
}

func TestDisplayHistory(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []search.HistoryEntry{
		{Query: "cats", Timestamp: now.Add(-3 * time.Minute).UnixMilli(), Filters: search.Filters{Size: "large"}},
		{Query: "beach.png", Timestamp: now.Add(-2 * time.Hour).UnixMilli(), Filters: search.DefaultFilters(), IsImageSearch: true},
	}

	var buf bytes.Buffer
	require.NoError(t, DisplayHistory(&buf, entries, now, FormatTable))
	out := buf.String()
	assert.Contains(t, out, "3 minutes ago")
	assert.Contains(t, out, "size=large")
	assert.Contains(t, out, "image")

	buf.Reset()
	require.NoError(t, DisplayHistory(&buf, nil, now, FormatText))
	assert.Equal(t, "No search history.\n", buf.String())

	buf.Reset()
	require.NoError(t, DisplayHistory(&buf, nil, now, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestDisplaySuggestions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplaySuggestions(&buf, []suggest.Suggestion{
		{Text: "cats", Type: suggest.TypeHistory},
		{Text: "cats images", Type: suggest.TypeSuggestion},
	}, FormatText))

	assert.Equal(t, "↺ cats\n  cats images\n", buf.String())
}

func TestDisplayTrending(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayTrending(&buf, backend.DefaultTrending[:1], FormatText))
	assert.Equal(t, "price of h&m tote bag (fashion)\n", buf.String())
}

func TestDisplayStoreInfo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayStoreInfo(&buf, &kv.Info{Path: "/tmp/lens.db", SizeBytes: 8192, SchemaVersion: 3, KeyCount: 1200}, FormatText))

	out := buf.String()
	assert.Contains(t, out, "Size:           8.0 KiB")
	assert.Contains(t, out, "Keys:           1,200")
	assert.Contains(t, out, "Store stats: no lookups")
}
