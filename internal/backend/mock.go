// Package backend provides the in-process search service lens talks to.
package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kedare/lens/internal/logger"
	"github.com/kedare/lens/internal/search"
	"github.com/kedare/lens/internal/vision"
)

// DefaultDelay is the simulated latency of every backend call.
const DefaultDelay = time.Second

type sample struct {
	keyword string
	result  search.ImageResult
	// color, kind and age are what the size/color/type/time filters match;
	// age is how long ago the image was uploaded.
	color string
	kind  string
	age   time.Duration
}

const day = 24 * time.Hour

func unsplash(id, title, keyword, size, color string, age time.Duration) sample {
	return sample{
		keyword: keyword,
		color:   color,
		kind:    "photo",
		age:     age,
		result: search.ImageResult{
			ID:           id,
			Title:        title,
			URL:          "https://source.unsplash.com/random/800x600?" + keyword,
			ThumbnailURL: "https://source.unsplash.com/random/300x200?" + keyword,
			Source:       "Unsplash",
			Width:        800,
			Height:       600,
			Size:         size,
			Type:         "JPEG",
		},
	}
}

var samples = []sample{
	unsplash("1", "Beautiful Mountain Landscape", "mountain", "1.2 MB", "color", 2*time.Hour),
	unsplash("2", "Ocean Sunset", "ocean", "1.5 MB", "color", 3*day),
	unsplash("3", "City Skyline", "city", "1.8 MB", "gray", 10*day),
	unsplash("4", "Forest Path", "forest", "1.3 MB", "color", 20*day),
	unsplash("5", "Desert Dunes", "desert", "1.4 MB", "color", 40*day),
	unsplash("6", "Beach Waves", "beach", "1.6 MB", "color", 100*day),
	unsplash("7", "Mountain Lake", "lake", "1.7 MB", "color", 200*day),
	unsplash("8", "Urban Street", "street", "1.9 MB", "gray", 400*day),
}

// sizeClass buckets pixel dimensions into the values of the size filter.
func sizeClass(width, height int) string {
	switch longest := max(width, height); {
	case longest >= 800:
		return "large"
	case longest > 256:
		return "medium"
	default:
		return "icon"
	}
}

var periods = map[string]time.Duration{
	"day":   day,
	"week":  7 * day,
	"month": 31 * day,
	"year":  365 * day,
}

// accepts reports whether s passes every non-"any" filter axis.
func (s sample) accepts(f search.Filters) bool {
	f = f.Normalize()

	if f.Size != search.Any && sizeClass(s.result.Width, s.result.Height) != f.Size {
		return false
	}

	if f.Color != search.Any && s.color != f.Color {
		return false
	}

	if f.Type != search.Any && s.kind != f.Type {
		return false
	}

	if limit, ok := periods[f.Time]; ok && s.age > limit {
		return false
	}

	return true
}

// Mock serves the sample catalogue. Text queries return the samples whose
// title or keyword contains a query word; queries matching nothing fall back
// to the whole catalogue. Filters then narrow either set.
type Mock struct {
	// Delay is waited before every response. Zero answers immediately.
	Delay time.Duration
	// Analyzer enriches the representative result of an image search.
	Analyzer vision.Analyzer
	// FailWith, when set, is returned by every search.
	FailWith error
	// NewID generates ids for image search results.
	NewID func() string
	// TranslateTo, when set, is the language detected text is translated to.
	TranslateTo string
}

// NewMock returns a Mock with the mocked vision analyzer.
func NewMock(delay time.Duration) *Mock {
	return &Mock{
		Delay:    delay,
		Analyzer: vision.Mock{},
		NewID:    uuid.NewString,
	}
}

func (m *Mock) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(m.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func matching(query string, filters search.Filters) []search.ImageResult {
	terms := strings.Fields(strings.ToLower(query))

	var hits []sample
	for _, s := range samples {
		title := strings.ToLower(s.result.Title)
		for _, term := range terms {
			if strings.Contains(title, term) || strings.Contains(s.keyword, term) {
				hits = append(hits, s)
				break
			}
		}
	}

	if len(hits) == 0 {
		hits = samples
	}

	out := []search.ImageResult{}
	for _, s := range hits {
		if s.accepts(filters) {
			out = append(out, s.result)
		}
	}

	return out
}

func paginate(all []search.ImageResult, page, perPage int) search.ResultSet {
	if page < 1 {
		page = 1
	}

	if perPage <= 0 {
		perPage = search.DefaultPerPage
	}

	start := min((page-1)*perPage, len(all))
	end := min(start+perPage, len(all))

	return search.ResultSet{
		Results: append([]search.ImageResult(nil), all[start:end]...),
		Total:   len(all),
		Page:    page,
		PerPage: perPage,
	}
}

func (m *Mock) SearchByText(ctx context.Context, req search.TextRequest) (search.ResultSet, error) {
	if err := m.wait(ctx); err != nil {
		return search.ResultSet{}, err
	}

	if m.FailWith != nil {
		return search.ResultSet{}, m.FailWith
	}

	rs := paginate(matching(req.Query, req.Filters), req.Page, req.PerPage)
	logger.Log.Debugf("Mock backend: %q (%s) page %d -> %d of %d results", req.Query, req.Filters, rs.Page, len(rs.Results), rs.Total)

	return rs, nil
}

func (m *Mock) SearchByImage(ctx context.Context, req search.ImageRequest) (search.ResultSet, error) {
	if err := m.wait(ctx); err != nil {
		return search.ResultSet{}, err
	}

	if m.FailWith != nil {
		return search.ResultSet{}, m.FailWith
	}

	all := make([]search.ImageResult, len(samples))
	for i, s := range samples {
		all[i] = s.result
		all[i].Title = fmt.Sprintf("Similar to %s - %s", req.File.Name, s.result.Title)
	}

	rs := paginate(all, req.Page, req.PerPage)
	if len(rs.Results) == 0 {
		return rs, nil
	}

	rep, err := m.representative(ctx, req.File, rs.Results[0])
	if err != nil {
		return search.ResultSet{}, err
	}
	rs.Results[0] = rep

	return rs, nil
}

// representative turns the best match into the result describing the upload.
func (m *Mock) representative(ctx context.Context, file search.ImageFile, best search.ImageResult) (search.ImageResult, error) {
	if m.NewID != nil {
		best.ID = m.NewID()
	}

	best.Metadata = &search.Metadata{Similarity: 1}

	if info, err := vision.Inspect(file); err == nil {
		best.Metadata.UploadedImage = &info
	} else {
		logger.Log.Debugf("Could not inspect %s: %v", file.Name, err)
	}

	if m.Analyzer == nil {
		return best, nil
	}

	analysis, err := vision.Analyze(ctx, m.Analyzer, file, m.TranslateTo)
	if err != nil {
		return search.ImageResult{}, err
	}

	best.DetectedObjects = analysis.Objects
	best.DetectedText = analysis.Text
	best.TranslatedText = analysis.Translation

	return best, nil
}
