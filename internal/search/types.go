// Package search holds the query, filter, result and history state of a lens
// session and drives the search backend.
package search

import (
	"context"
	"errors"
)

// ErrNoImage is returned when an image search is started without image data.
var ErrNoImage = errors.New("image is empty")

// BoundingBox locates a detected object in pixels.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DetectedObject is a labelled region found in an uploaded image.
type DetectedObject struct {
	Label       string      `json:"label"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"boundingBox"`
}

// UploadedImage describes the file that started an image search.
type UploadedImage struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Type   string `json:"type"`
	Size   string `json:"size"`
}

// Metadata carries optional per-result details.
type Metadata struct {
	Similarity    float64        `json:"similarity,omitempty"`
	UploadedImage *UploadedImage `json:"uploadedImage,omitempty"`
}

// ImageResult is a single hit returned by a backend. The orchestrator passes
// it through untouched.
type ImageResult struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	URL             string           `json:"url"`
	ThumbnailURL    string           `json:"thumbnailUrl"`
	Source          string           `json:"source"`
	Width           int              `json:"width"`
	Height          int              `json:"height"`
	Size            string           `json:"size,omitempty"`
	Type            string           `json:"type"`
	Metadata        *Metadata        `json:"metadata,omitempty"`
	DetectedObjects []DetectedObject `json:"detectedObjects,omitempty"`
	DetectedText    string           `json:"detectedText,omitempty"`
	TranslatedText  string           `json:"translatedText,omitempty"`
}

// ResultSet is one page of backend results.
type ResultSet struct {
	Results []ImageResult `json:"results"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"perPage"`
}

// TotalPages returns ceil(Total/PerPage), or 0 when PerPage is not positive.
func (r ResultSet) TotalPages() int {
	return TotalPages(r.Total, r.PerPage)
}

// TextRequest asks a backend for one page of text search results.
type TextRequest struct {
	Query   string
	Filters Filters
	Page    int
	PerPage int
}

// ImageFile is an uploaded image: its display name and raw bytes.
type ImageFile struct {
	Name string
	Data []byte
}

// ImageRequest asks a backend for images similar to File.
type ImageRequest struct {
	File    ImageFile
	Page    int
	PerPage int
}

// Backend performs searches. Implementations must honour ctx cancellation.
type Backend interface {
	SearchByText(ctx context.Context, req TextRequest) (ResultSet, error)
	SearchByImage(ctx context.Context, req ImageRequest) (ResultSet, error)
}

// HistoryEntry is one remembered search. Timestamp is in milliseconds since
// the Unix epoch and identifies the entry.
type HistoryEntry struct {
	Query         string  `json:"query"`
	Timestamp     int64   `json:"timestamp"`
	Filters       Filters `json:"filters"`
	IsImageSearch bool    `json:"isImageSearch,omitempty"`
}

// HistoryPersister loads and saves the history list.
type HistoryPersister interface {
	Load() []HistoryEntry
	Save(entries []HistoryEntry) error
}
