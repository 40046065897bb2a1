package search

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kedare/lens/internal/logger"
)

const (
	// MaxHistory is the number of history entries kept.
	MaxHistory = 10
	// DefaultPerPage is the page size requested from the backend.
	DefaultPerPage = 8
)

// Snapshot is a copy of the orchestrator state.
type Snapshot struct {
	Query       string
	Filters     Filters
	IsLoading   bool
	Error       string
	Results     []ImageResult
	CurrentPage int
	TotalPages  int
	History     []HistoryEntry
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock replaces time.Now for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithPerPage sets the page size requested from the backend.
func WithPerPage(perPage int) Option {
	return func(o *Orchestrator) {
		if perPage > 0 {
			o.perPage = perPage
		}
	}
}

// Orchestrator owns the search session state. It is safe for concurrent use;
// when searches overlap, only the most recently started one updates state.
type Orchestrator struct {
	backend Backend
	store   HistoryPersister
	now     func() time.Time
	perPage int

	saveMu        sync.Mutex
	mu            sync.Mutex
	state         Snapshot
	seq           uint64
	lastTimestamp int64
	listeners     []func(Snapshot)
}

// New creates an orchestrator and rehydrates history from store.
func New(backend Backend, store HistoryPersister, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend: backend,
		store:   store,
		now:     time.Now,
		perPage: DefaultPerPage,
		state: Snapshot{
			Filters:     DefaultFilters(),
			CurrentPage: 1,
		},
	}

	for _, opt := range opts {
		opt(o)
	}

	o.state.History = store.Load()
	for _, e := range o.state.History {
		o.lastTimestamp = max(o.lastTimestamp, e.Timestamp)
	}

	return o
}

// OnChange registers fn to receive a snapshot after every state change.
// Listeners run on the goroutine that made the change, outside the lock.
func (o *Orchestrator) OnChange(fn func(Snapshot)) {
	o.mu.Lock()
	o.listeners = append(o.listeners, fn)
	o.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.snapshotLocked()
}

// History returns a copy of the history list, most recent first.
func (o *Orchestrator) History() []HistoryEntry {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]HistoryEntry(nil), o.state.History...)
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	s := o.state
	s.Results = append([]ImageResult(nil), o.state.Results...)
	s.History = append([]HistoryEntry(nil), o.state.History...)

	return s
}

// update applies fn under the lock then notifies listeners.
func (o *Orchestrator) update(fn func(s *Snapshot)) {
	o.mu.Lock()
	fn(&o.state)
	snap := o.snapshotLocked()
	listeners := slices.Clone(o.listeners)
	o.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (o *Orchestrator) SetQuery(q string) {
	o.update(func(s *Snapshot) { s.Query = q })
}

func (o *Orchestrator) SetFilters(f Filters) {
	o.update(func(s *Snapshot) { s.Filters = f.Normalize() })
}

// SetCurrentPage selects the page the next Search fetches. Callers only
// offer pages in [1, TotalPages]; the value is stored as given.
func (o *Orchestrator) SetCurrentPage(page int) {
	o.update(func(s *Snapshot) { s.CurrentPage = page })
}

// ClearResults drops results and errors and rewinds to page 1.
func (o *Orchestrator) ClearResults() {
	o.update(func(s *Snapshot) {
		s.Results = nil
		s.Error = ""
		s.CurrentPage = 1
		s.TotalPages = 0
	})
}

// Submit sets the query, rewinds to page 1 and searches.
func (o *Orchestrator) Submit(ctx context.Context, q string) {
	o.update(func(s *Snapshot) {
		s.Query = q
		s.CurrentPage = 1
	})
	o.Search(ctx)
}

// begin marks a new request as loading and returns its sequence number.
func (o *Orchestrator) begin() uint64 {
	var seq uint64

	o.update(func(s *Snapshot) {
		o.seq++
		seq = o.seq
		s.IsLoading = true
		s.Error = ""
	})

	return seq
}

// finish applies fn only if seq is still the latest request. It reports
// whether the state was updated.
func (o *Orchestrator) finish(seq uint64, fn func(s *Snapshot)) bool {
	applied := false

	o.update(func(s *Snapshot) {
		if seq != o.seq {
			return
		}

		applied = true
		s.IsLoading = false
		fn(s)
	})

	if !applied {
		logger.Log.Debugf("Discarding stale search response #%d", seq)
	}

	return applied
}

// Search runs a text search for the current query, filters and page. It
// does nothing when the query is blank. Failures are reported through
// Snapshot().Error.
func (o *Orchestrator) Search(ctx context.Context) {
	o.mu.Lock()
	query := strings.TrimSpace(o.state.Query)
	filters := o.state.Filters
	page := max(o.state.CurrentPage, 1)
	o.mu.Unlock()

	if query == "" {
		return
	}

	seq := o.begin()
	logger.Log.Debugf("Searching %q (page %d, filters %s)", query, page, filters)

	rs, err := o.backend.SearchByText(ctx, TextRequest{
		Query:   query,
		Filters: filters,
		Page:    page,
		PerPage: o.perPage,
	})
	if err != nil {
		logger.Log.Debugf("Search %q failed: %v", query, err)
		o.finish(seq, func(s *Snapshot) {
			s.Error = fmt.Sprintf("search failed: %v", err)
			s.Results = nil
			s.TotalPages = 0
		})

		return
	}

	applied := o.finish(seq, func(s *Snapshot) {
		s.Results = rs.Results
		s.TotalPages = rs.TotalPages()
		if rs.Page > 0 {
			s.CurrentPage = rs.Page
		}
	})

	if applied {
		o.addToHistory(query, filters, false)
	}
}

// SearchByImage finds images similar to file. The representative result is
// returned; failures are both recorded in the state and returned.
func (o *Orchestrator) SearchByImage(ctx context.Context, file ImageFile) (ImageResult, error) {
	if len(file.Data) == 0 {
		seq := o.begin()
		o.finish(seq, func(s *Snapshot) {
			s.Error = fmt.Sprintf("image search failed: %v", ErrNoImage)
			s.Results = nil
			s.TotalPages = 0
		})

		return ImageResult{}, ErrNoImage
	}

	o.mu.Lock()
	filters := o.state.Filters
	o.mu.Unlock()

	seq := o.begin()
	logger.Log.Debugf("Searching by image %s (%d bytes)", file.Name, len(file.Data))

	rs, err := o.backend.SearchByImage(ctx, ImageRequest{File: file, Page: 1, PerPage: o.perPage})
	if err == nil && len(rs.Results) == 0 {
		err = fmt.Errorf("no similar images for %s", file.Name)
	}

	if err != nil {
		o.finish(seq, func(s *Snapshot) {
			s.Error = fmt.Sprintf("image search failed: %v", err)
			s.Results = nil
			s.TotalPages = 0
		})

		return ImageResult{}, fmt.Errorf("image search failed: %w", err)
	}

	result := rs.Results[0]

	applied := o.finish(seq, func(s *Snapshot) {
		s.Results = []ImageResult{result}
		s.TotalPages = 1
		s.CurrentPage = 1
	})

	if applied {
		o.addToHistory(file.Name, filters, true)
	}

	return result, nil
}

// addToHistory records query as the most recent entry, replacing any earlier
// entry for the same (query, isImageSearch) pair.
func (o *Orchestrator) addToHistory(query string, filters Filters, isImage bool) {
	o.update(func(s *Snapshot) {
		ts := o.now().UnixMilli()
		if ts <= o.lastTimestamp {
			ts = o.lastTimestamp + 1
		}
		o.lastTimestamp = ts

		next := make([]HistoryEntry, 0, MaxHistory)
		next = append(next, HistoryEntry{
			Query:         query,
			Timestamp:     ts,
			Filters:       filters,
			IsImageSearch: isImage,
		})

		for _, e := range s.History {
			if e.Query == query && e.IsImageSearch == isImage {
				continue
			}
			next = append(next, e)
		}

		if len(next) > MaxHistory {
			next = next[:MaxHistory]
		}

		s.History = next
	})

	o.persist()
}

// RemoveFromHistory drops the entry with the given timestamp. Unknown
// timestamps leave the list unchanged.
func (o *Orchestrator) RemoveFromHistory(ts int64) {
	o.update(func(s *Snapshot) {
		next := make([]HistoryEntry, 0, len(s.History))
		for _, e := range s.History {
			if e.Timestamp != ts {
				next = append(next, e)
			}
		}

		s.History = next
	})

	o.persist()
}

// ClearHistory removes every history entry.
func (o *Orchestrator) ClearHistory() {
	o.update(func(s *Snapshot) { s.History = nil })
	o.persist()
}

// persist writes the current history. saveMu orders writers so the last
// save always carries the latest list.
func (o *Orchestrator) persist() {
	o.saveMu.Lock()
	defer o.saveMu.Unlock()

	if err := o.store.Save(o.History()); err != nil {
		logger.Log.Warnf("Failed to save search history: %v", err)
	}
}
