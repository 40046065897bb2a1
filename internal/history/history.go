// Package history persists the search history list in a key-value store.
package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/logger"
	"github.com/kedare/lens/internal/search"
)

// Key is the store key holding the serialized history.
const Key = "search_history"

// Entry is a remembered search.
type Entry = search.HistoryEntry

// Store reads and writes the history list. It never fails on read: an
// absent, unreadable or malformed payload loads as an empty list.
type Store struct {
	kv kv.Store
}

// New wraps a key-value store.
func New(store kv.Store) *Store {
	return &Store{kv: store}
}

// Load returns the persisted history, most recent first.
func (s *Store) Load() []Entry {
	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		logger.Log.Debugf("Failed to read search history: %v", err)
		return []Entry{}
	}

	if !ok || strings.TrimSpace(raw) == "" {
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Log.Debugf("Ignoring malformed search history: %v", err)
		return []Entry{}
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Query) == "" {
			continue
		}

		e.Filters = e.Filters.Normalize()
		out = append(out, e)
	}

	return out
}

// Save replaces the persisted history with entries.
func (s *Store) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode search history: %w", err)
	}

	if err := s.kv.Set(Key, string(data)); err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}

	return nil
}
