// Package kv provides the local key-value persistence lens keeps its state in.
package kv

import (
	"errors"
	"sort"
	"sync"
)

var (
	// ErrClosed is returned when a store is used after Close.
	ErrClosed = errors.New("key-value store is closed")
	// ErrEmptyKey is returned when a blank key is written.
	ErrEmptyKey = errors.New("key cannot be empty")
)

// Store is a string key-value capability. Get reports whether the key exists.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Memory is a process-local Store. It backs --no-cache runs and tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	stats  *Stats
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
		stats:  newStats(),
	}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if ok {
		m.stats.recordHit()
	} else {
		m.stats.recordMiss()
	}

	return value, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()

	return nil
}

// Delete removes a key. Missing keys are ignored.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()

	return nil
}

// Keys returns the stored keys in lexical order.
func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, nil
}

// Stats returns the hit/miss counters of the store.
func (m *Memory) Stats() StatsSnapshot {
	return m.stats.Snapshot()
}
