package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Set("a", "2"))

	value, ok, err := m.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", value)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 0.001)
}

func TestMemoryRejectsEmptyKey(t *testing.T) {
	err := NewMemory().Set("", "x")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestMemoryDeleteAndKeys(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("b", "2"))
	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Delete("b"))
	require.NoError(t, m.Delete("never-set"))

	keys, err := m.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, keys)
}

func TestStatsSnapshotString(t *testing.T) {
	assert.Equal(t, "Store stats: no lookups", emptySnapshot().String())

	s := newStats()
	s.recordHit()
	s.recordMiss()
	s.recordMiss()
	s.recordMiss()

	out := s.Snapshot().String()
	assert.Contains(t, out, "hits=1")
	assert.Contains(t, out, "misses=3")
	assert.Contains(t, out, "hit_rate=25.0%")
}

func TestStatsRecordOperation(t *testing.T) {
	s := newStats()
	s.recordOperation("Get", 10)
	s.recordOperation("Get", 30)
	s.recordOperation("Set", 5)

	snap := s.Snapshot()
	assert.Equal(t, []string{"Get", "Set"}, snap.OperationNames())
	assert.Equal(t, int64(2), snap.Operations["Get"])
	assert.EqualValues(t, 20, snap.AvgTime["Get"])
	assert.EqualValues(t, 10, snap.MinTime["Get"])
	assert.EqualValues(t, 30, snap.MaxTime["Get"])
}

func TestNilStatsIsSafe(t *testing.T) {
	var s *Stats
	s.recordHit()
	s.recordMiss()
	s.recordOperation("Get", 1)

	snap := s.Snapshot()
	assert.Zero(t, snap.Hits)
	assert.NotNil(t, snap.Operations)
}
