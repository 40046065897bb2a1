package kv

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kedare/lens/internal/logger"
)

// Stats tracks store statistics.
type Stats struct {
	mu sync.RWMutex

	hits   int64
	misses int64

	operations   map[string]int64
	totalTime    map[string]time.Duration
	operationMin map[string]time.Duration
	operationMax map[string]time.Duration

	startTime time.Time
}

func newStats() *Stats {
	return &Stats{
		operations:   make(map[string]int64),
		totalTime:    make(map[string]time.Duration),
		operationMin: make(map[string]time.Duration),
		operationMax: make(map[string]time.Duration),
		startTime:    time.Now(),
	}
}

func (s *Stats) recordHit() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.hits++
	s.mu.Unlock()
}

func (s *Stats) recordMiss() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.misses++
	s.mu.Unlock()
}

// recordOperation records an operation with its duration.
func (s *Stats) recordOperation(op string, duration time.Duration) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.operations[op]++
	s.totalTime[op] += duration

	if current, ok := s.operationMin[op]; !ok || duration < current {
		s.operationMin[op] = duration
	}

	if duration > s.operationMax[op] {
		s.operationMax[op] = duration
	}
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Hits       int64
	Misses     int64
	HitRate    float64
	Operations map[string]int64
	AvgTime    map[string]time.Duration
	MinTime    map[string]time.Duration
	MaxTime    map[string]time.Duration
	Uptime     time.Duration
}

func emptySnapshot() StatsSnapshot {
	return StatsSnapshot{
		Operations: make(map[string]int64),
		AvgTime:    make(map[string]time.Duration),
		MinTime:    make(map[string]time.Duration),
		MaxTime:    make(map[string]time.Duration),
	}
}

// Snapshot returns a snapshot of current statistics.
func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return emptySnapshot()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := emptySnapshot()
	snapshot.Hits = s.hits
	snapshot.Misses = s.misses
	snapshot.Uptime = time.Since(s.startTime)

	if total := s.hits + s.misses; total > 0 {
		snapshot.HitRate = float64(s.hits) / float64(total)
	}

	for k, v := range s.operations {
		snapshot.Operations[k] = v
		if v > 0 {
			snapshot.AvgTime[k] = s.totalTime[k] / time.Duration(v)
		}
	}

	for k, v := range s.operationMin {
		snapshot.MinTime[k] = v
	}

	for k, v := range s.operationMax {
		snapshot.MaxTime[k] = v
	}

	return snapshot
}

// OperationNames returns the recorded operation names sorted alphabetically.
func (s StatsSnapshot) OperationNames() []string {
	names := make([]string, 0, len(s.Operations))
	for name := range s.Operations {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	if s.Hits == 0 && s.Misses == 0 {
		return "Store stats: no lookups"
	}

	return fmt.Sprintf(
		"Store stats: hits=%d misses=%d hit_rate=%.1f%% uptime=%v",
		s.Hits, s.Misses, s.HitRate*100, s.Uptime.Round(time.Second),
	)
}

// logStats writes the snapshot at debug level.
func logStats(snapshot StatsSnapshot) {
	if snapshot.Hits == 0 && snapshot.Misses == 0 && len(snapshot.Operations) == 0 {
		return
	}

	logger.Log.Debug(snapshot.String())

	for _, op := range snapshot.OperationNames() {
		logger.Log.Debugf("  %s: count=%d avg=%v min=%v max=%v",
			op, snapshot.Operations[op],
			snapshot.AvgTime[op].Round(time.Microsecond),
			snapshot.MinTime[op].Round(time.Microsecond),
			snapshot.MaxTime[op].Round(time.Microsecond))
	}
}
