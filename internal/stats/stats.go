// Package stats tracks analysis latencies within a rolling window so the
// dashboard can show how long parsing and ranking are taking.
package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// Snapshot is a point-in-time aggregate of latency samples.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Tracker records recent operation latencies, keyed by operation name.
type Tracker struct {
	mu      sync.Mutex
	samples map[string][]sample
	maxAge  time.Duration
}

func NewTracker(maxAge time.Duration) *Tracker {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Tracker{
		samples: make(map[string][]sample),
		maxAge:  maxAge,
	}
}

// Record adds a latency sample for an operation.
func (t *Tracker) Record(op string, durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(op, now)
	t.samples[op] = append(t.samples[op], sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

// Observe records the elapsed time since start for an operation.
func (t *Tracker) Observe(op string, start time.Time) {
	t.Record(op, time.Since(start).Milliseconds())
}

// Snapshot aggregates the current window for every operation.
func (t *Tracker) Snapshot() map[string]Snapshot {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Snapshot, len(t.samples))
	for op := range t.samples {
		t.pruneLocked(op, now)
		if len(t.samples[op]) == 0 {
			continue
		}

		values := make([]int64, 0, len(t.samples[op]))
		var sum int64
		for _, sm := range t.samples[op] {
			values = append(values, sm.durationMs)
			sum += sm.durationMs
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		out[op] = Snapshot{
			Count: len(values),
			MinMs: values[0],
			MaxMs: values[len(values)-1],
			AvgMs: float64(sum) / float64(len(values)),
			P50Ms: percentile(values, 50),
			P95Ms: percentile(values, 95),
			P99Ms: percentile(values, 99),
		}
	}
	return out
}

func (t *Tracker) pruneLocked(op string, now time.Time) {
	cutoff := now.Add(-t.maxAge)
	samples := t.samples[op]
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	t.samples[op] = samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
