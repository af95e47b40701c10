// Package perf collects lightweight timing samples and counters for the
// frame loop. Collection is off unless AUTOSCROLL_PERF is set.
package perf

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/autoscroll/internal/logging"
)

const (
	defaultSampleWindow = 128
	defaultIntervalMs   = 5000
)

type stat struct {
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples []time.Duration
	idx     int
	full    bool
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	mu       sync.Mutex
	stats    = map[string]*stat{}
	counters = map[string]int64{}
)

func init() {
	enabled.Store(isEnabled(os.Getenv("AUTOSCROLL_PERF")))
	logInterval.Store(int64(intervalFromEnv(os.Getenv("AUTOSCROLL_PERF_INTERVAL_MS"))))
}

// Enabled reports whether collection is on.
func Enabled() bool {
	return enabled.Load()
}

// Time returns a function that records the elapsed time when invoked.
//
//	defer perf.Time("tick")()
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Record captures a duration sample for name.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	s, ok := stats[name]
	if !ok {
		s = &stat{samples: make([]time.Duration, defaultSampleWindow)}
		stats[name] = s
	}
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.samples[s.idx] = d
	s.idx++
	if s.idx >= len(s.samples) {
		s.idx = 0
		s.full = true
	}
	mu.Unlock()

	maybeLog()
}

// Count adds delta to the named counter.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	counters[name] += delta
	mu.Unlock()

	maybeLog()
}

// Flush logs and resets everything collected so far.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if strings.TrimSpace(reason) != "" {
		prefix = fmt.Sprintf("PERF SUMMARY %s", reason)
	}
	writeLog(prefix)
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	writeLog("PERF")
}

func writeLog(prefix string) {
	statSnaps, counterSnaps := Snapshot()
	for _, s := range statSnaps {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.Name, s.Count, s.Avg, s.P95, s.Min, s.Max)
	}
	for _, c := range counterSnaps {
		logging.Info("%s %s count=%d", prefix, c.Name, c.Value)
	}
}

// StatSnapshot is a summary of one timing series.
type StatSnapshot struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P95   time.Duration
}

// CounterSnapshot is the value of one counter.
type CounterSnapshot struct {
	Name  string
	Value int64
}

// Snapshot returns the collected stats and counters sorted by name and
// resets them.
func Snapshot() ([]StatSnapshot, []CounterSnapshot) {
	mu.Lock()
	defer mu.Unlock()

	statOut := make([]StatSnapshot, 0, len(stats))
	for name, s := range stats {
		if s.count == 0 {
			continue
		}
		statOut = append(statOut, StatSnapshot{
			Name:  name,
			Count: s.count,
			Avg:   time.Duration(int64(s.total) / s.count),
			Min:   s.min,
			Max:   s.max,
			P95:   computeP95(s.samples, s.idx, s.full),
		})
	}
	counterOut := make([]CounterSnapshot, 0, len(counters))
	for name, v := range counters {
		if v == 0 {
			continue
		}
		counterOut = append(counterOut, CounterSnapshot{Name: name, Value: v})
	}
	stats = map[string]*stat{}
	counters = map[string]int64{}

	sort.Slice(statOut, func(i, j int) bool { return statOut[i].Name < statOut[j].Name })
	sort.Slice(counterOut, func(i, j int) bool { return counterOut[i].Name < counterOut[j].Name })
	return statOut, counterOut
}

func computeP95(samples []time.Duration, idx int, full bool) time.Duration {
	n := idx
	if full {
		n = len(samples)
	}
	if n == 0 {
		return 0
	}
	window := make([]time.Duration, n)
	copy(window, samples[:n])
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	if pos < 0 {
		pos = 0
	}
	return window[pos]
}

func isEnabled(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no":
		return false
	}
	return true
}

func intervalFromEnv(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultIntervalMs * time.Millisecond
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return defaultIntervalMs * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
