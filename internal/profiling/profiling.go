// Package profiling records wall-clock time per named pipeline stage.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates durations by stage name. The zero value is ready to use
// and safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	counts map[string]int
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer rec.Track("blockmodel.Flatten")()
func (r *Recorder) Track(name string) func() {
	start := time.Now()
	return func() {
		r.Add(name, time.Since(start))
	}
}

// Add records d under name.
func (r *Recorder) Add(name string, d time.Duration) {
	r.mu.Lock()
	if r.totals == nil {
		r.totals = make(map[string]time.Duration)
		r.counts = make(map[string]int)
	}
	r.totals[name] += d
	r.counts[name]++
	r.mu.Unlock()
}

// Reset clears all totals.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.totals = nil
	r.counts = nil
	r.mu.Unlock()
}

// Count reports how many times name was recorded.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[name]
}

// Snapshot returns a copy of current totals.
func (r *Recorder) Snapshot() map[string]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Duration, len(r.totals))
	for k, v := range r.totals {
		out[k] = v
	}
	return out
}

// Stage is one entry of TopStages.
type Stage struct {
	Name     string
	Duration time.Duration
}

// TopStages returns up to n stages, slowest first. Ties sort by name.
func (r *Recorder) TopStages(n int) []Stage {
	ss := r.Snapshot()
	list := make([]Stage, 0, len(ss))
	for k, v := range ss {
		list = append(list, Stage{Name: k, Duration: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Duration != list[j].Duration {
			return list[i].Duration > list[j].Duration
		}
		return list[i].Name < list[j].Name
	})
	if n < len(list) {
		list = list[:n]
	}
	return list
}

// TopN formats top N durations.
// Example: "meshing.Build:4.2ms, blockmodel.Load:2.1ms"
func (r *Recorder) TopN(n int) string {
	stages := r.TopStages(n)
	parts := make([]string, 0, len(stages))
	for _, s := range stages {
		ms := float64(s.Duration.Microseconds()) / 1000.0
		parts = append(parts, s.Name+":"+formatMs(ms))
	}
	return strings.Join(parts, ", ")
}

func formatMs(ms float64) string {
	// one decimal, dropped when zero
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}
