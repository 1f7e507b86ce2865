package perf

import (
	"sort"
	"sync"
	"time"
)

// DefaultRingSize is the sample capacity used by the server.
const DefaultRingSize = 8192

// Kind of work a sample measures.
type Kind uint8

const (
	KindHTTP Kind = iota
	KindStore
)

// Sample is one measured operation.
type Sample struct {
	Kind     Kind
	Op       string // "GET /home" for requests, "db.Query" for store calls
	Status   int    // HTTP status, 0 for store calls
	Duration time.Duration
	At       time.Time
}

// Collector keeps the most recent samples in a fixed ring. Adding is
// cheap and never blocks on aggregation; all number crunching happens
// in Report, which only the admin dashboard calls.
type Collector struct {
	mu    sync.Mutex
	ring  []Sample
	next  int
	total int64
}

// NewCollector returns a collector holding at most size samples.
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{ring: make([]Sample, size)}
}

// Add stores a sample, evicting the oldest once the ring is full.
func (c *Collector) Add(s Sample) {
	c.mu.Lock()
	c.ring[c.next] = s
	c.next = (c.next + 1) % len(c.ring)
	c.total++
	c.mu.Unlock()
}

// Total returns how many samples were ever added, including evicted ones.
func (c *Collector) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// OpStat summarises the samples of one operation.
type OpStat struct {
	Op      string
	Count   int
	AvgMs   float64
	MaxMs   float64
	totalMs float64
}

// Report carries aggregated timings for the admin dashboard.
type Report struct {
	Samples           int64
	P50Ms             float64
	P95Ms             float64
	P99Ms             float64
	SlowestEndpoints  []OpStat
	SlowestStoreCalls []OpStat
}

// Report aggregates samples recorded at or after since. The topN
// slowest operations per kind are ranked by average duration.
func (c *Collector) Report(since time.Time, topN int) Report {
	c.mu.Lock()
	buf := make([]Sample, len(c.ring))
	copy(buf, c.ring)
	total := c.total
	c.mu.Unlock()

	var httpMs []float64
	byOp := map[Kind]map[string]*OpStat{
		KindHTTP:  {},
		KindStore: {},
	}

	for _, s := range buf {
		if s.At.IsZero() || s.At.Before(since) {
			continue
		}
		ms := float64(s.Duration.Microseconds()) / 1000.0
		if s.Kind == KindHTTP {
			httpMs = append(httpMs, ms)
		}
		stats := byOp[s.Kind]
		st, ok := stats[s.Op]
		if !ok {
			st = &OpStat{Op: s.Op}
			stats[s.Op] = st
		}
		st.Count++
		st.totalMs += ms
		if ms > st.MaxMs {
			st.MaxMs = ms
		}
	}

	r := Report{
		Samples:           total,
		SlowestEndpoints:  rank(byOp[KindHTTP], topN),
		SlowestStoreCalls: rank(byOp[KindStore], topN),
	}
	if len(httpMs) > 0 {
		sort.Float64s(httpMs)
		r.P50Ms = percentile(httpMs, 50)
		r.P95Ms = percentile(httpMs, 95)
		r.P99Ms = percentile(httpMs, 99)
	}
	return r
}

// percentile uses the nearest-rank method on a sorted slice.
func percentile(sorted []float64, p int) float64 {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

func rank(stats map[string]*OpStat, n int) []OpStat {
	out := make([]OpStat, 0, len(stats))
	for _, st := range stats {
		st.AvgMs = st.totalMs / float64(st.Count)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AvgMs > out[j].AvgMs })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
