// Package perf keeps recent request and query timings in memory for the admin perf endpoint.
package perf

import (
	"cmp"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind distinguishes request vs query entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is a single timing record stored in the ring buffer.
type Entry struct {
	Kind       EntryKind
	Label      string // "METHOD /path" for requests, "VERB table" for queries
	StatusCode int    // HTTP status; 0 for queries
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer. Record never allocates; all aggregation
// happens in Snapshot.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	total   atomic.Int64
}

// NewCollector creates a collector holding the last size entries.
// PRE: size > 0, otherwise DefaultRingSize applies
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size)}
}

// Record stores e, overwriting the oldest entry once the ring is full.
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.next] = e
	c.next = (c.next + 1) % len(c.entries)
	c.mu.Unlock()
	c.total.Add(1)
}

// TotalRecorded returns how many entries were ever recorded, including overwritten ones.
func (c *Collector) TotalRecorded() int64 {
	return c.total.Load()
}

// Snapshot is the aggregated view served to the super-admin.
type Snapshot struct {
	Since         time.Time `json:"since"`
	TotalRecorded int64     `json:"total_recorded"`
	RequestCount  int       `json:"request_count"`
	QueryCount    int       `json:"query_count"`
	ClientErrors  int       `json:"client_errors"` // 4xx responses
	ServerErrors  int       `json:"server_errors"` // 5xx responses
	RequestP50Ms  float64   `json:"request_p50_ms"`
	RequestP95Ms  float64   `json:"request_p95_ms"`
	RequestP99Ms  float64   `json:"request_p99_ms"`
	SlowRoutes    []Stat    `json:"slow_routes"`
	SlowQueries   []Stat    `json:"slow_queries"`
}

// Stat aggregates the timings sharing one label.
type Stat struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Errors int     `json:"errors"` // responses with status >= 500
	AvgMs  float64 `json:"avg_ms"`
	P95Ms  float64 `json:"p95_ms"`
	MaxMs  float64 `json:"max_ms"`
}

// group collects durations for one label until Snapshot summarises it.
type group struct {
	durations []float64
	errors    int
}

type groups map[string]*group

func (g groups) add(e Entry) {
	grp, ok := g[e.Label]
	if !ok {
		grp = &group{}
		g[e.Label] = grp
	}
	grp.durations = append(grp.durations, e.DurationMs)
	if e.StatusCode >= 500 {
		grp.errors++
	}
}

// slowest summarises every group and keeps the n with the highest average.
func (g groups) slowest(n int) []Stat {
	stats := make([]Stat, 0, len(g))
	for label, grp := range g {
		slices.Sort(grp.durations)
		var sum float64
		for _, d := range grp.durations {
			sum += d
		}
		stats = append(stats, Stat{
			Label:  label,
			Count:  len(grp.durations),
			Errors: grp.errors,
			AvgMs:  sum / float64(len(grp.durations)),
			P95Ms:  percentile(grp.durations, 95),
			MaxMs:  grp.durations[len(grp.durations)-1],
		})
	}
	slices.SortFunc(stats, func(a, b Stat) int {
		if c := cmp.Compare(b.AvgMs, a.AvgMs); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	if n >= 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// Snapshot aggregates entries recorded at or after since, keeping topN labels per kind.
// It sorts, so only the admin endpoint calls it.
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := slices.Clone(c.entries)
	c.mu.Unlock()

	snap := Snapshot{Since: since, TotalRecorded: c.TotalRecorded()}
	routes, queries := groups{}, groups{}
	var all []float64

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		if e.Kind == KindQuery {
			snap.QueryCount++
			queries.add(e)
			continue
		}
		snap.RequestCount++
		switch {
		case e.StatusCode >= 500:
			snap.ServerErrors++
		case e.StatusCode >= 400:
			snap.ClientErrors++
		}
		all = append(all, e.DurationMs)
		routes.add(e)
	}

	slices.Sort(all)
	snap.RequestP50Ms = percentile(all, 50)
	snap.RequestP95Ms = percentile(all, 95)
	snap.RequestP99Ms = percentile(all, 99)
	snap.SlowRoutes = routes.slowest(topN)
	snap.SlowQueries = queries.slowest(topN)
	return snap
}

// percentile interpolates the p-th percentile of an ascending slice; 0 when empty.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo, hi := int(math.Floor(rank)), int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
