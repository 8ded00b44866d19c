package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	mu       sync.Mutex
	upstream map[string]*upstreamStats
}

type upstreamStats struct {
	Calls      uint64 `json:"calls"`
	Failures   uint64 `json:"failures"`
	DurationMs uint64 `json:"durationMs"`
}

func New() *Collector {
	return &Collector{upstream: map[string]*upstreamStats{}}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordUpstream counts one call to the REST backend. A zero status means no
// response was received.
func (c *Collector) RecordUpstream(resource string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	stats, ok := c.upstream[resource]
	if !ok {
		stats = &upstreamStats{}
		c.upstream[resource] = stats
	}
	stats.Calls++
	if status == 0 || status >= 400 {
		stats.Failures++
	}
	stats.DurationMs += uint64(duration.Milliseconds())
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	upstream := make(map[string]upstreamStats, len(c.upstream))
	for resource, stats := range c.upstream {
		upstream[resource] = *stats
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      errs,
		"rateLimitedTotal": limited,
		"avgDurationMs":    avg,
		"totalDurationMs":  totalMs,
		"upstream":         upstream,
	}
}
