// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/pdiddy/profile-hunter/pkg/types"
)

// Collector accumulates run counters. It is safe for concurrent use.
type Collector struct {
	requests      atomic.Int64
	profiles      atomic.Int64
	queries       atomic.Int64
	queriesFailed atomic.Int64
	aborted       atomic.Bool

	now func() time.Time
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{now: time.Now}
}

// IncRequests records one page fetch attempt.
func (c *Collector) IncRequests() { c.requests.Add(1) }

// Requests returns the number of page fetch attempts so far.
func (c *Collector) Requests() int { return int(c.requests.Load()) }

// SetProfilesFound records the size of the merged profile set.
func (c *Collector) SetProfilesFound(n int) { c.profiles.Store(int64(n)) }

// SetQueries records how many queries the run planned.
func (c *Collector) SetQueries(n int) { c.queries.Store(int64(n)) }

// IncQueriesFailed records a query that ended on an error.
func (c *Collector) IncQueriesFailed() { c.queriesFailed.Add(1) }

// MarkAborted records that the run stopped before its last query.
func (c *Collector) MarkAborted() { c.aborted.Store(true) }

// Finalize computes the RunMetrics for organization, measuring elapsed time
// from startedAt.
func (c *Collector) Finalize(organization string, startedAt time.Time) types.RunMetrics {
	now := c.now()
	elapsed := now.Sub(startedAt).Seconds()
	return types.RunMetrics{
		Organization:         organization,
		Timestamp:            now.UTC().Format(time.RFC3339),
		APIRequests:          int(c.requests.Load()),
		ProfilesFound:        int(c.profiles.Load()),
		QueriesTotal:         int(c.queries.Load()),
		QueriesFailed:        int(c.queriesFailed.Load()),
		Aborted:              c.aborted.Load(),
		ExecutionTimeSeconds: math.Round(elapsed*100) / 100,
	}
}
