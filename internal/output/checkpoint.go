// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"log/slog"
	"sync"

	"github.com/pdiddy/profile-hunter/internal/harvest"
	"github.com/pdiddy/profile-hunter/pkg/types"
)

// Checkpointer rewrites the profiles file whenever a query adds new
// profiles, so an interrupted run still leaves its results on disk.
// OnQuery matches harvest.Options.OnQuery.
type Checkpointer struct {
	Path   string
	Format Format

	// Source returns the profiles collected so far.
	Source func() []types.ProfileRecord
	Logger *slog.Logger

	mu     sync.Mutex
	writes int
}

// OnQuery writes a checkpoint when r added at least one profile. Write
// failures are logged; the run continues.
func (c *Checkpointer) OnQuery(r harvest.QueryReport) {
	if r.New == 0 || c.Source == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := WriteProfiles(c.Path, c.Format, c.Source()); err != nil {
		if c.Logger != nil {
			c.Logger.Warn("checkpoint failed", "path", c.Path, "error", err)
		}
		return
	}
	c.writes++
	if c.Logger != nil {
		c.Logger.Debug("checkpoint written", "path", c.Path, "query", r.Query.Text, "profiles", r.Total)
	}
}

// Writes returns how many checkpoints have been written.
func (c *Checkpointer) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}
