// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectorFinalize(t *testing.T) {
	c := NewCollector()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return start.Add(12340 * time.Millisecond) }

	c.IncRequests()
	c.IncRequests()
	c.SetProfilesFound(7)
	c.SetQueries(23)
	c.IncQueriesFailed()

	m := c.Finalize("ACME", start)
	assert.Equal(t, "ACME", m.Organization)
	assert.Equal(t, 2, m.APIRequests)
	assert.Equal(t, 7, m.ProfilesFound)
	assert.Equal(t, 23, m.QueriesTotal)
	assert.Equal(t, 1, m.QueriesFailed)
	assert.False(t, m.Aborted)
	assert.Equal(t, 12.34, m.ExecutionTimeSeconds)
	assert.Equal(t, "2026-03-01T12:00:12Z", m.Timestamp)
}

func TestCollectorMarkAborted(t *testing.T) {
	c := NewCollector()
	c.MarkAborted()
	assert.True(t, c.Finalize("ACME", time.Now()).Aborted)
}

func TestCollectorConcurrentIncrements(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.IncRequests()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, c.Requests())
}
