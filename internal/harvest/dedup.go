// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"net/url"
	"strings"
	"sync"

	"github.com/pdiddy/profile-hunter/pkg/types"
)

// DedupKey normalizes a profile URL for identity comparison: lowercased,
// with query string, fragment and trailing slash removed.
func DedupKey(link string) string {
	key := strings.ToLower(strings.TrimSpace(link))
	if u, err := url.Parse(key); err == nil {
		u.RawQuery = ""
		u.ForceQuery = false
		u.Fragment = ""
		u.RawFragment = ""
		key = u.String()
	} else if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	return strings.TrimRight(key, "/")
}

// ProfileSet holds the unique profiles of a run in first-seen order. It is
// safe for concurrent use.
type ProfileSet struct {
	mu      sync.Mutex
	index   map[string]int
	records []types.ProfileRecord
}

// NewProfileSet returns an empty ProfileSet.
func NewProfileSet() *ProfileSet {
	return &ProfileSet{index: make(map[string]int)}
}

// Merge adds rec to the set and reports whether it was a new profile. On a
// collision the stored record keeps its name and snippet; only empty values
// are filled from rec.
func (s *ProfileSet) Merge(rec types.ProfileRecord) bool {
	key := DedupKey(rec.LinkedInURL)
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.index[key]; ok {
		mergeInto(&s.records[idx], rec)
		return false
	}
	s.index[key] = len(s.records)
	s.records = append(s.records, rec)
	return true
}

// mergeInto fills empty fields of dst from src.
func mergeInto(dst *types.ProfileRecord, src types.ProfileRecord) {
	if dst.Name == "" && src.Name != "" {
		dst.Name = src.Name
	}
	if dst.RoleSnippet == "" && src.RoleSnippet != "" {
		dst.RoleSnippet = src.RoleSnippet
	}
}

// Len returns the number of unique profiles.
func (s *ProfileSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Records returns a copy of the profiles in first-seen order.
func (s *ProfileSet) Records() []types.ProfileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ProfileRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Apply calls fn on every stored record under the set's lock. It is used to
// fill derived fields once all sightings are merged.
func (s *ProfileSet) Apply(fn func(*types.ProfileRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		fn(&s.records[i])
	}
}
