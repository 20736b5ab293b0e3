// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdiddy/profile-hunter/pkg/types"
)

// --- fake page fetcher ---

// fakeFetcher serves result lists per query in pages of PageSize and can
// fail specific (query, start) calls with scripted errors.
type fakeFetcher struct {
	mu      sync.Mutex
	results map[string][]types.RawResult
	// totals overrides the reported total estimate per query.
	totals map[string]int
	// failures holds errors to return, consumed in order, per "query@start".
	failures map[string][]error
	calls    []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		results:  make(map[string][]types.RawResult),
		totals:   make(map[string]int),
		failures: make(map[string][]error),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, query string, start int) (types.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := fmt.Sprintf("%s@%d", query, start)
	f.calls = append(f.calls, key)

	if err := ctx.Err(); err != nil {
		return types.Page{}, err
	}
	if errs := f.failures[key]; len(errs) > 0 {
		f.failures[key] = errs[1:]
		return types.Page{}, errs[0]
	}

	all := f.results[query]
	total, ok := f.totals[query]
	if !ok {
		total = len(all)
	}
	lo := start - 1
	if lo >= len(all) {
		return types.Page{TotalEstimate: total}, nil
	}
	hi := min(lo+PageSize, len(all))
	items := make([]types.RawResult, hi-lo)
	copy(items, all[lo:hi])
	return types.Page{Items: items, TotalEstimate: total}, nil
}

func (f *fakeFetcher) fail(query string, start int, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%s@%d", query, start)
	f.failures[key] = append(f.failures[key], errs...)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) callsFor(query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) > len(query) && c[:len(query)+1] == query+"@" {
			n++
		}
	}
	return n
}

// profile returns a raw result for a LinkedIn profile slug.
func profile(slug, name, snippet string) types.RawResult {
	return types.RawResult{
		Title:   name + " - Engineer - ACME | LinkedIn",
		Link:    "https://www.linkedin.com/in/" + slug,
		Snippet: snippet,
	}
}

// profiles returns n distinct raw results with the given slug prefix.
func profiles(prefix string, n int) []types.RawResult {
	out := make([]types.RawResult, n)
	for i := range out {
		out[i] = profile(fmt.Sprintf("%s-%03d", prefix, i), fmt.Sprintf("Person%d %s", i, prefix), "snippet")
	}
	return out
}
