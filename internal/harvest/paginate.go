// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/pdiddy/profile-hunter/internal/httputil"
	"github.com/pdiddy/profile-hunter/pkg/types"
)

const (
	// PageSize is the number of results the search API returns per page.
	PageSize = 10

	// MaxResultsPerQuery is the search API's hard ceiling per query.
	MaxResultsPerQuery = 100
)

// PageFetcher retrieves one page of search results. start is the 1-based
// index of the first result. Implementations wrap ErrRateLimited,
// ErrUnavailable, ErrAuth or ErrTransport so failures can be classified.
type PageFetcher interface {
	Fetch(ctx context.Context, query string, start int) (types.Page, error)
}

// Paginator drives a PageFetcher across sequential result pages of one query.
type Paginator struct {
	fetcher    PageFetcher
	metrics    *Collector
	maxRetries int
}

// NewPaginator returns a Paginator that counts every fetch attempt in
// metrics. maxRetries follows httputil.Retry: 0 selects the default and a
// negative value disables retries.
func NewPaginator(fetcher PageFetcher, metrics *Collector, maxRetries int) *Paginator {
	if metrics == nil {
		metrics = NewCollector()
	}
	return &Paginator{fetcher: fetcher, metrics: metrics, maxRetries: maxRetries}
}

// Pages returns the result pages of q, fetched lazily as the caller ranges
// over them. Every range restarts from page 1.
//
// Iteration ends after the page that reaches MaxResultsPerQuery, after a
// short page, or once the total estimate has been consumed. A failure is
// yielded once as the final element: ErrFatal for credential problems,
// ErrQueryAbandoned when transient retries ran out, the context error on
// cancellation, and the wrapped fetch error otherwise.
func (p *Paginator) Pages(ctx context.Context, q Query) iter.Seq2[[]types.RawResult, error] {
	return func(yield func([]types.RawResult, error) bool) {
		retrieved := 0
		for retrieved < MaxResultsPerQuery {
			start := retrieved + 1

			var page types.Page
			err := httputil.Retry(ctx, p.maxRetries, isTransient, func(ctx context.Context) error {
				p.metrics.IncRequests()
				var err error
				page, err = p.fetcher.Fetch(ctx, q.Text, start)
				return err
			})
			if err != nil {
				yield(nil, classifyFetchError(q, start, err))
				return
			}

			items := page.Items
			if len(items) > PageSize {
				items = items[:PageSize]
			}
			if room := MaxResultsPerQuery - retrieved; len(items) > room {
				items = items[:room]
			}
			retrieved += len(items)

			if len(items) > 0 && !yield(items, nil) {
				return
			}
			if len(items) < PageSize || page.TotalEstimate <= retrieved {
				return
			}
		}
	}
}

func classifyFetchError(q Query, start int, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, ErrAuth):
		return fmt.Errorf("%w: query %s (start %d): %w", ErrFatal, q.Text, start, err)
	case isTransient(err):
		return fmt.Errorf("%w: query %s (start %d): %w", ErrQueryAbandoned, q.Text, start, err)
	default:
		return fmt.Errorf("query %s (start %d): %w", q.Text, start, err)
	}
}
