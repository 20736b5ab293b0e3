// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest expands an organization into search queries, paginates
// each query against the search API, extracts and deduplicates profile
// records, and derives candidate email addresses.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/profile-hunter/pkg/types"
)

// Options configures a Harvester.
type Options struct {
	// Organization is the target organization. It is used for query
	// expansion and recorded in the metrics.
	Organization string

	// RawQuery, when non-empty, replaces query expansion with a single query.
	RawQuery string

	// Terms is the coverage term list used for query expansion.
	Terms []string

	// EmailFormat is the email template; empty disables synthesis.
	EmailFormat string

	// Surname selects the surname token for email synthesis.
	Surname SurnameStrategy

	// Site is the accepted profile URL shape. Zero value selects LinkedIn.
	Site SiteRule

	// Workers is the number of queries paginated concurrently (default 1).
	Workers int

	// MaxRetries bounds retries of a transient page failure (see httputil.Retry).
	MaxRetries int

	// Logger receives diagnostics. Nil uses slog.Default().
	Logger *slog.Logger

	// Progress receives one line per query and per new profile. Nil discards.
	Progress io.Writer

	// OnQuery is called after each query's records are merged, in query order.
	OnQuery func(QueryReport)
}

// QueryReport describes the outcome of one query.
type QueryReport struct {
	Index int
	Query Query
	// Pages is the number of result pages that were fetched successfully.
	Pages int
	// Found is the number of profile records extracted across those pages.
	Found int
	// New is the number of those records that were not already known.
	New int
	// Total is the size of the profile set after the merge.
	Total int
	// Err is the error that ended the query early, if any.
	Err error
}

// Result holds the output of a run.
type Result struct {
	Profiles    []types.ProfileRecord
	Metrics     types.RunMetrics
	QueryErrors []string
}

// Harvester runs the query, pagination, extraction and merge pipeline for
// one organization.
type Harvester struct {
	opts    Options
	fetcher PageFetcher
	logger  *slog.Logger

	metrics *Collector
	set     *ProfileSet
	now     func() time.Time
}

// New validates opts and returns a Harvester that fetches pages through fetcher.
func New(fetcher PageFetcher, opts Options) (*Harvester, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("%w: no page fetcher configured", ErrInvalidInput)
	}
	if err := ValidateTemplate(opts.EmailFormat); err != nil {
		return nil, err
	}
	if opts.Surname == "" {
		opts.Surname = SurnameFinal
	}
	if opts.Site == (SiteRule{}) {
		opts.Site = LinkedIn
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Harvester{
		opts:    opts,
		fetcher: fetcher,
		logger:  logger,
		metrics: NewCollector(),
		set:     NewProfileSet(),
		now:     time.Now,
	}, nil
}

// Plan returns the queries a run would issue, in order.
func (h *Harvester) Plan() ([]Query, error) {
	if h.opts.RawQuery != "" {
		return RawQuery(h.opts.RawQuery)
	}
	return BuildQueries(h.opts.Organization, h.opts.Terms)
}

// Profiles returns the profiles merged so far.
func (h *Harvester) Profiles() []types.ProfileRecord {
	return h.set.Records()
}

// Run executes every planned query and returns the merged profiles and run
// metrics. Input errors fail before any request is issued. A fatal fetch
// error (wrapping ErrFatal) or context cancellation stops further querying;
// Run then returns the partial Result along with the error. Failures of
// individual queries are reported in Result.QueryErrors and do not fail the run.
func (h *Harvester) Run(ctx context.Context) (Result, error) {
	startedAt := h.now()

	queries, err := h.Plan()
	if err != nil {
		return Result{}, err
	}

	h.metrics = NewCollector()
	h.set = NewProfileSet()
	h.metrics.SetQueries(len(queries))

	h.logger.Info("harvest started",
		"organization", h.opts.Organization,
		"queries", len(queries),
		"workers", h.opts.Workers,
		"email_inference", h.opts.EmailFormat != "")

	queryErrors, runErr := h.runQueries(ctx, queries)
	if runErr != nil {
		h.metrics.MarkAborted()
		h.logger.Error("harvest aborted", "error", runErr)
	}

	h.synthesizeEmails()
	h.metrics.SetProfilesFound(h.set.Len())

	result := Result{
		Profiles:    h.set.Records(),
		Metrics:     h.metrics.Finalize(h.opts.Organization, startedAt),
		QueryErrors: queryErrors,
	}

	h.logger.Info("harvest finished",
		"api_requests", result.Metrics.APIRequests,
		"profiles_found", result.Metrics.ProfilesFound,
		"elapsed_seconds", result.Metrics.ExecutionTimeSeconds)

	return result, runErr
}

type queryOutcome struct {
	report  QueryReport
	records []types.ProfileRecord
}

// runQueries paginates the queries on a bounded pool and merges each
// query's records in query order, so the profile set matches a sequential run.
func (h *Harvester) runQueries(ctx context.Context, queries []Query) ([]string, error) {
	paginator := NewPaginator(h.fetcher, h.metrics, h.opts.MaxRetries)

	var (
		mu          sync.Mutex
		pending     = make(map[int]queryOutcome)
		next        int
		queryErrors []string
	)
	commit := func(o queryOutcome) {
		if o.report.Err != nil && !isContextErr(o.report.Err) {
			h.metrics.IncQueriesFailed()
			queryErrors = append(queryErrors, o.report.Err.Error())
		}
		h.merge(o)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.opts.Workers)

	for i, q := range queries {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			o := h.runQuery(gctx, paginator, i, q)

			mu.Lock()
			pending[i] = o
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				commit(ready)
				next++
			}
			mu.Unlock()

			if errors.Is(o.report.Err, ErrFatal) || isContextErr(o.report.Err) {
				return o.report.Err
			}
			return nil
		})
	}
	runErr := g.Wait()

	// Queries that finished after an earlier query aborted are merged in order.
	rest := make([]int, 0, len(pending))
	for i := range pending {
		rest = append(rest, i)
	}
	sort.Ints(rest)
	for _, i := range rest {
		commit(pending[i])
	}

	if runErr == nil {
		runErr = ctx.Err()
	}
	return queryErrors, runErr
}

func (h *Harvester) runQuery(ctx context.Context, p *Paginator, i int, q Query) queryOutcome {
	o := queryOutcome{report: QueryReport{Index: i, Query: q}}
	h.logger.Debug("query started", "index", i, "query", q.Text)

	for items, err := range p.Pages(ctx, q) {
		if err != nil {
			o.report.Err = err
			break
		}
		o.report.Pages++
		records := Extract(items, h.opts.Site)
		for j := range records {
			records[j].Query = q.Text
		}
		h.logger.Debug("page fetched", "query", q.Text, "page", o.report.Pages,
			"items", len(items), "profiles", len(records))
		o.records = append(o.records, records...)
	}
	o.report.Found = len(o.records)
	return o
}

func (h *Harvester) merge(o queryOutcome) {
	fmt.Fprintf(h.opts.Progress, "[>] Query: %s\n", o.report.Query.Text)
	for _, rec := range o.records {
		if h.set.Merge(rec) {
			o.report.New++
			fmt.Fprintf(h.opts.Progress, "    + %s\n", rec.Name)
		}
	}
	o.report.Total = h.set.Len()

	switch {
	case o.report.Err == nil:
	case isContextErr(o.report.Err):
		h.logger.Warn("query interrupted", "query", o.report.Query.Text)
	case errors.Is(o.report.Err, ErrFatal):
		fmt.Fprintf(h.opts.Progress, "[!] %v\n", o.report.Err)
	default:
		h.logger.Warn("query failed", "query", o.report.Query.Text, "error", o.report.Err)
		fmt.Fprintf(h.opts.Progress, "[!] %v\n", o.report.Err)
	}

	if h.opts.OnQuery != nil {
		h.opts.OnQuery(o.report)
	}
}

// synthesizeEmails fills GeneratedEmail once per unique record after all
// sightings have been merged.
func (h *Harvester) synthesizeEmails() {
	if h.opts.EmailFormat == "" {
		return
	}
	h.set.Apply(func(rec *types.ProfileRecord) {
		name, err := Normalize(rec.Name, h.opts.Surname)
		if err != nil {
			h.logger.Debug("email skipped", "name", rec.Name, "reason", err)
			return
		}
		email, err := Synthesize(h.opts.EmailFormat, name)
		if err != nil {
			h.logger.Debug("email skipped", "name", rec.Name, "reason", err)
			return
		}
		rec.GeneratedEmail = &email
	})
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
