// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import "errors"

// Errors returned by a PageFetcher. Fetchers wrap one of these so the
// Paginator can decide whether to retry, skip the query, or abort the run.
var (
	// ErrRateLimited means the search API rejected the call for quota pacing.
	ErrRateLimited = errors.New("search API rate limited")

	// ErrUnavailable covers timeouts and server-side failures.
	ErrUnavailable = errors.New("search API unavailable")

	// ErrAuth means the credentials or engine configuration were rejected.
	// Every later call would fail the same way.
	ErrAuth = errors.New("search API authentication failed")

	// ErrTransport covers any other request or decode failure.
	ErrTransport = errors.New("search API transport error")
)

// Errors produced by the engine itself.
var (
	// ErrInvalidInput is returned for an empty organization or malformed template.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFatal wraps a fetch failure that aborts the whole run.
	ErrFatal = errors.New("run aborted")

	// ErrQueryAbandoned wraps a transient failure that outlasted its retries.
	ErrQueryAbandoned = errors.New("query abandoned")

	// ErrUnsplittable is returned by Normalize for names with fewer than two tokens.
	ErrUnsplittable = errors.New("name cannot be split into first and last")

	// ErrNoTemplate is returned by Synthesize when no email format is configured.
	ErrNoTemplate = errors.New("no email template configured")
)

// isTransient reports whether a fetch error is worth retrying.
func isTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable)
}
