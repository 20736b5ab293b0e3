// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the profile-hunter pipeline:
// raw search results, discovered profile records, and run metrics.
package types

// RawResult is one item from a single search-engine result page. Only the
// fields the extractor reads are kept; the rest of the API item is dropped.
type RawResult struct {
	Title   string `json:"title" yaml:"title"`
	Link    string `json:"link" yaml:"link"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Page is one page of search results together with the engine's estimate
// of how many results exist for the query.
type Page struct {
	Items         []RawResult
	TotalEstimate int
}

// ProfileRecord is a single professional-network profile discovered during
// a harvest run.
type ProfileRecord struct {
	// Name is the display name extracted from the result title.
	Name string `json:"name" yaml:"name"`

	// LinkedInURL is the canonical profile URL. It is unique within a run's output.
	LinkedInURL string `json:"linkedin_url" yaml:"linkedin_url"`

	// RoleSnippet is the search snippet captured when the profile was first seen.
	RoleSnippet string `json:"role_snippet" yaml:"role_snippet"`

	// GeneratedEmail is the address derived from the email template. Nil when
	// no template was configured or the name could not be split.
	GeneratedEmail *string `json:"generated_email" yaml:"generated_email"`

	// Query is the search query that first surfaced the profile. It is kept
	// for the run archive and is not part of the profiles file.
	Query string `json:"-" yaml:"-"`
}

// HasEmail reports whether an email address was generated for the record.
func (p ProfileRecord) HasEmail() bool {
	return p.GeneratedEmail != nil && *p.GeneratedEmail != ""
}

// RunMetrics summarizes one harvest run for cost and usage tracking.
type RunMetrics struct {
	Organization         string  `json:"organization" yaml:"organization"`
	Timestamp            string  `json:"timestamp" yaml:"timestamp"`
	APIRequests          int     `json:"api_requests" yaml:"api_requests"`
	ProfilesFound        int     `json:"profiles_found" yaml:"profiles_found"`
	QueriesTotal         int     `json:"queries_total" yaml:"queries_total"`
	QueriesFailed        int     `json:"queries_failed" yaml:"queries_failed"`
	Aborted              bool    `json:"aborted" yaml:"aborted"`
	ExecutionTimeSeconds float64 `json:"execution_time_seconds" yaml:"execution_time_seconds"`
}
