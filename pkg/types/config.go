// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "profile-hunter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the search API and pagination.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey is the Google API key. It is passed to the fetcher untouched.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`

	// EngineID is the Custom Search Engine identifier (cx).
	EngineID string `json:"-" yaml:"-" mapstructure:"engine_id"`

	// SiteSearch restricts results to a site prefix (e.g. "linkedin.com/in").
	// Empty disables the restriction.
	SiteSearch string `json:"site_search" yaml:"site_search" mapstructure:"site_search"`

	// RequestsPerSecond paces page fetches across all workers (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// MaxRetries is the number of retries for a transient page failure (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// Workers is the number of queries paginated concurrently (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// CoverageConfig selects the role/department terms used for query expansion.
type CoverageConfig struct {
	// Preset names a built-in term list: "us" or "es".
	Preset string `json:"preset" yaml:"preset" mapstructure:"preset"`

	// Terms overrides the preset when non-empty.
	Terms []string `json:"terms,omitempty" yaml:"terms,omitempty" mapstructure:"terms"`
}

// EmailConfig controls email address synthesis.
type EmailConfig struct {
	// Format is the address template, e.g. "{f}{last}@example.com".
	// Empty disables synthesis.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Surname picks which name token fills {last}: "final" (default) or "second".
	Surname string `json:"surname" yaml:"surname" mapstructure:"surname"`
}

// OutputConfig names the files a run writes.
type OutputConfig struct {
	// ProfilesPath is the profile list destination (default "employees.json").
	ProfilesPath string `json:"profiles_path" yaml:"profiles_path" mapstructure:"profiles"`

	// MetricsPath is the metrics destination (default "metrics.json").
	MetricsPath string `json:"metrics_path" yaml:"metrics_path" mapstructure:"metrics"`

	// Format is "json" or "yaml" for the profile list.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// ArchivePath is an optional SQLite database that records every run.
	ArchivePath string `json:"archive_path,omitempty" yaml:"archive_path,omitempty" mapstructure:"archive"`
}

// HarvestConfig groups everything a harvest run needs.
type HarvestConfig struct {
	// Organization is the target organization name.
	Organization string `json:"organization" yaml:"organization" mapstructure:"organization"`

	// RawQuery, when set, is issued verbatim and bypasses query expansion.
	RawQuery string `json:"raw_query,omitempty" yaml:"raw_query,omitempty" mapstructure:"query"`

	Search   SearchConfig   `json:"search" yaml:"search" mapstructure:"search"`
	Coverage CoverageConfig `json:"coverage" yaml:"coverage" mapstructure:"coverage"`
	Email    EmailConfig    `json:"email" yaml:"email" mapstructure:"email"`
	Output   OutputConfig   `json:"output" yaml:"output" mapstructure:"output"`
}
