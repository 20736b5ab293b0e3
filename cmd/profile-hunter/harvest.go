// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-hunter/internal/harvest"
	"github.com/pdiddy/profile-hunter/internal/output"
	"github.com/pdiddy/profile-hunter/internal/search"
	"github.com/pdiddy/profile-hunter/internal/store"
	"github.com/pdiddy/profile-hunter/pkg/types"
)

const defaultSiteSearch = "linkedin.com/in"

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Search for an organization's LinkedIn profiles and write them to a file",
	Long: `Harvest issues one query for the quoted organization name and one per
coverage term, pages through up to 100 results per query, and keeps every
distinct LinkedIn profile it sees. The profile list is checkpointed after
each query that finds something new; run metrics are written when the run
ends, including when it is interrupted with Ctrl-C.

With --email-format, each profile whose name splits into first and last
gets a candidate address. Placeholders: {first} {last} {f} {l}.`,
	Example: `  profile-hunter harvest --org "ACME Corp" --email-format "{f}{last}@acme.com"
  profile-hunter harvest --org Telefonica --preset es --surname second
  profile-hunter harvest --query 'site:linkedin.com/in "ACME" "data engineer"'`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd, planFlags); err != nil {
			return err
		}
		return bindFlags(cmd, harvestFlags)
	},
	RunE: runHarvest,
}

var harvestFlags = map[string]string{
	"email-format": "email.format",
	"surname":      "email.surname",
	"output":       "output.profiles",
	"metrics":      "output.metrics",
	"format":       "output.format",
	"archive":      "output.archive",
	"workers":      "search.workers",
	"rps":          "search.requests_per_second",
	"retries":      "search.max_retries",
	"timeout":      "search.timeout",
	"user-agent":   "search.user_agent",
	"site-search":  "search.site_search",
	"api-key":      "search.api_key",
	"cse-id":       "search.engine_id",
}

func init() {
	addPlanFlags(harvestCmd)

	harvestCmd.Flags().String("email-format", "", "email template, e.g. {f}{last}@example.com")
	harvestCmd.Flags().String("surname", "final", "surname token for {last}: final or second")
	harvestCmd.Flags().String("output", output.DefaultProfilesPath, "profiles output file")
	harvestCmd.Flags().String("metrics", output.DefaultMetricsPath, "metrics output file")
	harvestCmd.Flags().String("format", "", "profiles file format: json or yaml (default from extension)")
	harvestCmd.Flags().String("archive", "", "SQLite database that records every run")
	harvestCmd.Flags().Int("workers", 1, "queries paginated concurrently")
	harvestCmd.Flags().Float64("rps", 1, "search API requests per second across all workers")
	harvestCmd.Flags().Int("retries", 3, "retries for a rate-limited or unavailable page (negative disables)")
	harvestCmd.Flags().Duration("timeout", 30*time.Second, "HTTP request timeout")
	harvestCmd.Flags().String("user-agent", "profile-hunter/"+version, "User-Agent sent to the search API")
	harvestCmd.Flags().String("site-search", defaultSiteSearch, "restrict results to this site prefix (empty disables)")
	harvestCmd.Flags().String("api-key", "", "Google API key (overrides .secrets/google-api-key)")
	harvestCmd.Flags().String("cse-id", "", "Programmable Search Engine id (overrides .secrets/google-cse-id)")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := harvestOptions(cfg)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output.Format, cfg.Output.ProfilesPath)
	if err != nil {
		return err
	}
	backend, err := search.NewGoogleBackend(cfg.Search)
	if err != nil {
		return err
	}

	logger := slog.Default()
	cp := &output.Checkpointer{Path: cfg.Output.ProfilesPath, Format: format, Logger: logger}
	opts.Logger = logger
	opts.Progress = cmd.OutOrStdout()
	opts.OnQuery = cp.OnQuery

	h, err := harvest.New(backend, opts)
	if err != nil {
		return err
	}
	cp.Source = h.Profiles

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cmd.OutOrStdout()
	if cfg.RawQuery != "" {
		fmt.Fprintf(w, "[*] Running raw query: %s\n", cfg.RawQuery)
	} else {
		fmt.Fprintf(w, "[*] Harvesting %s (%d coverage terms)\n", cfg.Organization, len(opts.Terms))
	}

	res, runErr := h.Run(ctx)
	if errors.Is(runErr, harvest.ErrInvalidInput) {
		return runErr
	}

	if err := writeResults(ctx, w, cfg, format, res); err != nil {
		return err
	}

	switch {
	case runErr == nil:
		return nil
	case errors.Is(runErr, context.Canceled):
		fmt.Fprintln(w, "\n[!] Interrupted by user")
		return nil
	default:
		return runErr
	}
}

func harvestOptions(cfg types.HarvestConfig) (harvest.Options, error) {
	surname, err := harvest.ParseSurnameStrategy(cfg.Email.Surname)
	if err != nil {
		return harvest.Options{}, err
	}
	opts := harvest.Options{
		Organization: cfg.Organization,
		RawQuery:     cfg.RawQuery,
		EmailFormat:  cfg.Email.Format,
		Surname:      surname,
		Workers:      cfg.Search.Workers,
		MaxRetries:   cfg.Search.MaxRetries,
	}
	if cfg.RawQuery == "" {
		opts.Terms, err = harvest.CoverageTerms(cfg.Coverage)
		if err != nil {
			return harvest.Options{}, err
		}
	}
	return opts, nil
}

// writeResults writes the profile list, the metrics and the optional archive
// entry. The archive is written with a fresh context so an interrupted run
// is still recorded.
func writeResults(ctx context.Context, w io.Writer, cfg types.HarvestConfig, format output.Format, res harvest.Result) error {
	if err := output.WriteProfiles(cfg.Output.ProfilesPath, format, res.Profiles); err != nil {
		return fmt.Errorf("writing profiles: %w", err)
	}
	if err := output.WriteMetrics(cfg.Output.MetricsPath, res.Metrics); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}

	if cfg.Output.ArchivePath != "" {
		s, err := store.Open(cfg.Output.ArchivePath)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer s.Close()
		id, err := s.SaveRun(context.WithoutCancel(ctx), res.Metrics, res.Profiles)
		if err != nil {
			return fmt.Errorf("archiving run: %w", err)
		}
		fmt.Fprintf(w, "[*] Archived as run %d in %s\n", id, cfg.Output.ArchivePath)
	}

	m := res.Metrics
	fmt.Fprintf(w, "\n[+] %d profiles saved to %s\n", m.ProfilesFound, cfg.Output.ProfilesPath)
	fmt.Fprintf(w, "[+] %d API requests over %d queries (%d failed) in %.2fs; metrics saved to %s\n",
		m.APIRequests, m.QueriesTotal, m.QueriesFailed, m.ExecutionTimeSeconds, cfg.Output.MetricsPath)
	return nil
}
