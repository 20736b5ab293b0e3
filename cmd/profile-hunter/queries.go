// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-hunter/internal/harvest"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Print the queries a harvest would issue, without calling the API",
	Long: `Queries expands the organization with the selected coverage terms and
prints one query per line together with an upper bound on the API requests
a harvest could spend (10 pages per query).`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, planFlags)
	},
	RunE: runQueries,
}

func init() {
	addPlanFlags(queriesCmd)
	rootCmd.AddCommand(queriesCmd)
}

func runQueries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var queries []harvest.Query
	if cfg.RawQuery != "" {
		queries, err = harvest.RawQuery(cfg.RawQuery)
	} else {
		var terms []string
		terms, err = harvest.CoverageTerms(cfg.Coverage)
		if err == nil {
			queries, err = harvest.BuildQueries(cfg.Organization, terms)
		}
	}
	if err != nil {
		return err
	}

	printQueries(cmd.OutOrStdout(), queries)
	return nil
}

func printQueries(w io.Writer, queries []harvest.Query) {
	for i, q := range queries {
		fmt.Fprintf(w, "%3d  %s\n", i+1, q.Text)
	}
	pages := harvest.MaxResultsPerQuery / harvest.PageSize
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "%d queries, at most %d API requests\n", len(queries), len(queries)*pages)
}
