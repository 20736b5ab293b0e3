// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/profile-hunter/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs recorded in the SQLite archive",
	Long: `Runs lists the harvest runs recorded with --archive, newest first.
Use --show with a run id to print that run's profiles.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{"archive": "output.archive"})
	},
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().String("archive", "profile-hunter.db", "SQLite archive to read")
	runsCmd.Flags().Int64("show", 0, "print the profiles of this run id")
	runsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	s, err := store.Open(viper.GetString("output.archive"))
	if err != nil {
		return err
	}
	defer s.Close()

	w := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if id, _ := cmd.Flags().GetInt64("show"); id > 0 {
		profiles, err := s.Profiles(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(w, profiles)
		}
		if len(profiles) == 0 {
			fmt.Fprintf(w, "No profiles recorded for run %d.\n", id)
			return nil
		}
		for _, p := range profiles {
			email := ""
			if p.HasEmail() {
				email = *p.GeneratedEmail
			}
			fmt.Fprintf(w, "%-30s  %-30s  %s\n", truncate(p.Name, 30), email, p.LinkedInURL)
		}
		return nil
	}

	runs, err := s.Runs(cmd.Context(), viper.GetString("organization"))
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(w, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-25s  %-20s  %8s  %8s  %s\n", "ID", "Organization", "Timestamp", "Requests", "Profiles", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		m := r.Metrics
		status := "ok"
		if m.Aborted {
			status = "aborted"
		}
		fmt.Fprintf(w, "%-5d  %-25s  %-20s  %8d  %8d  %s\n",
			r.ID, truncate(m.Organization, 25), m.Timestamp, m.APIRequests, m.ProfilesFound, status)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
