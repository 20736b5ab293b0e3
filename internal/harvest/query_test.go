// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/profile-hunter/pkg/types"
)

func TestBuildQueries(t *testing.T) {
	terms := []string{"IT", "Human Resources", "Engineer"}
	queries, err := BuildQueries("ACME", terms)
	require.NoError(t, err)

	want := []Query{
		{Text: `"ACME"`},
		{Text: `"ACME" IT`, Term: "IT"},
		{Text: `"ACME" Human Resources`, Term: "Human Resources"},
		{Text: `"ACME" Engineer`, Term: "Engineer"},
	}
	assert.Equal(t, want, queries)
}

func TestBuildQueriesCountAndQuoting(t *testing.T) {
	for _, org := range []string{"ACME", "Banco Santander", "Ünïcode GmbH", "  padded  "} {
		for _, terms := range [][]string{nil, {"IT"}, USCoverageTerms, ESCoverageTerms} {
			queries, err := BuildQueries(org, terms)
			require.NoError(t, err)
			assert.Len(t, queries, len(terms)+1)

			quoted := `"` + strings.TrimSpace(org) + `"`
			for _, q := range queries {
				assert.Contains(t, q.Text, quoted)
			}
		}
	}
}

func TestBuildQueriesInvalidInput(t *testing.T) {
	for _, org := range []string{"", "   ", `""`} {
		_, err := BuildQueries(org, USCoverageTerms)
		assert.ErrorIs(t, err, ErrInvalidInput, "org %q", org)
	}
}

func TestBuildQueriesStripsEmbeddedQuotes(t *testing.T) {
	queries, err := BuildQueries(`The "Best" Corp`, nil)
	require.NoError(t, err)
	assert.Equal(t, `"The Best Corp"`, queries[0].Text)
}

func TestRawQuery(t *testing.T) {
	queries, err := RawQuery(`  site:linkedin.com/in "ACME" CISO `)
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, `site:linkedin.com/in "ACME" CISO`, queries[0].Text)

	_, err = RawQuery(" ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCoverageTerms(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.CoverageConfig
		want    []string
		wantErr bool
	}{
		{"default preset", types.CoverageConfig{}, USCoverageTerms, false},
		{"us preset", types.CoverageConfig{Preset: "US"}, USCoverageTerms, false},
		{"es preset", types.CoverageConfig{Preset: "es"}, dedupTerms(ESCoverageTerms), false},
		{"explicit terms win", types.CoverageConfig{Preset: "es", Terms: []string{"IT", "Sales"}}, []string{"IT", "Sales"}, false},
		{"drops blanks and duplicates", types.CoverageConfig{Terms: []string{"IT", " ", "it", "Human   Resources", "Sales"}}, []string{"IT", "Human Resources", "Sales"}, false},
		{"unknown preset", types.CoverageConfig{Preset: "fr"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoverageTerms(tt.cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func dedupTerms(terms []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range terms {
		k := strings.ToLower(t)
		if !seen[k] {
			seen[k] = true
			out = append(out, t)
		}
	}
	return out
}
