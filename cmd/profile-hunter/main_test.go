// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/profile-hunter/internal/harvest"
	"github.com/pdiddy/profile-hunter/pkg/types"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTermsFileList(t *testing.T) {
	path := writeTemp(t, "terms.yaml", "- IT\n- Recursos Humanos\n- Legal\n")
	terms, err := loadTermsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"IT", "Recursos Humanos", "Legal"}, terms)
}

func TestLoadTermsFileMap(t *testing.T) {
	path := writeTemp(t, "terms.yaml", "terms:\n  - Engineering\n  - Sales\n")
	terms, err := loadTermsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "Sales"}, terms)
}

func TestLoadTermsFileErrors(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"empty", ""},
		{"scalar", "just a string\n"},
		{"empty list", "[]\n"},
		{"map without terms", "other: [a]\n"},
		{"malformed", "terms: [a, b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadTermsFile(writeTemp(t, "terms.yaml", tt.content))
			assert.Error(t, err)
		})
	}

	_, err := loadTermsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHarvestOptions(t *testing.T) {
	cfg := types.HarvestConfig{
		Organization: "ACME",
		Search:       types.SearchConfig{Workers: 4, MaxRetries: 2},
		Coverage:     types.CoverageConfig{Terms: []string{"IT", "it", " HR "}},
		Email:        types.EmailConfig{Format: "{f}{last}@acme.com", Surname: "second"},
	}
	opts, err := harvestOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ACME", opts.Organization)
	assert.Equal(t, []string{"IT", "HR"}, opts.Terms)
	assert.Equal(t, harvest.SurnameSecond, opts.Surname)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, 2, opts.MaxRetries)
	assert.Equal(t, "{f}{last}@acme.com", opts.EmailFormat)
}

func TestHarvestOptionsRawQuerySkipsCoverage(t *testing.T) {
	cfg := types.HarvestConfig{RawQuery: `"ACME" CTO`, Coverage: types.CoverageConfig{Preset: "unknown"}}
	opts, err := harvestOptions(cfg)
	require.NoError(t, err)
	assert.Empty(t, opts.Terms)
	assert.Equal(t, `"ACME" CTO`, opts.RawQuery)
}

func TestHarvestOptionsInvalid(t *testing.T) {
	_, err := harvestOptions(types.HarvestConfig{Organization: "ACME", Email: types.EmailConfig{Surname: "middle"}})
	assert.ErrorIs(t, err, harvest.ErrInvalidInput)

	_, err = harvestOptions(types.HarvestConfig{Organization: "ACME", Coverage: types.CoverageConfig{Preset: "fr"}})
	assert.ErrorIs(t, err, harvest.ErrInvalidInput)
}

func TestPrintQueries(t *testing.T) {
	queries, err := harvest.BuildQueries("ACME", []string{"IT", "HR"})
	require.NoError(t, err)

	var buf bytes.Buffer
	printQueries(&buf, queries)
	out := buf.String()

	assert.Contains(t, out, `  1  "ACME"`)
	assert.Contains(t, out, `  2  "ACME" IT`)
	assert.Contains(t, out, `  3  "ACME" HR`)
	assert.Contains(t, out, "3 queries, at most 30 API requests")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	quiet := newLogger(&buf, false)
	quiet.Info("hidden")
	quiet.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	newLogger(&buf, true).Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmn", 10))
	assert.Equal(t, "José Ma...", truncate("José María García", 10))
	assert.Equal(t, 10, len([]rune(truncate(strings.Repeat("é", 20), 10))))
}
