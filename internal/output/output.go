// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes the profile list and run metrics produced by a
// harvest run.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/profile-hunter/pkg/types"
)

// Default output paths.
const (
	DefaultProfilesPath = "employees.json"
	DefaultMetricsPath  = "metrics.json"
)

// Format is the encoding of the profiles file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name. An empty name is inferred from the
// file extension of path, falling back to JSON.
func ParseFormat(name, path string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return FormatYAML, nil
		}
		return FormatJSON, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or yaml)", name)
	}
}

// WriteProfiles writes profiles to path in the given format. An empty list
// is written as an empty array. The file is replaced atomically so a
// checkpoint interrupted mid-write never leaves a truncated file.
func WriteProfiles(path string, format Format, profiles []types.ProfileRecord) error {
	if profiles == nil {
		profiles = []types.ProfileRecord{}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(profiles)
	case FormatJSON, "":
		data, err = marshalJSON(profiles)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling profiles: %w", err)
	}
	return writeAtomic(path, data)
}

// WriteMetrics writes the run metrics as a JSON object.
func WriteMetrics(path string, m types.RunMetrics) error {
	data, err := marshalJSON(m)
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}
	return writeAtomic(path, data)
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
