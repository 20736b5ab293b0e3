// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads search API credentials from a directory of plain-text
// files. Each file holds one secret: the filename is the key name and the
// trimmed file contents are the value.
//
// Recognized key files: google-api-key, google-cse-id.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Key file names.
const (
	GoogleAPIKey = "google-api-key"
	GoogleCSEID  = "google-cse-id"
)

// DefaultDir is the secrets directory used when none is configured.
const DefaultDir = ".secrets"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map. Unreadable
// files are logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			out[name] = value
		}
	}
	return out, nil
}

// Credentials are the values a search backend needs.
type Credentials struct {
	APIKey   string
	EngineID string
}

// Resolve fills any empty field of c from the secrets in dir. Values
// already set (from flags, environment or config) take precedence.
func Resolve(dir string, c Credentials) (Credentials, error) {
	if c.APIKey != "" && c.EngineID != "" {
		return c, nil
	}
	found, err := Load(dir)
	if err != nil {
		return c, err
	}
	if c.APIKey == "" {
		c.APIKey = found[GoogleAPIKey]
	}
	if c.EngineID == "" {
		c.EngineID = found[GoogleCSEID]
	}
	return c, nil
}
