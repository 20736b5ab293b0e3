// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, GoogleAPIKey, "  AIzaSyExample  \n")
				writeFile(t, dir, GoogleCSEID, "0123456789abcdef:xyz\n")
				return dir
			},
			want: map[string]string{
				GoogleAPIKey: "AIzaSyExample",
				GoogleCSEID:  "0123456789abcdef:xyz",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, GoogleAPIKey, "valid-key")
				writeFile(t, dir, GoogleCSEID, "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{GoogleAPIKey: "valid-key"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, GoogleCSEID, "cx")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{GoogleCSEID: "cx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, GoogleCSEID, "cx")

	badPath := filepath.Join(dir, GoogleAPIKey)
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })
	if _, err := os.ReadFile(badPath); err == nil {
		t.Skip("file permissions not enforced (running as root?)")
	}

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "cx", got[GoogleCSEID])
	_, hasBad := got[GoogleAPIKey]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, GoogleAPIKey, "file-key")
	writeFile(t, dir, GoogleCSEID, "file-cx")

	got, err := Resolve(dir, Credentials{})
	require.NoError(t, err)
	assert.Equal(t, Credentials{APIKey: "file-key", EngineID: "file-cx"}, got)

	got, err = Resolve(dir, Credentials{APIKey: "flag-key"})
	require.NoError(t, err)
	assert.Equal(t, Credentials{APIKey: "flag-key", EngineID: "file-cx"}, got, "explicit values win")

	got, err = Resolve(filepath.Join(dir, "missing"), Credentials{EngineID: "cx"})
	require.NoError(t, err)
	assert.Equal(t, Credentials{EngineID: "cx"}, got)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
